// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package serialization saves and restores optimizer state dicts in
// SafeTensors format.
//
// Example:
//
//	if err := serialization.SaveFile("sgd.safetensors", optimizer.StateDict(), nil); err != nil {
//	    return err
//	}
//
//	state, _, err := serialization.LoadFile("sgd.safetensors")
//	if err != nil {
//	    return err
//	}
//	if err := optimizer.LoadStateDict(state); err != nil {
//	    return err
//	}
package serialization

import (
	"io"

	"github.com/born-ml/nncore/internal/serialization"
	"github.com/born-ml/nncore/internal/tensor"
)

// Errors returned while reading a state dict.
var (
	ErrChecksumMismatch  = serialization.ErrChecksumMismatch
	ErrOffsetOverlap     = serialization.ErrOffsetOverlap
	ErrOutOfBounds       = serialization.ErrOutOfBounds
	ErrTooManyTensors    = serialization.ErrTooManyTensors
	ErrInvalidTensorName = serialization.ErrInvalidTensorName
	ErrHeaderTooLarge    = serialization.ErrHeaderTooLarge
	ErrUnsupportedDType  = serialization.ErrUnsupportedDType
)

// ValidationError provides detailed information about validation failures.
type ValidationError = serialization.ValidationError

// WriteStateDict writes stateDict and metadata to w.
func WriteStateDict(w io.Writer, stateDict map[string]*tensor.Tensor, metadata map[string]string) error {
	return serialization.WriteStateDict(w, stateDict, metadata)
}

// ReadStateDict reads a state dict and its metadata from r.
func ReadStateDict(r io.Reader) (map[string]*tensor.Tensor, map[string]string, error) {
	return serialization.ReadStateDict(r)
}

// SaveFile writes stateDict and metadata to path.
func SaveFile(path string, stateDict map[string]*tensor.Tensor, metadata map[string]string) error {
	return serialization.SaveFile(path, stateDict, metadata)
}

// LoadFile reads a state dict and its metadata from path.
func LoadFile(path string) (map[string]*tensor.Tensor, map[string]string, error) {
	return serialization.LoadFile(path)
}
