package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"slices"

	"github.com/born-ml/nncore/internal/tensor"
)

// WriteStateDict writes a state dictionary in SafeTensors format.
//
// Format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: little-endian float64]
//
// Tensors are written in alphabetical order by name. A "sha256" entry is
// added to the metadata; any caller value under that key is replaced.
func WriteStateDict(w io.Writer, stateDict map[string]*tensor.Tensor, metadata map[string]string) error {
	// Sort tensor names alphabetically
	names := slices.Sorted(maps.Keys(stateDict))

	header := Header{
		Metadata: make(map[string]string, len(metadata)+1),
		Tensors:  make(map[string]TensorInfo, len(stateDict)),
	}
	maps.Copy(header.Metadata, metadata)

	// Calculate data offsets for each tensor
	var size int64
	for _, name := range names {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		t := stateDict[name]
		if t == nil {
			return fmt.Errorf("tensor %q is nil", name)
		}
		n := int64(t.NumElements()) * bytesPerElement
		header.Tensors[name] = TensorInfo{
			DType:       DTypeF64,
			Shape:       append([]int{}, t.Shape()...),
			DataOffsets: [2]int64{size, size + n},
		}
		size += n
	}

	data := make([]byte, 0, size)
	for _, name := range names {
		for _, v := range stateDict[name].Data() {
			data = binary.LittleEndian.AppendUint64(data, math.Float64bits(v))
		}
	}
	header.Metadata[checksumKey] = ComputeChecksum(data)

	// Marshal header to JSON
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	// Write header size (8 bytes, little-endian uint64)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}

	return nil
}

// SaveFile writes a state dictionary to path, replacing any existing file.
func SaveFile(path string, stateDict map[string]*tensor.Tensor, metadata map[string]string) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for checkpoint saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	return WriteStateDict(file, stateDict, metadata)
}
