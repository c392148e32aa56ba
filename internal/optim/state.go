package optim

import (
	"fmt"
	"math"
	"strings"

	"github.com/born-ml/nncore/internal/tensor"
)

// State keys.
const (
	keyVelocity = "velocity"
	keyM        = "m"
	keyV        = "v"
	keyStep     = "step"
)

func stateKey(prefix string, i int) string {
	return fmt.Sprintf("%s.%d", prefix, i)
}

// StateDict returns the optimizer state for serialization.
//
// State keys: "velocity.{param_index}" -> velocity tensor. The tensors are
// copies; later steps do not change them.
func (s *SGD) StateDict() map[string]*tensor.Tensor {
	stateDict := make(map[string]*tensor.Tensor, len(s.velocities))
	for i, velocity := range s.velocities {
		stateDict[stateKey(keyVelocity, i)] = velocity.Clone()
	}
	return stateDict
}

// LoadStateDict restores velocity buffers.
//
// Keys missing from stateDict leave the corresponding velocity unchanged.
// Nothing is modified if any present entry has the wrong shape.
func (s *SGD) LoadStateDict(stateDict map[string]*tensor.Tensor) error {
	if s.velocities == nil {
		return ErrNotInitialized
	}
	if err := checkState(stateDict, s.params, keyVelocity); err != nil {
		return err
	}
	loadInto(stateDict, s.velocities, keyVelocity)
	return nil
}

// StateDict returns the optimizer state for serialization.
//
// State keys: "m.{param_index}", "v.{param_index}" -> moment tensors, and
// "step" -> 0-D tensor holding the timestep.
func (a *Adam) StateDict() map[string]*tensor.Tensor {
	stateDict := make(map[string]*tensor.Tensor, 2*len(a.params)+1)
	for i := range a.params {
		stateDict[stateKey(keyM, i)] = a.m[i].Clone()
		stateDict[stateKey(keyV, i)] = a.v[i].Clone()
	}
	stateDict[keyStep] = tensor.Scalar(float64(a.t))
	return stateDict
}

// LoadStateDict restores moment buffers and the timestep.
//
// Keys missing from stateDict leave the corresponding state unchanged.
// Nothing is modified if any present entry is invalid.
func (a *Adam) LoadStateDict(stateDict map[string]*tensor.Tensor) error {
	if a.m == nil {
		return ErrNotInitialized
	}
	if err := checkState(stateDict, a.params, keyM, keyV); err != nil {
		return err
	}

	step := a.t
	if st, ok := stateDict[keyStep]; ok {
		if st == nil {
			return fmt.Errorf("%w: %q is nil", ErrStateMismatch, keyStep)
		}
		if st.NumElements() != 1 {
			return fmt.Errorf("%w: %q must hold one value, got shape %v", ErrStateMismatch, keyStep, st.Shape())
		}
		f := st.Data()[0]
		if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
			return fmt.Errorf("%w: %q must be a non-negative integer, got %v", ErrStateMismatch, keyStep, f)
		}
		step = int(f)
	}

	loadInto(stateDict, a.m, keyM)
	loadInto(stateDict, a.v, keyV)
	a.t = step
	return nil
}

// checkState validates the shape of every present "<prefix>.<i>" entry.
func checkState(stateDict map[string]*tensor.Tensor, params []*tensor.Tensor, prefixes ...string) error {
	for _, prefix := range prefixes {
		for i, param := range params {
			key := stateKey(prefix, i)
			st, ok := stateDict[key]
			if !ok {
				continue
			}
			if st == nil || !st.Shape().Equal(param.Shape()) {
				var got tensor.Shape
				if st != nil {
					got = st.Shape()
				}
				return fmt.Errorf("%w: %q: expected shape %v, got %v", ErrStateMismatch, key, param.Shape(), got)
			}
		}
	}
	return nil
}

// loadInto copies every present "<prefix>.<i>" entry into dst[i].
func loadInto(stateDict map[string]*tensor.Tensor, dst []*tensor.Tensor, prefix string) {
	for i := range dst {
		if st, ok := stateDict[stateKey(prefix, i)]; ok {
			_ = dst[i].CopyFrom(st) // Shapes checked by checkState.
		}
	}
}

// MergeStateDicts combines state dicts under distinct prefixes, e.g. to store
// several optimizers in one checkpoint file.
//
//	merged := optim.MergeStateDicts(map[string]map[string]*tensor.Tensor{
//	    "encoder": encOpt.StateDict(),
//	    "decoder": decOpt.StateDict(),
//	})
//	// keys: "encoder.m.0", "decoder.velocity.3", ...
func MergeStateDicts(parts map[string]map[string]*tensor.Tensor) map[string]*tensor.Tensor {
	merged := make(map[string]*tensor.Tensor)
	for prefix, part := range parts {
		for key, t := range part {
			merged[prefix+"."+key] = t
		}
	}
	return merged
}

// SplitStateDict extracts the entries stored under prefix by MergeStateDicts,
// with the prefix removed.
func SplitStateDict(merged map[string]*tensor.Tensor, prefix string) map[string]*tensor.Tensor {
	part := make(map[string]*tensor.Tensor)
	for key, t := range merged {
		if rest, ok := strings.CutPrefix(key, prefix+"."); ok && rest != "" {
			part[rest] = t
		}
	}
	return part
}
