package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nncore/internal/optim"
	"github.com/born-ml/nncore/internal/tensor"
)

// TestSGD_StateDictRoundTrip tests that a restored optimizer continues
// exactly where the original left off.
func TestSGD_StateDictRoundTrip(t *testing.T) {
	cfg := optim.SGDConfig{LR: 0.1, Momentum: 0.9}

	x := newTensor(t, []float64{1, 2, 3}, tensor.Shape{3})
	original, err := optim.NewSGD([]*tensor.Tensor{x}, cfg)
	require.NoError(t, err)

	g := newTensor(t, []float64{0.5, -1, 2}, tensor.Shape{3})
	require.NoError(t, original.Apply(grads(g)))
	require.NoError(t, original.Apply(grads(g)))

	state := original.StateDict()
	require.Contains(t, state, "velocity.0")

	y := x.Clone()
	restored, err := optim.NewSGD([]*tensor.Tensor{y}, cfg)
	require.NoError(t, err)
	require.NoError(t, restored.LoadStateDict(state))

	require.NoError(t, original.Apply(grads(g)))
	require.NoError(t, restored.Apply(grads(g)))
	assert.Equal(t, x.Data(), y.Data())
}

// TestSGD_StateDictIsSnapshot tests that exported state does not track
// later steps.
func TestSGD_StateDictIsSnapshot(t *testing.T) {
	x := scalar(t, 1)
	optimizer, err := optim.NewSGD([]*tensor.Tensor{x}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, err)

	state := optimizer.StateDict()
	require.NoError(t, optimizer.Apply(grads(scalar(t, 1))))

	assert.Equal(t, []float64{0}, state["velocity.0"].Data())
}

// TestAdam_StateDictRoundTrip tests moments and timestep restore.
func TestAdam_StateDictRoundTrip(t *testing.T) {
	cfg := optim.AdamConfig{LR: 0.01, WeightLimit: optim.Float(10)}

	x := newTensor(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	original, err := optim.NewAdam([]*tensor.Tensor{x}, cfg)
	require.NoError(t, err)

	g := newTensor(t, []float64{0.1, -0.2, 0.3, -0.4}, tensor.Shape{2, 2})
	for range 3 {
		require.NoError(t, original.Apply(grads(g)))
	}

	state := original.StateDict()
	assert.Equal(t, []float64{3}, state["step"].Data())

	y := x.Clone()
	restored, err := optim.NewAdam([]*tensor.Tensor{y}, cfg)
	require.NoError(t, err)
	require.NoError(t, restored.LoadStateDict(state))
	assert.Equal(t, 3, restored.GetTimestep())

	require.NoError(t, original.Apply(grads(g)))
	require.NoError(t, restored.Apply(grads(g)))
	assert.Equal(t, x.Data(), y.Data())
	assert.Equal(t, 4, restored.GetTimestep())
}

// TestLoadStateDict_ShapeMismatch tests that invalid state is rejected
// without partial loading.
func TestLoadStateDict_ShapeMismatch(t *testing.T) {
	x := scalar(t, 1)
	y := newTensor(t, []float64{1, 2}, tensor.Shape{2})

	optimizer, err := optim.NewAdam([]*tensor.Tensor{x, y}, optim.AdamConfig{LR: 0.1})
	require.NoError(t, err)

	err = optimizer.LoadStateDict(map[string]*tensor.Tensor{
		"m.0":  scalar(t, 5),
		"v.1":  tensor.Zeros(tensor.Shape{3}),
		"step": tensor.Scalar(9),
	})
	assert.ErrorIs(t, err, optim.ErrStateMismatch)

	m, _ := optimizer.Moments(0)
	assert.Equal(t, []float64{0}, m.Data())
	assert.Equal(t, 0, optimizer.GetTimestep())
}

func TestLoadStateDict_BadStep(t *testing.T) {
	optimizer, err := optim.NewAdam([]*tensor.Tensor{scalar(t, 1)}, optim.AdamConfig{LR: 0.1})
	require.NoError(t, err)

	for _, step := range []*tensor.Tensor{
		tensor.Scalar(-1),
		tensor.Scalar(1.5),
		tensor.Zeros(tensor.Shape{2}),
		nil,
	} {
		assert.ErrorIs(t, optimizer.LoadStateDict(map[string]*tensor.Tensor{"step": step}), optim.ErrStateMismatch)
	}
	assert.Equal(t, 0, optimizer.GetTimestep())
}

func TestLoadStateDict_MissingKeysKeepState(t *testing.T) {
	x := scalar(t, 1)
	optimizer, err := optim.NewSGD([]*tensor.Tensor{x}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, err)
	require.NoError(t, optimizer.Apply(grads(scalar(t, 1))))

	require.NoError(t, optimizer.LoadStateDict(map[string]*tensor.Tensor{}))
	assert.InDelta(t, -0.1, optimizer.Velocity(0).Data()[0], 1e-12)

	err = optimizer.LoadStateDict(map[string]*tensor.Tensor{"velocity.0": nil})
	assert.ErrorIs(t, err, optim.ErrStateMismatch)
}

func TestMergeSplitStateDicts(t *testing.T) {
	a := map[string]*tensor.Tensor{"velocity.0": scalar(t, 1)}
	b := map[string]*tensor.Tensor{"m.0": scalar(t, 2), "step": tensor.Scalar(4)}

	merged := optim.MergeStateDicts(map[string]map[string]*tensor.Tensor{
		"encoder": a,
		"decoder": b,
	})
	assert.Len(t, merged, 3)
	assert.Contains(t, merged, "encoder.velocity.0")
	assert.Contains(t, merged, "decoder.step")

	enc := optim.SplitStateDict(merged, "encoder")
	assert.Equal(t, a, enc)

	dec := optim.SplitStateDict(merged, "decoder")
	assert.Equal(t, b, dec)

	assert.Empty(t, optim.SplitStateDict(merged, "enc"))
}
