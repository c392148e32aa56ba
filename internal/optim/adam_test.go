package optim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nncore/internal/optim"
	"github.com/born-ml/nncore/internal/tensor"
)

// TestAdam_FirstStep tests bias correction at t = 1.
func TestAdam_FirstStep(t *testing.T) {
	x := scalar(t, 0.0)
	optimizer, err := optim.NewAdam([]*tensor.Tensor{x}, optim.AdamConfig{
		LR:    0.1,
		Betas: &[2]float64{0.9, 0.999},
		Eps:   optim.Float(1e-8),
	})
	require.NoError(t, err)

	require.NoError(t, optimizer.Apply(grads(scalar(t, 1.0))))

	// m_1 = 0.1, v_1 = 0.001
	// m_hat = 0.1 / (1 - 0.9) = 1.0, v_hat = 0.001 / (1 - 0.999) = 1.0
	// x_1 = 0 - 0.1 * 1.0 / (1e-8 + 1.0) ≈ -0.1
	m, v := optimizer.Moments(0)
	assert.InDelta(t, 0.1, m.Data()[0], 1e-12)
	assert.InDelta(t, 0.001, v.Data()[0], 1e-12)
	assert.InDelta(t, -0.1, x.Data()[0], 1e-6)
	assert.Equal(t, 1, optimizer.GetTimestep())
}

// TestAdam_SecondStep tests that bias correction uses the current timestep.
func TestAdam_SecondStep(t *testing.T) {
	x := scalar(t, 0.0)
	optimizer, err := optim.NewAdam([]*tensor.Tensor{x}, optim.AdamConfig{LR: 0.1})
	require.NoError(t, err)

	require.NoError(t, optimizer.Apply(grads(scalar(t, 1.0))))
	require.NoError(t, optimizer.Apply(grads(scalar(t, 1.0))))

	// m_2 = 0.19, v_2 = 0.001999
	// m_hat = 0.19 / 0.19 = 1, v_hat = 0.001999 / 0.001999 = 1
	m, v := optimizer.Moments(0)
	assert.InDelta(t, 0.19, m.Data()[0], 1e-12)
	assert.InDelta(t, 0.001999, v.Data()[0], 1e-12)
	assert.InDelta(t, -0.2, x.Data()[0], 1e-6)
}

// TestAdam_EpsOutsideSqrt tests that eps is added to sqrt(v_hat).
func TestAdam_EpsOutsideSqrt(t *testing.T) {
	x := scalar(t, 0.0)
	optimizer, err := optim.NewAdam([]*tensor.Tensor{x}, optim.AdamConfig{LR: 1, Eps: optim.Float(1)})
	require.NoError(t, err)

	require.NoError(t, optimizer.Apply(grads(scalar(t, 1.0))))

	// 1 / (1 + sqrt(1)) = 0.5; eps inside the sqrt would give 1/sqrt(2).
	assert.InDelta(t, -0.5, x.Data()[0], 1e-12)
}

// TestAdam_Timestep tests that every Apply increments the timestep once,
// independent of the number of parameters and gradient values.
func TestAdam_Timestep(t *testing.T) {
	params := []*tensor.Tensor{scalar(t, 1), scalar(t, 2), scalar(t, 3)}
	optimizer, err := optim.NewAdam(params, optim.AdamConfig{LR: 0.01})
	require.NoError(t, err)

	assert.Equal(t, 0, optimizer.GetTimestep())

	for k := 1; k <= 5; k++ {
		g := grads(scalar(t, float64(k)), scalar(t, 0), scalar(t, -1))
		require.NoError(t, optimizer.Apply(g))
		assert.Equal(t, k, optimizer.GetTimestep())
	}
}

// TestAdam_SharedTimestep tests that all parameters in one call use the same
// bias correction: identical inputs give identical outputs regardless of
// position.
func TestAdam_SharedTimestep(t *testing.T) {
	a := scalar(t, 1)
	b := scalar(t, 1)
	optimizer, err := optim.NewAdam([]*tensor.Tensor{a, b}, optim.AdamConfig{LR: 0.05})
	require.NoError(t, err)

	for range 3 {
		require.NoError(t, optimizer.Apply(grads(scalar(t, 0.3), scalar(t, 0.3))))
	}
	assert.Equal(t, a.Data(), b.Data())
}

// TestAdam_ZeroGradient tests that zero gradients leave parameters unchanged
// but still advance the timestep.
func TestAdam_ZeroGradient(t *testing.T) {
	x := newTensor(t, []float64{1, -2, 3}, tensor.Shape{3})
	before := x.Clone()

	optimizer, err := optim.NewAdam([]*tensor.Tensor{x}, optim.AdamConfig{LR: 0.1})
	require.NoError(t, err)

	for range 3 {
		require.NoError(t, optimizer.Apply(grads(tensor.Zeros(tensor.Shape{3}))))
	}

	assert.Equal(t, before.Data(), x.Data())
	assert.Equal(t, 3, optimizer.GetTimestep())
}

// TestAdam_L2Penalty tests that the penalty enters the moments.
func TestAdam_L2Penalty(t *testing.T) {
	x := scalar(t, 2.0)
	g := scalar(t, 0.0)
	optimizer, err := optim.NewAdam([]*tensor.Tensor{x}, optim.AdamConfig{
		LR:        0.1,
		L2Penalty: optim.Float(0.5),
	})
	require.NoError(t, err)

	require.NoError(t, optimizer.Apply(grads(g)))

	// g_eff = 0 + 0.5 * 2.0 = 1.0
	m, v := optimizer.Moments(0)
	assert.InDelta(t, 0.1, m.Data()[0], 1e-12)
	assert.InDelta(t, 0.001, v.Data()[0], 1e-12)
	assert.InDelta(t, 1.9, x.Data()[0], 1e-6)
	assert.Equal(t, []float64{0}, g.Data(), "caller gradient must not change")
}

// TestAdam_WeightLimit tests the post-update column clipping.
func TestAdam_WeightLimit(t *testing.T) {
	x := newTensor(t, []float64{
		3, 0.1,
		4, 0.1,
	}, tensor.Shape{2, 2})

	optimizer, err := optim.NewAdam([]*tensor.Tensor{x}, optim.AdamConfig{
		LR:          0.1,
		WeightLimit: optim.Float(2),
	})
	require.NoError(t, err)

	// Zero gradient: Adam leaves x alone, so only clipping acts.
	require.NoError(t, optimizer.Apply(grads(tensor.Zeros(tensor.Shape{2, 2}))))

	assert.InDeltaSlice(t, []float64{1.2, 0.1, 1.6, 0.1}, x.Data(), 1e-12)
	assert.Equal(t, 0.1, x.Data()[1])
	assert.Equal(t, 0.1, x.Data()[3])

	norms := x.ColumnNorms()
	assert.LessOrEqual(t, norms[0], 2+1e-12)
}

// TestAdam_Defaults tests that unset hyperparameters get defaults.
func TestAdam_Defaults(t *testing.T) {
	optimizer, err := optim.NewAdam([]*tensor.Tensor{scalar(t, 1)}, optim.AdamConfig{LR: 0.001})
	require.NoError(t, err)

	beta1, beta2 := optimizer.GetBetas()
	assert.Equal(t, optim.DefaultBeta1, beta1)
	assert.Equal(t, optim.DefaultBeta2, beta2)
	assert.Equal(t, 0.001, optimizer.GetLR())
}

// TestAdam_ZeroBeta1 tests that an explicit beta1 of 0 is kept, so the first
// moment is just the latest gradient.
func TestAdam_ZeroBeta1(t *testing.T) {
	x := scalar(t, 0)
	optimizer, err := optim.NewAdam([]*tensor.Tensor{x}, optim.AdamConfig{
		LR:    0.1,
		Betas: &[2]float64{0, 0.999},
	})
	require.NoError(t, err)

	beta1, beta2 := optimizer.GetBetas()
	assert.Equal(t, 0.0, beta1)
	assert.Equal(t, 0.999, beta2)

	require.NoError(t, optimizer.Apply(grads(scalar(t, 1))))
	require.NoError(t, optimizer.Apply(grads(scalar(t, -1))))

	// m_2 = 0 * m_1 + 1 * -1 = -1
	m, _ := optimizer.Moments(0)
	assert.InDelta(t, -1.0, m.Data()[0], 1e-12)
}

// TestAdam_ConfigCopied tests that later writes to the caller's config values
// do not reach the optimizer.
func TestAdam_ConfigCopied(t *testing.T) {
	betas := [2]float64{0.5, 0.9}
	optimizer, err := optim.NewAdam([]*tensor.Tensor{scalar(t, 0)}, optim.AdamConfig{LR: 0.1, Betas: &betas})
	require.NoError(t, err)

	betas[0] = 0.99
	beta1, _ := optimizer.GetBetas()
	assert.Equal(t, 0.5, beta1)
}

func TestNewAdam_InvalidConfig(t *testing.T) {
	x := scalar(t, 1)

	tests := []struct {
		name   string
		params []*tensor.Tensor
		cfg    optim.AdamConfig
	}{
		{"zero lr", []*tensor.Tensor{x}, optim.AdamConfig{}},
		{"nan lr", []*tensor.Tensor{x}, optim.AdamConfig{LR: math.NaN()}},
		{"inf lr", []*tensor.Tensor{x}, optim.AdamConfig{LR: math.Inf(1)}},
		{"beta1 one", []*tensor.Tensor{x}, optim.AdamConfig{LR: 0.1, Betas: &[2]float64{1, 0.999}}},
		{"beta2 negative", []*tensor.Tensor{x}, optim.AdamConfig{LR: 0.1, Betas: &[2]float64{0.9, -0.5}}},
		{"negative eps", []*tensor.Tensor{x}, optim.AdamConfig{LR: 0.1, Eps: optim.Float(-1e-8)}},
		{"zero eps", []*tensor.Tensor{x}, optim.AdamConfig{LR: 0.1, Eps: optim.Float(0)}},
		{"negative l2", []*tensor.Tensor{x}, optim.AdamConfig{LR: 0.1, L2Penalty: optim.Float(-1)}},
		{"nan limit", []*tensor.Tensor{x}, optim.AdamConfig{LR: 0.1, WeightLimit: optim.Float(math.NaN())}},
		{"nil param", []*tensor.Tensor{x, nil}, optim.AdamConfig{LR: 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := optim.NewAdam(tt.params, tt.cfg)
			assert.ErrorIs(t, err, optim.ErrInvalidConfig)
		})
	}
}

func TestAdam_ZeroValue(t *testing.T) {
	var a optim.Adam
	assert.ErrorIs(t, a.Apply(nil), optim.ErrNotInitialized)
	assert.ErrorIs(t, a.LoadStateDict(nil), optim.ErrNotInitialized)
}
