package optim_test

import (
	"slices"
	"testing"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/nn"
	"github.com/born-ml/scalargrad/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withGrad leaves grad on x through a real backward pass of grad * x.
func withGrad(x *autodiff.Value, grad float64) {
	x.Mul(autodiff.NewValue(grad, "g")).Backward()
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	x := autodiff.NewValue(2, "x")
	optimizer := optim.NewSGD(slices.Values([]*autodiff.Value{x}), optim.SGDConfig{LR: 0.1})

	withGrad(x, 1)
	optimizer.Step()

	// x_new = 2.0 - 0.1 * 1.0
	assert.InDelta(t, 1.9, x.Data(), 1e-12)
	assert.Equal(t, 0.0, x.Grad())

	// No new backward pass: nothing changes.
	optimizer.Step()
	assert.InDelta(t, 1.9, x.Data(), 1e-12)
}

// TestSGD_WithMomentum tests SGD with momentum.
func TestSGD_WithMomentum(t *testing.T) {
	x := autodiff.NewValue(1, "x")
	optimizer := optim.NewSGD(slices.Values([]*autodiff.Value{x}), optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	// velocity = 1, x = 1 - 0.1
	withGrad(x, 1)
	optimizer.Step()
	assert.InDelta(t, 0.9, x.Data(), 1e-12)

	// velocity = 0.9 + 1 = 1.9, x = 0.9 - 0.19
	withGrad(x, 1)
	optimizer.Step()
	assert.InDelta(t, 0.71, x.Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{1.9}, optimizer.Velocities(), 1e-12)
	assert.Equal(t, 0.0, x.Grad())
}

// TestSGD_DefaultLR tests that a zero learning rate falls back to the default.
func TestSGD_DefaultLR(t *testing.T) {
	optimizer := optim.NewSGD(slices.Values([]*autodiff.Value{}), optim.SGDConfig{})
	assert.Equal(t, optim.DefaultLR, optimizer.GetLR())

	optimizer.SetLR(0.5)
	assert.Equal(t, 0.5, optimizer.GetLR())
	assert.Equal(t, 0.0, optimizer.Momentum())
}

// TestSGD_MatchesNudge tests that plain SGD performs exactly the network's
// nudge update.
func TestSGD_MatchesNudge(t *testing.T) {
	config := nn.Config{Inputs: 2, Widths: []int{3, 1}, Activation: nn.Tanh}
	a, err := nn.NewMLP(config, nn.NewUniform(nn.NewSource(8)))
	require.NoError(t, err)
	b, err := nn.NewMLP(config, nn.NewUniform(nn.NewSource(8)))
	require.NoError(t, err)

	loss := func(m *nn.MLP) *autodiff.Value {
		out := m.Forward(autodiff.Constants("x", 0.5, -1))
		return nn.SquaredError(out[0], autodiff.NewValue(3, "y"))
	}

	loss(a).Backward()
	a.Nudge(0.05)

	loss(b).Backward()
	optim.NewSGD(b.Parameters(), optim.SGDConfig{LR: 0.05}).Step()

	var va, vb []float64
	for p := range a.Parameters() {
		va = append(va, p.Data())
	}
	for p := range b.Parameters() {
		vb = append(vb, p.Data())
		assert.Equal(t, 0.0, p.Grad())
	}
	assert.Equal(t, va, vb)
}

func TestSGD_ZeroGrad(t *testing.T) {
	x := autodiff.NewValue(1, "x")
	optimizer := optim.NewSGD(slices.Values([]*autodiff.Value{x}), optim.SGDConfig{LR: 0.1})

	withGrad(x, 3)
	require.Equal(t, 3.0, x.Grad())

	optimizer.ZeroGrad()
	assert.Equal(t, 0.0, x.Grad())
	assert.Equal(t, 1.0, x.Data())
}

func TestSGD_LoadState(t *testing.T) {
	params := autodiff.Constants("p", 1, 2)
	optimizer := optim.NewSGD(slices.Values(params), optim.SGDConfig{LR: 0.1, Momentum: 0.5})

	require.NoError(t, optimizer.LoadState(optim.State{
		Type:    "sgd",
		Buffers: map[string][]float64{"velocity": {2, -2}},
	}))
	optimizer.Step()

	// velocity = 0.5 * v + 0; param -= 0.1 * velocity
	assert.InDeltaSlice(t, []float64{0.9, 2.1}, []float64{params[0].Data(), params[1].Data()}, 1e-12)

	state := optimizer.State()
	assert.Equal(t, "sgd", state.Type)
	assert.Equal(t, 0.5, state.Hyperparameters["momentum"])
	assert.InDeltaSlice(t, []float64{1, -1}, state.Buffers["velocity"], 1e-12)

	err := optimizer.LoadState(optim.State{Type: "sgd", Buffers: map[string][]float64{"velocity": {1}}})
	require.ErrorIs(t, err, optim.ErrStateMismatch)
	assert.InDeltaSlice(t, []float64{1, -1}, optimizer.Velocities(), 1e-12, "failed load must not touch buffers")

	require.ErrorIs(t, optimizer.LoadState(optim.State{Type: "adam"}), optim.ErrStateMismatch)

	require.NoError(t, optimizer.LoadState(optim.State{Type: "sgd"}))
	assert.Equal(t, []float64{0, 0}, optimizer.Velocities())
}

func TestSGD_StateWithoutMomentum(t *testing.T) {
	optimizer := optim.NewSGD(slices.Values(autodiff.Constants("p", 1)), optim.SGDConfig{LR: 0.1})

	state := optimizer.State()
	assert.Equal(t, 0.1, state.LR)
	assert.Empty(t, state.Buffers)
}

func TestSGDConfig_Validate(t *testing.T) {
	assert.NoError(t, optim.SGDConfig{LR: 0.01, Momentum: 0.9}.Validate())
	assert.Error(t, optim.SGDConfig{LR: -1}.Validate())
	assert.Error(t, optim.SGDConfig{LR: 0.01, Momentum: 1}.Validate())
	assert.Error(t, optim.SGDConfig{LR: 0.01, Momentum: -0.1}.Validate())
}

func TestSGD_ImplementsOptimizer(t *testing.T) {
	var _ optim.Optimizer = optim.NewSGD(slices.Values([]*autodiff.Value{}), optim.SGDConfig{})
}

// TestAdam_SimpleUpdate tests basic Adam update.
func TestAdam_SimpleUpdate(t *testing.T) {
	x := autodiff.NewValue(1, "x")
	optimizer := optim.NewAdam(slices.Values([]*autodiff.Value{x}), optim.AdamConfig{LR: 0.001})

	withGrad(x, 1)
	optimizer.Step()

	// First step: m_hat = g and v_hat = g², so the update is lr * g / (|g| + eps).
	assert.InDelta(t, 0.999, x.Data(), 1e-6)
	assert.Equal(t, 0.0, x.Grad())
}

// TestAdam_BiasCorrection tests that bias correction is applied.
func TestAdam_BiasCorrection(t *testing.T) {
	x := autodiff.NewValue(1, "x")
	optimizer := optim.NewAdam(slices.Values([]*autodiff.Value{x}), optim.AdamConfig{LR: 0.01})

	assert.Equal(t, 0, optimizer.GetTimestep())

	prev := x.Data()
	for step := 1; step <= 3; step++ {
		withGrad(x, 0.5)
		optimizer.Step()

		assert.Equal(t, step, optimizer.GetTimestep())
		assert.Less(t, x.Data(), prev, "parameter should decrease at step %d", step)
		prev = x.Data()
	}

	// A constant gradient keeps every bias-corrected step at lr.
	assert.InDelta(t, 0.97, x.Data(), 1e-6)
}

// TestAdam_ZeroGrad tests gradient zeroing.
func TestAdam_ZeroGrad(t *testing.T) {
	x := autodiff.NewValue(1, "x")
	optimizer := optim.NewAdam(slices.Values([]*autodiff.Value{x}), optim.AdamConfig{})

	withGrad(x, 2)
	require.Equal(t, 2.0, x.Grad())

	optimizer.ZeroGrad()
	assert.Equal(t, 0.0, x.Grad())
	assert.Equal(t, 1.0, x.Data())
}

func TestAdam_Defaults(t *testing.T) {
	optimizer := optim.NewAdam(slices.Values([]*autodiff.Value{}), optim.AdamConfig{})
	assert.Equal(t, optim.DefaultAdamLR, optimizer.GetLR())

	state := optimizer.State()
	assert.Equal(t, optim.DefaultBeta1, state.Hyperparameters["beta1"])
	assert.Equal(t, optim.DefaultBeta2, state.Hyperparameters["beta2"])
	assert.Equal(t, optim.DefaultEps, state.Hyperparameters["eps"])
}

// TestAdam_StateRoundTrip tests that a restored optimizer continues exactly
// where the saved one stopped.
func TestAdam_StateRoundTrip(t *testing.T) {
	a := autodiff.Constants("a", 1, -1)
	b := autodiff.Constants("b", 1, -1)
	first := optim.NewAdam(slices.Values(a), optim.AdamConfig{LR: 0.05})
	second := optim.NewAdam(slices.Values(b), optim.AdamConfig{LR: 0.05})

	for range 2 {
		withGrad(a[0], 1)
		withGrad(a[1], -3)
		first.Step()
	}
	for i := range b {
		b[i].SetData(a[i].Data())
	}
	require.NoError(t, second.LoadState(first.State()))
	assert.Equal(t, 2, second.GetTimestep())

	withGrad(a[0], 1)
	withGrad(a[1], -3)
	first.Step()
	withGrad(b[0], 1)
	withGrad(b[1], -3)
	second.Step()

	assert.InDelta(t, a[0].Data(), b[0].Data(), 1e-12)
	assert.InDelta(t, a[1].Data(), b[1].Data(), 1e-12)
}

func TestAdam_LoadStateMismatch(t *testing.T) {
	optimizer := optim.NewAdam(slices.Values(autodiff.Constants("p", 1, 2)), optim.AdamConfig{})

	err := optimizer.LoadState(optim.State{Type: "adam", Step: 4, Buffers: map[string][]float64{"m": {1}}})
	require.ErrorIs(t, err, optim.ErrStateMismatch)
	assert.Equal(t, 0, optimizer.GetTimestep())

	require.ErrorIs(t, optimizer.LoadState(optim.State{Type: "sgd"}), optim.ErrStateMismatch)
}

func TestAdamConfig_Validate(t *testing.T) {
	assert.NoError(t, optim.AdamConfig{}.Validate())
	assert.NoError(t, optim.AdamConfig{LR: 0.01, Beta1: 0.8, Beta2: 0.99, Eps: 1e-6}.Validate())
	assert.Error(t, optim.AdamConfig{LR: -1}.Validate())
	assert.Error(t, optim.AdamConfig{Beta1: 1}.Validate())
	assert.Error(t, optim.AdamConfig{Beta2: -0.5}.Validate())
	assert.Error(t, optim.AdamConfig{Eps: -1}.Validate())
}

func TestAdam_ImplementsStateful(t *testing.T) {
	var _ optim.Stateful = optim.NewAdam(slices.Values([]*autodiff.Value{}), optim.AdamConfig{})
	var _ optim.Stateful = optim.NewSGD(slices.Values([]*autodiff.Value{}), optim.SGDConfig{})
}
