package optim

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Default Adam hyperparameters, used when the corresponding AdamConfig
// field is zero.
const (
	DefaultAdamLR = 0.001
	DefaultBeta1  = 0.9
	DefaultBeta2  = 0.999
	DefaultEps    = 1e-8
)

// Adam implements the Adam optimizer (Adaptive Moment Estimation).
//
// Update rule:
//
//	m = beta1 * m + (1 - beta1) * gradient
//	v = beta2 * v + (1 - beta2) * gradient²
//	m_hat = m / (1 - beta1^t)
//	v_hat = v / (1 - beta2^t)
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Example:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{
//	    LR: 0.001,
//	})
type Adam struct {
	params []*autodiff.Value
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int       // Timestep for bias correction
	m      []float64 // First moment estimates
	v      []float64 // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64 // Learning rate (default: 0.001)
	Beta1 float64 // Decay of the first moment (default: 0.9)
	Beta2 float64 // Decay of the second moment (default: 0.999)
	Eps   float64 // Term for numerical stability (default: 1e-8)
}

// Validate checks the configured values. Zero fields mean defaults.
func (c AdamConfig) Validate() error {
	if c.LR < 0 {
		return fmt.Errorf("learning rate must not be negative, got %g", c.LR)
	}
	if c.Beta1 < 0 || c.Beta1 >= 1 {
		return fmt.Errorf("beta1 must be in [0, 1), got %g", c.Beta1)
	}
	if c.Beta2 < 0 || c.Beta2 >= 1 {
		return fmt.Errorf("beta2 must be in [0, 1), got %g", c.Beta2)
	}
	if c.Eps < 0 {
		return fmt.Errorf("eps must not be negative, got %g", c.Eps)
	}
	return nil
}

// NewAdam creates a new Adam optimizer over params. The sequence is read
// once; its order fixes the order of the moment buffers.
func NewAdam(params iter.Seq[*autodiff.Value], config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = DefaultAdamLR
	}
	if config.Beta1 == 0 {
		config.Beta1 = DefaultBeta1
	}
	if config.Beta2 == 0 {
		config.Beta2 = DefaultBeta2
	}
	if config.Eps == 0 {
		config.Eps = DefaultEps
	}

	p := slices.Collect(params)
	return &Adam{
		params: p,
		lr:     config.LR,
		beta1:  config.Beta1,
		beta2:  config.Beta2,
		eps:    config.Eps,
		m:      make([]float64, len(p)),
		v:      make([]float64, len(p)),
	}
}

// Step performs a single optimization step and clears every gradient.
//
// Unlike plain SGD, a Step with zero gradients still moves parameters while
// the first moment decays.
func (a *Adam) Step() {
	a.t++

	biasCorrection1 := 1 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1 - math.Pow(a.beta2, float64(a.t))

	for i, p := range a.params {
		g := p.Grad()

		a.m[i] = a.beta1*a.m[i] + (1-a.beta1)*g
		a.v[i] = a.beta2*a.v[i] + (1-a.beta2)*g*g

		mHat := a.m[i] / biasCorrection1
		vHat := a.v[i] / biasCorrection2

		p.SetData(p.Data() - a.lr*mHat/(math.Sqrt(vHat)+a.eps))
		p.ZeroGrad()
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	for _, p := range a.params {
		p.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}

// GetTimestep returns the number of steps taken.
func (a *Adam) GetTimestep() int {
	return a.t
}

// State returns the moment buffers, timestep and hyperparameters.
func (a *Adam) State() State {
	return State{
		Type: "adam",
		LR:   a.lr,
		Hyperparameters: map[string]float64{
			"beta1": a.beta1,
			"beta2": a.beta2,
			"eps":   a.eps,
		},
		Step: a.t,
		Buffers: map[string][]float64{
			"m": slices.Clone(a.m),
			"v": slices.Clone(a.v),
		},
	}
}

// LoadState restores moment buffers and the timestep saved by State.
func (a *Adam) LoadState(s State) error {
	if err := checkState(s, "adam", len(a.params), "m", "v"); err != nil {
		return err
	}
	loadBuffer(a.m, s, "m")
	loadBuffer(a.v, s, "v")
	a.t = s.Step
	return nil
}
