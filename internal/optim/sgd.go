package optim

import (
	"fmt"
	"iter"
	"slices"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// DefaultLR is the learning rate used when SGDConfig.LR is zero.
const DefaultLR = 0.01

// SGD implements gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []*autodiff.Value
	lr         float64
	momentum   float64
	velocities []float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// Validate checks the configured values.
func (c SGDConfig) Validate() error {
	if c.LR < 0 {
		return fmt.Errorf("learning rate must not be negative, got %g", c.LR)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return fmt.Errorf("momentum must be in [0, 1), got %g", c.Momentum)
	}
	return nil
}

// NewSGD creates a new SGD optimizer over params. The sequence is read once;
// its order fixes the order of the velocity buffers.
func NewSGD(params iter.Seq[*autodiff.Value], config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = DefaultLR
	}

	p := slices.Collect(params)
	return &SGD{
		params:     p,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make([]float64, len(p)),
	}
}

// Step performs a single optimization step and clears every gradient.
func (s *SGD) Step() {
	if s.momentum == 0 {
		for _, p := range s.params {
			p.Nudge(s.lr)
		}
		return
	}

	for i, p := range s.params {
		s.velocities[i] = s.momentum*s.velocities[i] + p.Grad()
		p.SetData(p.Data() - s.lr*s.velocities[i])
		p.ZeroGrad()
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	for _, p := range s.params {
		p.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// Momentum returns the momentum factor.
func (s *SGD) Momentum() float64 {
	return s.momentum
}

// Velocities returns a copy of the momentum buffers, one per parameter.
// They are all zero when momentum is disabled.
func (s *SGD) Velocities() []float64 {
	return slices.Clone(s.velocities)
}

// State returns the momentum setting and, when momentum is enabled, the
// velocity buffers.
func (s *SGD) State() State {
	state := State{
		Type:            "sgd",
		LR:              s.lr,
		Hyperparameters: map[string]float64{"momentum": s.momentum},
	}
	if s.momentum != 0 {
		state.Buffers = map[string][]float64{"velocity": slices.Clone(s.velocities)}
	}
	return state
}

// LoadState restores velocity buffers saved by State. A state without
// velocities resets them to zero.
func (s *SGD) LoadState(state State) error {
	if err := checkState(state, "sgd", len(s.params), "velocity"); err != nil {
		return err
	}
	loadBuffer(s.velocities, state, "velocity")
	return nil
}
