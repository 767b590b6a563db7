package optim

import (
	"errors"
	"fmt"
)

// ErrStateMismatch is returned when saved state does not fit an optimizer.
var ErrStateMismatch = errors.New("optimizer state mismatch")

// State is a snapshot of an optimizer for checkpointing.
//
// Buffers hold one value per parameter, in the order the parameters were
// given to the optimizer.
type State struct {
	Type            string               // "sgd" or "adam"
	LR              float64              // Learning rate at the time of the snapshot
	Hyperparameters map[string]float64   // Optimizer-specific settings
	Step            int                  // Updates applied so far (Adam bias correction)
	Buffers         map[string][]float64 // Per-parameter state such as velocities or moments
}

// Stateful is an optimizer whose buffers survive a checkpoint round trip.
type Stateful interface {
	Optimizer

	// State returns a copy of the optimizer's buffers and settings.
	State() State

	// LoadState restores buffers saved by State. The configured learning
	// rate and hyperparameters are kept. Nothing changes if an error is
	// returned.
	LoadState(s State) error
}

// checkState verifies that s belongs to an optimizer of kind typ over n
// parameters and that every named buffer is either absent or of length n.
func checkState(s State, typ string, n int, buffers ...string) error {
	if s.Type != typ {
		return fmt.Errorf("%w: state is for %q, optimizer is %q", ErrStateMismatch, s.Type, typ)
	}
	for _, name := range buffers {
		b, ok := s.Buffers[name]
		if ok && len(b) != n {
			return fmt.Errorf("%w: buffer %q has %d values, optimizer has %d parameters",
				ErrStateMismatch, name, len(b), n)
		}
	}
	if s.Step < 0 {
		return fmt.Errorf("%w: negative step %d", ErrStateMismatch, s.Step)
	}
	return nil
}

// loadBuffer copies the named buffer into dst, or zeroes dst if it is absent.
func loadBuffer(dst []float64, s State, name string) {
	if b, ok := s.Buffers[name]; ok {
		copy(dst, b)
		return
	}
	clear(dst)
}
