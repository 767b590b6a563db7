package serialization

import (
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/nn"
)

// FormatVersion is the checkpoint layout written by Save.
const FormatVersion = 1

// Checkpoint is the persisted training state of a network.
type Checkpoint struct {
	FormatVersion int             `json:"format_version"`
	CreatedAt     time.Time       `json:"created_at"`
	Architecture  Architecture    `json:"architecture"`
	TotalEpochs   int             `json:"total_epochs"`
	Loss          float64         `json:"loss"`
	Parameters    []float64       `json:"parameters"`
	Optimizer     *OptimizerState `json:"optimizer,omitempty"`
	Checksum      string          `json:"checksum"`
}

// Architecture records the shape of the network the parameters belong to.
type Architecture struct {
	Inputs           int           `json:"inputs"`
	Widths           []int         `json:"widths"`
	Activation       nn.Activation `json:"activation"`
	OutputActivation nn.Activation `json:"output_activation"`
}

// OptimizerState holds optimizer hyperparameters and per-parameter buffers
// (SGD velocities, Adam moments).
type OptimizerState struct {
	Type            string               `json:"type"`
	LR              float64              `json:"lr"`
	Hyperparameters map[string]float64   `json:"hyperparameters,omitempty"`
	Step            int                  `json:"step,omitempty"`
	Buffers         map[string][]float64 `json:"buffers,omitempty"`
}

// ArchitectureOf converts a network configuration.
func ArchitectureOf(c nn.Config) Architecture {
	return Architecture{
		Inputs:           c.Inputs,
		Widths:           slices.Clone(c.Widths),
		Activation:       c.Activation,
		OutputActivation: c.OutputActivation,
	}
}

// Matches reports whether the architecture describes the network built from c.
func (a Architecture) Matches(c nn.Config) error {
	if a.Inputs != c.Inputs || !slices.Equal(a.Widths, c.Widths) ||
		a.Activation != c.Activation || a.OutputActivation != c.OutputActivation {
		return fmt.Errorf("%w: checkpoint has %d inputs, widths %v, %s/%s; model has %d inputs, widths %v, %s/%s",
			ErrArchitectureMismatch,
			a.Inputs, a.Widths, a.Activation, a.OutputActivation,
			c.Inputs, c.Widths, c.Activation, c.OutputActivation)
	}
	return nil
}

// NewCheckpoint captures the current parameter values of a network.
func NewCheckpoint(c nn.Config, params iter.Seq[*autodiff.Value]) *Checkpoint {
	return &Checkpoint{
		FormatVersion: FormatVersion,
		CreatedAt:     time.Now().UTC(),
		Architecture:  ArchitectureOf(c),
		Parameters:    Capture(params),
	}
}

// Seal fills in the format version and checksum.
func (c *Checkpoint) Seal() {
	c.FormatVersion = FormatVersion
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.Checksum = ParameterChecksum(c.Parameters)
}

// Validate checks version, checksum and that every number is finite.
func (c *Checkpoint) Validate() error {
	if c.FormatVersion != FormatVersion {
		return fmt.Errorf("%w: %d (supported: %d)", ErrUnsupportedVersion, c.FormatVersion, FormatVersion)
	}
	if err := c.validateFinite(); err != nil {
		return err
	}
	return ValidateChecksum(c.Parameters, c.Checksum)
}

func (c *Checkpoint) validateFinite() error {
	if !isFinite(c.Loss) {
		return &ValidationError{Err: ErrNonFinite, Field: "loss", Index: -1, Details: fmt.Sprint(c.Loss)}
	}
	for i, v := range c.Parameters {
		if !isFinite(v) {
			return &ValidationError{Err: ErrNonFinite, Field: "parameters", Index: i, Details: fmt.Sprint(v)}
		}
	}
	if c.Optimizer == nil {
		return nil
	}
	if !isFinite(c.Optimizer.LR) {
		return &ValidationError{Err: ErrNonFinite, Field: "optimizer.lr", Index: -1, Details: fmt.Sprint(c.Optimizer.LR)}
	}
	for _, name := range slices.Sorted(maps.Keys(c.Optimizer.Hyperparameters)) {
		if v := c.Optimizer.Hyperparameters[name]; !isFinite(v) {
			return &ValidationError{Err: ErrNonFinite, Field: "optimizer." + name, Index: -1, Details: fmt.Sprint(v)}
		}
	}
	for _, name := range slices.Sorted(maps.Keys(c.Optimizer.Buffers)) {
		for i, v := range c.Optimizer.Buffers[name] {
			if !isFinite(v) {
				return &ValidationError{Err: ErrNonFinite, Field: "optimizer." + name, Index: i, Details: fmt.Sprint(v)}
			}
		}
	}
	return nil
}

// RestoreInto checks the architecture against m and copies the parameters
// into it.
func (c *Checkpoint) RestoreInto(m *nn.MLP) error {
	if err := c.Architecture.Matches(m.Config()); err != nil {
		return err
	}
	return Restore(m.Parameters(), c.Parameters)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
