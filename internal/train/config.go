package train

import (
	"fmt"
	"math"

	"github.com/born-ml/scalargrad/internal/parallel"
)

// DefaultLambda is the L2 regularization strength used by DefaultConfig.
const DefaultLambda = 0.01

// Config controls a Trainer.
type Config struct {
	Lambda         float64         // L2 regularization strength on weights (not biases)
	ReportEvery    int             // Report interval in epochs; 0 means a tenth of each run, negative disables reports
	CheckpointPath string          // Checkpoint file written at each report and at the end of a run; empty disables
	Reporter       Reporter        // Receives progress reports; nil discards them
	Parallel       parallel.Config // Fan-out used by Evaluate
}

// DefaultConfig returns the settings of the command-line trainer.
func DefaultConfig() Config {
	return Config{
		Lambda:   DefaultLambda,
		Parallel: parallel.DefaultConfig(),
	}
}

// Validate checks the configured values.
func (c Config) Validate() error {
	if c.Lambda < 0 || math.IsNaN(c.Lambda) || math.IsInf(c.Lambda, 0) {
		return fmt.Errorf("lambda must be a non-negative finite number, got %g", c.Lambda)
	}
	return nil
}

// reportInterval returns the report interval for a run of epochs epochs,
// or 0 if reports are disabled.
func (c Config) reportInterval(epochs int) int {
	switch {
	case c.ReportEvery < 0:
		return 0
	case c.ReportEvery > 0:
		return c.ReportEvery
	default:
		return max(epochs, 10) / 10
	}
}
