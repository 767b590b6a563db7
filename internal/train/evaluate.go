package train

import (
	"math"

	"github.com/born-ml/scalargrad/internal/dataset"
	"github.com/born-ml/scalargrad/internal/parallel"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Metrics summarizes prediction quality over a dataset.
type Metrics struct {
	MSE    float64 // Mean squared error
	MAE    float64 // Mean absolute error
	MaxAbs float64 // Largest absolute error
	R2     float64 // Coefficient of determination
}

// Predictions runs a forward pass for every sample. Passes run concurrently
// according to the configured parallel settings; they only read parameters.
func (t *Trainer) Predictions(samples []dataset.Sample) []float64 {
	return parallel.Map(samples, func(s dataset.Sample) float64 {
		return t.model.Forward(s.Inputs())[0].Data()
	}, t.config.Parallel)
}

// Evaluate measures the model on samples without changing it.
func (t *Trainer) Evaluate(samples []dataset.Sample) (Metrics, error) {
	if len(samples) == 0 {
		return Metrics{}, ErrNoSamples
	}
	if err := t.checkInputs(samples); err != nil {
		return Metrics{}, err
	}

	predictions := t.Predictions(samples)
	targets := dataset.Targets(samples)

	residuals := make([]float64, len(samples))
	floats.SubTo(residuals, predictions, targets)

	abs := make([]float64, len(residuals))
	squared := make([]float64, len(residuals))
	for i, r := range residuals {
		abs[i] = math.Abs(r)
		squared[i] = r * r
	}

	return Metrics{
		MSE:    stat.Mean(squared, nil),
		MAE:    stat.Mean(abs, nil),
		MaxAbs: floats.Max(abs),
		R2:     stat.RSquaredFrom(predictions, targets, nil),
	}, nil
}
