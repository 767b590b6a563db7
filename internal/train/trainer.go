// Package train fits a network to a dataset by gradient descent.
package train

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/dataset"
	"github.com/born-ml/scalargrad/internal/nn"
	"github.com/born-ml/scalargrad/internal/optim"
)

// Errors returned by the trainer.
var (
	ErrNoSamples = errors.New("no samples")
	ErrDiverged  = errors.New("loss is not finite")
)

// Model is a network the trainer can fit: a single-output Trainable that
// describes its own architecture.
type Model interface {
	nn.Trainable
	Config() nn.Config
}

// Trainer runs epochs of full-batch gradient descent.
type Trainer struct {
	model       Model
	optimizer   optim.Optimizer
	config      Config
	totalEpochs int
	lastLoss    float64
}

// Result summarizes one Run.
type Result struct {
	Epochs      int           // Epochs completed by this run
	TotalEpochs int           // Epochs completed across all runs
	Loss        float64       // Loss of the last epoch
	Elapsed     time.Duration // Wall time of the run
}

// New creates a trainer. The model must have exactly one output.
func New(model Model, optimizer optim.Optimizer, config Config) (*Trainer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trainer config: %w", err)
	}
	widths := model.Config().Widths
	if len(widths) == 0 || widths[len(widths)-1] != 1 {
		return nil, fmt.Errorf("model must have one output, has widths %v", widths)
	}

	return &Trainer{
		model:     model,
		optimizer: optimizer,
		config:    config,
		lastLoss:  math.NaN(),
	}, nil
}

// TotalEpochs returns the number of epochs trained so far, including those
// restored from a checkpoint.
func (t *Trainer) TotalEpochs() int {
	return t.totalEpochs
}

// Loss builds the training objective over samples:
//
//	mean((prediction - y)²) + lambda * Σ w²
//
// It returns the loss node and the prediction nodes in sample order.
//
// Panics if samples is empty or an input width is wrong.
func (t *Trainer) Loss(samples []dataset.Sample) (*autodiff.Value, []*autodiff.Value) {
	predictions := make([]*autodiff.Value, len(samples))
	targets := make([]*autodiff.Value, len(samples))
	for i, s := range samples {
		predictions[i] = t.model.Forward(s.Inputs())[0]
		targets[i] = s.Target()
	}

	loss := nn.MSE(predictions, targets)
	if t.config.Lambda != 0 {
		loss = loss.Add(nn.L2(t.model.Weights(), t.config.Lambda))
	}
	return loss.Named("loss"), predictions
}

// Epoch runs one forward pass over samples, backpropagates the loss and
// applies one optimizer step. It returns the loss before the step.
func (t *Trainer) Epoch(samples []dataset.Sample) float64 {
	loss, _ := t.epoch(samples)
	return loss
}

func (t *Trainer) epoch(samples []dataset.Sample) (float64, []*autodiff.Value) {
	loss, predictions := t.Loss(samples)
	loss.Backward()
	t.optimizer.Step()

	t.totalEpochs++
	t.lastLoss = loss.Data()
	return loss.Data(), predictions
}

// Run trains for epochs epochs. The context is checked before every epoch;
// when it is done, Run saves a checkpoint (if configured) and returns the
// progress so far together with the context's error.
func (t *Trainer) Run(ctx context.Context, samples []dataset.Sample, epochs int) (Result, error) {
	if len(samples) == 0 {
		return Result{}, ErrNoSamples
	}
	if err := t.checkInputs(samples); err != nil {
		return Result{}, err
	}

	start := time.Now()
	every := t.config.reportInterval(epochs)
	result := Result{TotalEpochs: t.totalEpochs, Loss: t.lastLoss}

	finish := func(runErr error) (Result, error) {
		result.Elapsed = time.Since(start)
		result.TotalEpochs = t.totalEpochs
		if result.Epochs > 0 {
			if err := t.save(); err != nil {
				return result, errors.Join(runErr, err)
			}
		}
		return result, runErr
	}

	for k := range epochs {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		before := t.totalEpochs
		loss, predictions := t.epoch(samples)
		result.Epochs++
		result.Loss = loss

		if math.IsNaN(loss) || math.IsInf(loss, 0) {
			// A non-finite model cannot be checkpointed; skip the save.
			result.Elapsed = time.Since(start)
			result.TotalEpochs = t.totalEpochs
			return result, fmt.Errorf("epoch %d: %w", before, ErrDiverged)
		}

		if every > 0 && k%every == 0 {
			t.report(Report{
				Iteration:   k,
				TotalEpochs: before,
				Loss:        loss,
				Pairs:       pairs(predictions, samples),
			})
			if err := t.save(); err != nil {
				return finish(err)
			}
		}
	}

	return finish(nil)
}

func (t *Trainer) checkInputs(samples []dataset.Sample) error {
	dim, err := dataset.Dim(samples)
	if err != nil {
		return err
	}
	if want := t.model.Config().Inputs; dim != want {
		return fmt.Errorf("samples have %d inputs, model expects %d", dim, want)
	}
	return nil
}

func (t *Trainer) report(r Report) {
	if t.config.Reporter != nil {
		t.config.Reporter(r)
	}
}

func pairs(predictions []*autodiff.Value, samples []dataset.Sample) []Pair {
	n := min(reportPairs, len(predictions))
	out := make([]Pair, n)
	for i := range n {
		out[i] = Pair{Prediction: predictions[i].Data(), Target: samples[i].Y}
	}
	return out
}
