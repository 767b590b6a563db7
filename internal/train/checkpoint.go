package train

import (
	"fmt"
	"math"

	"github.com/born-ml/scalargrad/internal/nn"
	"github.com/born-ml/scalargrad/internal/optim"
	"github.com/born-ml/scalargrad/internal/serialization"
)

// Checkpoint captures the model parameters, the epoch count, the last loss
// and, for optimizers that keep any, the optimizer's buffers.
func (t *Trainer) Checkpoint() *serialization.Checkpoint {
	ckpt := serialization.NewCheckpoint(t.model.Config(), t.model.Parameters())
	ckpt.TotalEpochs = t.totalEpochs
	if !math.IsNaN(t.lastLoss) {
		ckpt.Loss = t.lastLoss
	}

	if s, ok := t.optimizer.(optim.Stateful); ok {
		state := s.State()
		ckpt.Optimizer = &serialization.OptimizerState{
			Type:            state.Type,
			LR:              state.LR,
			Hyperparameters: state.Hyperparameters,
			Step:            state.Step,
			Buffers:         state.Buffers,
		}
	} else {
		ckpt.Optimizer = &serialization.OptimizerState{LR: t.optimizer.GetLR()}
	}
	return ckpt
}

// Resume restores the model parameters, the epoch count and the optimizer's
// buffers from ckpt.
//
// Optimizer state saved by a different kind of optimizer is ignored and the
// current optimizer starts fresh. Every check runs before anything is
// written, so on error the trainer and its model are left untouched.
func (t *Trainer) Resume(ckpt *serialization.Checkpoint) error {
	if err := ckpt.Architecture.Matches(t.model.Config()); err != nil {
		return err
	}
	if n := nn.Count(t.model.Parameters()); n != len(ckpt.Parameters) {
		return fmt.Errorf("%w: model has %d parameters, checkpoint has %d",
			serialization.ErrParameterCount, n, len(ckpt.Parameters))
	}

	if s, ok := t.optimizer.(optim.Stateful); ok && ckpt.Optimizer != nil && ckpt.Optimizer.Type == s.State().Type {
		err := s.LoadState(optim.State{
			Type:            ckpt.Optimizer.Type,
			LR:              ckpt.Optimizer.LR,
			Hyperparameters: ckpt.Optimizer.Hyperparameters,
			Step:            ckpt.Optimizer.Step,
			Buffers:         ckpt.Optimizer.Buffers,
		})
		if err != nil {
			return fmt.Errorf("failed to restore optimizer state: %w", err)
		}
	}

	if err := serialization.Restore(t.model.Parameters(), ckpt.Parameters); err != nil {
		return err
	}
	t.totalEpochs = ckpt.TotalEpochs
	t.lastLoss = ckpt.Loss
	return nil
}

// save writes a checkpoint to the configured path, if any.
func (t *Trainer) save() error {
	if t.config.CheckpointPath == "" {
		return nil
	}
	if err := serialization.Save(t.config.CheckpointPath, t.Checkpoint()); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}
