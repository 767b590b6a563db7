package nn_test

import (
	"slices"
	"testing"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/nn"
	"github.com/stretchr/testify/assert"
)

func TestModuleInterfaces(t *testing.T) {
	src := nn.NewUniform(nn.NewSource(1))
	m, _ := nn.NewMLP(nn.Config{Inputs: 1, Widths: []int{1}}, src)

	var _ nn.Trainable = nn.NewLayer(1, 1, nn.Tanh, src)
	var _ nn.Trainable = m
	var _ nn.Trainable = nn.NewRNN(1, 1, src)
	var _ nn.Trainable = nn.NewLSTM(1, 1, src)
}

func TestSequenceHelpers(t *testing.T) {
	vals := autodiff.Constants("v", 1, 2, 3)
	seq := slices.Values(vals)

	assert.Equal(t, 3, nn.Count(seq))

	autodiff.Sum(vals...).Backward()
	nn.NudgeAll(seq, 0.5)
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, values(seq))

	autodiff.Sum(vals...).Backward()
	nn.ZeroGrad(seq)
	for _, v := range vals {
		assert.Equal(t, 0.0, v.Grad())
	}
}
