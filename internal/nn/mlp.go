package nn

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Config describes an MLP architecture.
type Config struct {
	Inputs           int        // Input dimensionality
	Widths           []int      // Output width of each layer; the last one is the output layer
	Activation       Activation // Activation of every layer but the last
	OutputActivation Activation // Activation of the output layer (default Identity)
}

// Validate checks that the architecture can be built.
func (c Config) Validate() error {
	if c.Inputs < 1 {
		return fmt.Errorf("inputs must be positive, got %d", c.Inputs)
	}
	if len(c.Widths) == 0 {
		return errors.New("need at least one layer width")
	}
	for i, w := range c.Widths {
		if w < 1 {
			return fmt.Errorf("layer %d: width must be positive, got %d", i, w)
		}
	}
	return nil
}

// NumParameters returns the parameter count of the described network.
func (c Config) NumParameters() int {
	total := 0
	in := c.Inputs
	for _, w := range c.Widths {
		total += w * (in + 1)
		in = w
	}
	return total
}

// ShapeConfig returns the configuration used by the command-line trainer:
// an input layer of neurons units, hiddenLayers further layers of neurons
// units, and one Identity output unit.
func ShapeConfig(inputs, hiddenLayers, neurons int, activation Activation) Config {
	widths := make([]int, 0, hiddenLayers+2)
	for range hiddenLayers + 1 {
		widths = append(widths, neurons)
	}
	widths = append(widths, 1)

	return Config{
		Inputs:           inputs,
		Widths:           widths,
		Activation:       activation,
		OutputActivation: Identity,
	}
}

// MLP is a multi-layer perceptron: layers applied in sequence, the output of
// layer k feeding layer k+1.
//
// Example:
//
//	src := nn.NewSource(1234)
//	model, err := nn.NewMLP(nn.Config{
//	    Inputs:     1,
//	    Widths:     []int{3, 1},
//	    Activation: nn.Tanh,
//	}, nn.NewUniform(src))
//	out := model.Forward(autodiff.Constants("x", 2.0))
type MLP struct {
	config Config
	layers []*Layer
}

// NewMLP builds an MLP with parameters drawn from sampler.
func NewMLP(config Config, sampler Sampler) (*MLP, error) {
	return NewMLPWithInit(config, func(int, int) Sampler { return sampler })
}

// NewMLPWithInit builds an MLP whose layers draw their parameters from the
// sampler init returns for them, e.g. XavierInit.
func NewMLPWithInit(config Config, init Init) (*MLP, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid MLP config: %w", err)
	}

	config.Widths = slices.Clone(config.Widths)
	layers := make([]*Layer, len(config.Widths))
	in := config.Inputs
	for i, width := range config.Widths {
		activation := config.Activation
		if i == len(config.Widths)-1 {
			activation = config.OutputActivation
		}
		layers[i] = NewLayer(in, width, activation, init(in, width))
		in = width
	}

	return &MLP{
		config: config,
		layers: layers,
	}, nil
}

// NewMLPFromShape builds the command-line trainer's architecture; see
// ShapeConfig.
func NewMLPFromShape(inputs, hiddenLayers, neurons int, activation Activation, sampler Sampler) (*MLP, error) {
	if hiddenLayers < 0 {
		return nil, fmt.Errorf("hidden layers must not be negative, got %d", hiddenLayers)
	}
	return NewMLP(ShapeConfig(inputs, hiddenLayers, neurons, activation), sampler)
}

// NewMLPFromLayers stacks existing layers. Each layer's input width must
// equal the previous layer's output width.
func NewMLPFromLayers(layers ...*Layer) (*MLP, error) {
	if len(layers) == 0 {
		return nil, errors.New("need at least one layer")
	}

	config := Config{
		Inputs: layers[0].NumInputs(),
		Widths: make([]int, len(layers)),
	}
	for i, l := range layers {
		if i > 0 && l.NumInputs() != layers[i-1].NumOutputs() {
			return nil, fmt.Errorf("layer %d expects %d inputs, previous layer produces %d",
				i, l.NumInputs(), layers[i-1].NumOutputs())
		}
		config.Widths[i] = l.NumOutputs()
	}
	config.Activation = layers[0].Neurons()[0].Activation()
	config.OutputActivation = layers[len(layers)-1].Neurons()[0].Activation()

	return &MLP{
		config: config,
		layers: layers,
	}, nil
}

// Forward threads inputs through every layer and returns the output layer's
// values.
//
// Panics if len(inputs) differs from the configured input width.
func (m *MLP) Forward(inputs []*autodiff.Value) []*autodiff.Value {
	if len(inputs) != m.config.Inputs {
		panic(fmt.Sprintf("MLP.Forward: expected %d inputs, got %d", m.config.Inputs, len(inputs)))
	}

	x := inputs
	for _, l := range m.layers {
		x = l.Forward(x)
	}
	return x
}

// Predict runs Forward on plain numbers and returns plain numbers.
func (m *MLP) Predict(inputs ...float64) []float64 {
	outputs := m.Forward(autodiff.Constants("x", inputs...))
	result := make([]float64, len(outputs))
	for i, o := range outputs {
		result[i] = o.Data()
	}
	return result
}

// Weights returns every weight (no biases), layer by layer.
func (m *MLP) Weights() iter.Seq[*autodiff.Value] {
	seqs := make([]iter.Seq[*autodiff.Value], len(m.layers))
	for i, l := range m.layers {
		seqs[i] = l.Weights()
	}
	return chain(seqs...)
}

// Parameters returns every weight and bias, layer by layer. The order is
// stable and is the order used by checkpoints.
func (m *MLP) Parameters() iter.Seq[*autodiff.Value] {
	seqs := make([]iter.Seq[*autodiff.Value], len(m.layers))
	for i, l := range m.layers {
		seqs[i] = l.Parameters()
	}
	return chain(seqs...)
}

// NumParameters returns the number of weights and biases.
func (m *MLP) NumParameters() int {
	return Count(m.Parameters())
}

// Nudge applies value -= lr * grad to every parameter and clears gradients.
// Call it after a backward pass seeded from a loss that depends on the
// parameters.
func (m *MLP) Nudge(learningRate float64) {
	for _, l := range m.layers {
		l.Nudge(learningRate)
	}
}

// Layers returns the layers in order. The slice is shared with the MLP.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// Config returns the architecture.
func (m *MLP) Config() Config {
	c := m.config
	c.Widths = slices.Clone(c.Widths)
	return c
}

// NumInputs returns the input width.
func (m *MLP) NumInputs() int {
	return m.config.Inputs
}

// NumOutputs returns the output width.
func (m *MLP) NumOutputs() int {
	return m.layers[len(m.layers)-1].NumOutputs()
}
