package nn_test

import (
	"encoding/json"
	"flag"
	"testing"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActivation(t *testing.T) {
	tests := []struct {
		in      string
		want    nn.Activation
		wantErr bool
	}{
		{"identity", nn.Identity, false},
		{"linear", nn.Identity, false},
		{"relu", nn.ReLU, false},
		{" Tanh ", nn.Tanh, false},
		{"SIGMOID", nn.Sigmoid, false},
		{"softmax", nn.Identity, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := nn.ParseActivation(tt.in)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unknown activation")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActivation_String(t *testing.T) {
	assert.Equal(t, "identity", nn.Identity.String())
	assert.Equal(t, "relu", nn.ReLU.String())
	assert.Equal(t, "tanh", nn.Tanh.String())
	assert.Equal(t, "sigmoid", nn.Sigmoid.String())
	assert.Equal(t, "Activation(9)", nn.Activation(9).String())
}

func TestActivation_Flag(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	act := nn.Tanh
	fs.Var(&act, "activation", "activation function")

	require.NoError(t, fs.Parse([]string{"-activation", "relu"}))
	assert.Equal(t, nn.ReLU, act)

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(nil)
	fs.Var(&act, "activation", "activation function")
	assert.Error(t, fs.Parse([]string{"-activation", "swish"}))
}

func TestActivation_JSON(t *testing.T) {
	type wrapper struct {
		Activation nn.Activation `json:"activation"`
	}

	data, err := json.Marshal(wrapper{Activation: nn.Sigmoid})
	require.NoError(t, err)
	assert.JSONEq(t, `{"activation":"sigmoid"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"activation":"tanh"}`), &w))
	assert.Equal(t, nn.Tanh, w.Activation)

	assert.Error(t, json.Unmarshal([]byte(`{"activation":"gelu"}`), &w))

	_, err = nn.Activation(7).MarshalText()
	assert.Error(t, err)
}

func TestActivation_Apply(t *testing.T) {
	v := autodiff.NewValue(-2, "v")

	assert.Same(t, v, nn.Identity.Apply(v))
	assert.Equal(t, autodiff.OpReLU, nn.ReLU.Apply(v).Kind())
	assert.Equal(t, autodiff.OpTanh, nn.Tanh.Apply(v).Kind())
	assert.Equal(t, autodiff.OpSigmoid, nn.Sigmoid.Apply(v).Kind())
	assert.Panics(t, func() { nn.Activation(-1).Apply(v) })
}
