package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Activation selects the nonlinearity applied by a Neuron.
//
// The zero value is Identity, which leaves the weighted sum unchanged and is
// the conventional choice for the output layer of a regressor.
type Activation int

// Supported activations.
const (
	Identity Activation = iota
	ReLU
	Tanh
	Sigmoid
)

var activationNames = map[Activation]string{
	Identity: "identity",
	ReLU:     "relu",
	Tanh:     "tanh",
	Sigmoid:  "sigmoid",
}

// Apply applies the activation to v.
func (a Activation) Apply(v *autodiff.Value) *autodiff.Value {
	switch a {
	case Identity:
		return v
	case ReLU:
		return v.ReLU()
	case Tanh:
		return v.Tanh()
	case Sigmoid:
		return v.Sigmoid()
	default:
		panic(fmt.Sprintf("Activation.Apply: unknown activation %d", int(a)))
	}
}

// String implements fmt.Stringer.
func (a Activation) String() string {
	if name, ok := activationNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Activation(%d)", int(a))
}

// ParseActivation parses an activation name. "linear" is accepted as an
// alias for identity.
func ParseActivation(s string) (Activation, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "linear" {
		return Identity, nil
	}
	for a, n := range activationNames {
		if n == name {
			return a, nil
		}
	}
	return Identity, fmt.Errorf("unknown activation %q (want identity, relu, tanh or sigmoid)", s)
}

// Set implements flag.Value.
func (a *Activation) Set(s string) error {
	parsed, err := ParseActivation(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Activation) MarshalText() ([]byte, error) {
	if _, ok := activationNames[a]; !ok {
		return nil, fmt.Errorf("unknown activation %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Activation) UnmarshalText(text []byte) error {
	return a.Set(string(text))
}
