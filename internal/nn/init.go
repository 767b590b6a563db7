package nn

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws initial parameter values.
//
// distuv.Uniform and the other gonum distributions satisfy it.
type Sampler interface {
	Rand() float64
}

// NewSource returns a seeded random source for deterministic initialization.
func NewSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// NewUniform returns a sampler over [-1, 1) drawing from src.
func NewUniform(src rand.Source) distuv.Uniform {
	return NewUniformRange(-1, 1, src)
}

// NewUniformRange returns a sampler over [lo, hi) drawing from src.
func NewUniformRange(lo, hi float64, src rand.Source) distuv.Uniform {
	return distuv.Uniform{
		Min: lo,
		Max: hi,
		Src: src,
	}
}

// Xavier returns a Xavier/Glorot uniform sampler:
// U(-sqrt(6/(fanIn+fanOut)), sqrt(6/(fanIn+fanOut))).
func Xavier(fanIn, fanOut int, src rand.Source) distuv.Uniform {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return NewUniformRange(-bound, bound, src)
}

// Init chooses the sampler for each layer from the layer's fan-in and
// fan-out.
type Init func(fanIn, fanOut int) Sampler

// UniformInit draws every layer from U(-1, 1). It produces the same values
// as passing NewUniform(src) to NewMLP.
func UniformInit(src rand.Source) Init {
	u := NewUniform(src)
	return func(int, int) Sampler { return u }
}

// XavierInit draws each layer from Xavier(fanIn, fanOut, src). All layers
// share src, so the result is deterministic for a seeded source.
func XavierInit(src rand.Source) Init {
	return func(fanIn, fanOut int) Sampler {
		return Xavier(fanIn, fanOut, src)
	}
}

// Fixed is a Sampler that always returns the same value. Useful for tests
// and for zero-initialized biases.
type Fixed float64

// Rand returns f.
func (f Fixed) Rand() float64 {
	return float64(f)
}
