package train

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ReportInterval(t *testing.T) {
	tests := []struct {
		every, epochs, want int
	}{
		{0, 5, 1},
		{0, 10, 1},
		{0, 100, 10},
		{0, 1234, 123},
		{7, 100, 7},
		{-1, 100, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Config{ReportEvery: tt.every}.reportInterval(tt.epochs),
			"every=%d epochs=%d", tt.every, tt.epochs)
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{}.Validate())
	assert.Error(t, Config{Lambda: -0.1}.Validate())
	assert.Error(t, Config{Lambda: math.NaN()}.Validate())
	assert.Error(t, Config{Lambda: math.Inf(1)}.Validate())
}
