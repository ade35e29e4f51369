package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeltaPercent(t *testing.T) {
	tests := []struct {
		name     string
		dry      float64
		wet      float64
		expected float64
	}{
		{"spa race", 95.0, 101.65, 7.0},
		{"faster in the wet", 100, 98.5, -1.5},
		{"rounds half away from zero", 100, 100.125, 0.13},
		{"rounds negative half away from zero", 100, 99.875, -0.13},
		{"no change", 88.2, 88.2, 0},
		{"rounds to two places", 90, 100, 11.11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, ok := DeltaPercent(tt.dry, tt.wet)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, delta)
		})
	}
}

func TestDeltaPercentZeroDry(t *testing.T) {
	_, ok := DeltaPercent(0, 100)
	assert.False(t, ok)
}
