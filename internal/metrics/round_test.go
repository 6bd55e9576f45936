package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		value  float64
		places int32
		want   float64
	}{
		{1.005, 2, 1.01},
		{-1.005, 2, -1.01},
		{2.5, 0, 3},
		{0.1 + 0.2, 2, 0.3},
		{0.91249, 3, 0.912},
		{0.9125, 3, 0.913},
		{1234.5678, 2, 1234.57},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.value, tt.places), "Round(%v, %d)", tt.value, tt.places)
	}

	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
	assert.True(t, math.IsInf(Round(math.Inf(1), 2), 1))
}
