package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		length   int
		expected []float64
	}{
		{
			name:     "Nil input yields neutral vector",
			input:    nil,
			length:   4,
			expected: []float64{0.5, 0.5, 0.5, 0.5},
		},
		{
			name:     "Empty input yields neutral vector",
			input:    []float64{},
			length:   3,
			expected: []float64{0.5, 0.5, 0.5},
		},
		{
			name:     "Short input right-padded with neutral",
			input:    []float64{0.2, 0.9},
			length:   4,
			expected: []float64{0.2, 0.9, 0.5, 0.5},
		},
		{
			name:     "Long input truncated",
			input:    []float64{0.1, 0.2, 0.3, 0.4, 0.5},
			length:   3,
			expected: []float64{0.1, 0.2, 0.3},
		},
		{
			name:     "Out of range entries clamped",
			input:    []float64{-2, 1.5, 0.7},
			length:   3,
			expected: []float64{0, 1, 0.7},
		},
		{
			name:     "NaN and Inf become neutral",
			input:    []float64{math.NaN(), math.Inf(1), math.Inf(-1)},
			length:   3,
			expected: []float64{0.5, 0.5, 0.5},
		},
		{
			name:     "Exact length passes through clamped",
			input:    []float64{0, 1, 0.25},
			length:   3,
			expected: []float64{0, 1, 0.25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input, tt.length)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	input := []float64{-1, 2, 0.5}
	_ = Normalize(input, 5)
	assert.Equal(t, []float64{-1, 2, 0.5}, input)
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("Identical vectors score one", func(t *testing.T) {
		v := []float64{1, 0.5, 0.25, 0.75, 1, 0, 0.6, 0.3, 0.9, 0.1}
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
	})

	t.Run("All-neutral vector against itself is well defined", func(t *testing.T) {
		v := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
	})

	t.Run("Empty input yields zero", func(t *testing.T) {
		v := []float64{1, 1, 1}
		assert.Zero(t, CosineSimilarity(nil, v))
		assert.Zero(t, CosineSimilarity(v, []float64{}))
		assert.Zero(t, CosineSimilarity(nil, nil))
	})

	t.Run("Short inputs are padded before comparison", func(t *testing.T) {
		got := CosineSimilarity([]float64{1}, []float64{1})
		assert.InDelta(t, 1.0, got, 1e-9)
	})

	t.Run("Result bounded for arbitrary normalized input", func(t *testing.T) {
		a := []float64{0.9, 0.1, 0.4, 0.6}
		b := []float64{0.2, 0.8, 0.5, 0.5}
		got := CosineSimilarity(a, b)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	})
}
