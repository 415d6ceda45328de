package http //nolint:testpackage // Need access to unexported renderResult

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/webcalc/internal/domain"
)

func TestRenderResult(t *testing.T) {
	// Summed at run time; a constant expression would fold to exactly 0.3.
	tenth, fifth := 0.1, 0.2

	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{name: "whole number as integer", value: 5, expected: "5"},
		{name: "negative whole number", value: -16, expected: "-16"},
		{name: "zero", value: 0, expected: "0"},
		{name: "negative zero", value: math.Copysign(0, -1), expected: "0"},
		{name: "fraction", value: 2.5, expected: "2.5"},
		{name: "shortest representation", value: tenth + fifth, expected: "0.30000000000000004"},
		{name: "small fraction", value: 1e-7, expected: "1e-07"},
		{name: "whole number beyond int64", value: 1e21, expected: "1000000000000000000000"},
		{name: "largest exact int64 boundary", value: 1 << 62, expected: "4611686018427387904"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := renderResult(tt.value)
			require.NoError(t, err)
			require.Equal(t, tt.expected, result.String())
		})
	}

	t.Run("should reject non-finite results", func(t *testing.T) {
		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := renderResult(v)
			require.ErrorIs(t, err, domain.ErrInvalidDomain)
			require.EqualError(t, err, "result is not a finite number")
		}
	})
}
