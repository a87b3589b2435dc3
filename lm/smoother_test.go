package lm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/langkit/errors"
)

func TestSmoothers(t *testing.T) {
	tests := []struct {
		name     string
		s        Smoother
		c, ctx   int
		lower    float64
		vocab    int
		expected float64
	}{
		{"mle seen", MLE{}, 2, 4, 0.1, 10, 0.5},
		{"mle unseen context", MLE{}, 0, 0, 0.1, 10, 0},
		{"add-one", AddK{K: 1}, 2, 4, 0.1, 10, 3.0 / 14},
		{"add-k unseen context", AddK{K: 0.5}, 0, 0, 0.1, 10, 0.1},
		{"backoff seen", StupidBackoff{Alpha: 0.4}, 2, 4, 0.1, 10, 0.5},
		{"backoff unseen", StupidBackoff{Alpha: 0.4}, 0, 4, 0.1, 10, 0.04},
		{"interpolated", Interpolated{Lambda: 0.2}, 2, 4, 0.1, 10, 0.8*0.5 + 0.2*0.1},
		{"interpolated unseen context", Interpolated{Lambda: 0.2}, 0, 0, 0.1, 10, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.s.Smooth(tt.c, tt.ctx, tt.lower, tt.vocab), 1e-12)
		})
	}
}

func TestParseSmoother(t *testing.T) {
	p := Params{K: 0.5, Alpha: 0.4, Lambda: 0.3}

	for _, name := range Smoothings {
		s, err := ParseSmoother(name, p)
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name())
	}

	s, err := ParseSmoother(" AddK ", p)
	require.NoError(t, err)
	assert.Equal(t, AddK{K: 0.5}, s)

	for _, bad := range []struct {
		name string
		p    Params
	}{
		{"laplace", Params{K: 0}},
		{"backoff", Params{Alpha: 1.5}},
		{"interpolated", Params{Lambda: -0.1}},
		{"kneser-ney", p},
	} {
		_, err := ParseSmoother(bad.name, bad.p)
		assert.True(t, errors.IsInvalidRequestError(err), bad.name)
	}
}
