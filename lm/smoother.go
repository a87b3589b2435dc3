package lm

import (
	"strings"

	"github.com/teranos/langkit/errors"
)

// Smoother turns raw counts into a conditional probability.
//
// ngramCount is the count of the full n-gram, contextCount the number of
// n-grams that share its context, lower the probability the next-lower
// order assigns to the same word, and vocab the vocabulary size.
type Smoother interface {
	Smooth(ngramCount, contextCount int, lower float64, vocab int) float64
	Name() string
}

// Smoother names accepted by ParseSmoother and am.toml.
const (
	SmoothingMLE          = "mle"
	SmoothingLaplace      = "laplace"
	SmoothingBackoff      = "backoff"
	SmoothingInterpolated = "interpolated"
)

// Smoothings lists the valid smoother names.
var Smoothings = []string{SmoothingMLE, SmoothingLaplace, SmoothingBackoff, SmoothingInterpolated}

// MLE is the unsmoothed relative frequency. Unseen events get 0.
type MLE struct{}

func (MLE) Smooth(ngramCount, contextCount int, _ float64, _ int) float64 {
	if contextCount == 0 {
		return 0
	}
	return float64(ngramCount) / float64(contextCount)
}

func (MLE) Name() string { return SmoothingMLE }

// AddK implements add-k smoothing; K = 1 is Laplace.
type AddK struct {
	K float64
}

func (s AddK) Smooth(ngramCount, contextCount int, _ float64, vocab int) float64 {
	if contextCount == 0 {
		return 1 / float64(max(vocab, 1))
	}
	return (float64(ngramCount) + s.K) / (float64(contextCount) + s.K*float64(vocab))
}

func (AddK) Name() string { return SmoothingLaplace }

// StupidBackoff returns the relative frequency when the n-gram was seen
// and Alpha times the lower-order score otherwise. Scores are not
// normalised.
type StupidBackoff struct {
	Alpha float64
}

func (s StupidBackoff) Smooth(ngramCount, contextCount int, lower float64, _ int) float64 {
	if ngramCount > 0 && contextCount > 0 {
		return float64(ngramCount) / float64(contextCount)
	}
	return s.Alpha * lower
}

func (StupidBackoff) Name() string { return SmoothingBackoff }

// Interpolated mixes the relative frequency with the lower order:
// (1-Lambda)*c/C + Lambda*lower. An unseen context uses lower alone.
type Interpolated struct {
	Lambda float64
}

func (s Interpolated) Smooth(ngramCount, contextCount int, lower float64, _ int) float64 {
	if contextCount == 0 {
		return lower
	}
	body := float64(ngramCount) / float64(contextCount)
	return (1-s.Lambda)*body + s.Lambda*lower
}

func (Interpolated) Name() string { return SmoothingInterpolated }

// Params carries the tunables of every smoother.
type Params struct {
	K      float64
	Alpha  float64
	Lambda float64
}

// ParseSmoother builds the named smoother and validates its parameter.
func ParseSmoother(name string, p Params) (Smoother, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SmoothingMLE:
		return MLE{}, nil
	case SmoothingLaplace, "addk", "add-k":
		if p.K <= 0 {
			return nil, errors.NewInvalidRequestError("add-k smoothing needs k > 0, got %v", p.K)
		}
		return AddK{K: p.K}, nil
	case SmoothingBackoff:
		if p.Alpha <= 0 || p.Alpha > 1 {
			return nil, errors.NewInvalidRequestError("backoff alpha must be in (0, 1], got %v", p.Alpha)
		}
		return StupidBackoff{Alpha: p.Alpha}, nil
	case SmoothingInterpolated:
		if p.Lambda < 0 || p.Lambda > 1 {
			return nil, errors.NewInvalidRequestError("interpolation lambda must be in [0, 1], got %v", p.Lambda)
		}
		return Interpolated{Lambda: p.Lambda}, nil
	}
	return nil, errors.WithHintf(
		errors.NewInvalidRequestError("unknown smoothing %q", name),
		"use one of: %s", strings.Join(Smoothings, ", "),
	)
}
