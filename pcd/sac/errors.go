package sac

import (
	"errors"
)

var (
	// ErrInvalidRange is returned on an invalid sampling range,
	// e.g. requesting more values than the range holds.
	// The range is never clamped; clamping would skew the sampling
	// distribution.
	ErrInvalidRange = errors.New("invalid sample range")

	// ErrNoIndices is returned when sampling is requested before an
	// index universe is set.
	ErrNoIndices = errors.New("no indices set")

	// ErrInvalidIndices is returned when an index universe contains
	// negative or duplicate values.
	ErrInvalidIndices = errors.New("invalid index universe")

	// ErrDegenerate is returned by estimators when the sampled data
	// can not determine model coefficients. The caller is expected to
	// retry with another sample.
	ErrDegenerate = errors.New("degenerate sample")

	// ErrNoConsensus is returned when no valid model was found within
	// the iteration budget.
	ErrNoConsensus = errors.New("no consensus found")
)
