package rqa

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Settings describes one recurrence analysis. All fields are fixed at
// creation; the analysis never mutates them.
type Settings struct {
	// Series is the scalar time series under analysis.
	Series []float32
	// EmbeddingDimension (m) and TimeDelay (τ) define the delay embedding.
	EmbeddingDimension int
	TimeDelay          int
	// Metric measures the distance between embedded vectors.
	Metric Metric
	// Neighbourhood decides whether a distance is a recurrence.
	Neighbourhood Neighbourhood
	// TheilerCorrector is the minimum |i-j| for a cell to count as a
	// diagonal recurrence.
	TheilerCorrector int
	// Minimum line lengths entering the RQA measures. Each must be >= 1.
	MinDiagonalLineLength      int
	MinVerticalLineLength      int
	MinWhiteVerticalLineLength int
}

// NewSettings returns settings for the series with the default embedding
// (m=2, τ=2), the Euclidean metric, a fixed radius of 1.0, Theiler corrector
// 1, and all minimum line lengths at 2.
func NewSettings(series []float32) Settings {
	return Settings{
		Series:                     series,
		EmbeddingDimension:         2,
		TimeDelay:                  2,
		Metric:                     Euclidean{},
		Neighbourhood:              FixedRadius{Radius: 1.0},
		TheilerCorrector:           1,
		MinDiagonalLineLength:      2,
		MinVerticalLineLength:      2,
		MinWhiteVerticalLineLength: 2,
	}
}

// Offset is the number of leading samples consumed by the embedding,
// (m-1)·τ.
func (s *Settings) Offset() int {
	return (s.EmbeddingDimension - 1) * s.TimeDelay
}

// NumVectors is the number of embedded vectors, N = len(Series) - Offset.
func (s *Settings) NumVectors() int {
	return len(s.Series) - s.Offset()
}

// Symmetric reports whether the recurrence matrix is symmetric: the metric
// must be symmetric and the neighbourhood must be a pure distance predicate
// (fixed radius or radius corridor).
func (s *Settings) Symmetric() bool {
	if s.Metric == nil || !s.Metric.Symmetric() {
		return false
	}
	switch s.Neighbourhood.(type) {
	case FixedRadius, RadiusCorridor:
		return true
	}
	return false
}

// Validate checks the domain constraints. The analysis constructors call it;
// it never substitutes defaults for out-of-range parameters.
func (s *Settings) Validate() error {
	if s.Metric == nil {
		return errors.E("settings: no metric")
	}
	if s.Neighbourhood == nil {
		return errors.E("settings: no neighbourhood")
	}
	if s.EmbeddingDimension < 1 {
		return errors.E(fmt.Sprintf("settings: embedding dimension %d < 1", s.EmbeddingDimension))
	}
	if s.TimeDelay < 1 {
		return errors.E(fmt.Sprintf("settings: time delay %d < 1", s.TimeDelay))
	}
	if s.TheilerCorrector < 0 {
		return errors.E(fmt.Sprintf("settings: theiler corrector %d < 0", s.TheilerCorrector))
	}
	if n := s.NumVectors(); n < 1 {
		return errors.E(fmt.Sprintf("settings: series of length %d yields %d embedded vectors (m=%d, tau=%d)",
			len(s.Series), n, s.EmbeddingDimension, s.TimeDelay))
	}
	if s.MinDiagonalLineLength < 1 {
		return errors.E(fmt.Sprintf("settings: minimum diagonal line length %d < 1", s.MinDiagonalLineLength))
	}
	if s.MinVerticalLineLength < 1 {
		return errors.E(fmt.Sprintf("settings: minimum vertical line length %d < 1", s.MinVerticalLineLength))
	}
	if s.MinWhiteVerticalLineLength < 1 {
		return errors.E(fmt.Sprintf("settings: minimum white vertical line length %d < 1", s.MinWhiteVerticalLineLength))
	}
	return nil
}

// SeriesWindow returns the contiguous samples needed to derive the count
// embedded vectors starting at index start: count+Offset() samples. The
// returned slice aliases Series and must not be written.
func (s *Settings) SeriesWindow(start, count int) ([]float32, error) {
	if start < 0 || count < 0 || start+count > s.NumVectors() {
		return nil, errors.E(fmt.Sprintf("series window [%d,%d) out of range (N=%d)", start, start+count, s.NumVectors()))
	}
	return s.Series[start : start+count+s.Offset()], nil
}

// Vectors materialises count embedded vectors starting at index start as a
// flat row-major buffer of count*m float32 values.
func (s *Settings) Vectors(start, count int) ([]float32, error) {
	if start < 0 || count < 0 || start+count > s.NumVectors() {
		return nil, errors.E(fmt.Sprintf("vectors [%d,%d) out of range (N=%d)", start, start+count, s.NumVectors()))
	}
	m := s.EmbeddingDimension
	out := make([]float32, count*m)
	for i := 0; i < count; i++ {
		for d := 0; d < m; d++ {
			out[i*m+d] = s.Series[start+i+d*s.TimeDelay]
		}
	}
	return out, nil
}

func (s *Settings) String() string {
	return fmt.Sprintf("embedding dimension: %d, time delay: %d, metric: %s, neighbourhood: %v, "+
		"theiler corrector: %d, minimum line lengths: %d/%d/%d, series length: %d, vectors: %d, symmetric: %v",
		s.EmbeddingDimension, s.TimeDelay, s.Metric.Name(), s.Neighbourhood,
		s.TheilerCorrector, s.MinDiagonalLineLength, s.MinVerticalLineLength, s.MinWhiteVerticalLineLength,
		len(s.Series), s.NumVectors(), s.Symmetric())
}
