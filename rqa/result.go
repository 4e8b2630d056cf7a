package rqa

import (
	"fmt"
	"io"
)

// RQAResult holds the raw counters of one analysis. The quantitative
// measures are derived on demand from the frequency distributions and the
// minimum line lengths in Settings.
type RQAResult struct {
	Settings Settings
	Runtimes Runtimes
	// RecurrencePoints[i] is the number of recurrences in column i.
	RecurrencePoints []uint64
	// Frequency distributions of diagonal, vertical and white vertical
	// line lengths, each of length NumVectors.
	DiagonalFrequencyDistribution      FreqDistribution
	VerticalFrequencyDistribution      FreqDistribution
	WhiteVerticalFrequencyDistribution FreqDistribution
}

// NumRecurrencePoints is the total number of recurrence points.
func (r *RQAResult) NumRecurrencePoints() uint64 {
	var n uint64
	for _, v := range r.RecurrencePoints {
		n += v
	}
	return n
}

// RecurrenceRate is RR = #recurrence points / N².
func (r *RQAResult) RecurrenceRate() float64 {
	n := r.Settings.NumVectors()
	if n <= 0 {
		return 0
	}
	return float64(r.NumRecurrencePoints()) / float64(n) / float64(n)
}

// AverageLocalRecurrenceRate is #recurrence points / N.
func (r *RQAResult) AverageLocalRecurrenceRate() float64 {
	n := r.Settings.NumVectors()
	if n <= 0 {
		return 0
	}
	return float64(r.NumRecurrencePoints()) / float64(n)
}

// Determinism is DET: the fraction of recurrence points that form diagonal
// lines of length >= L_min.
func (r *RQAResult) Determinism() float64 {
	points := r.NumRecurrencePoints()
	if points == 0 {
		return 0
	}
	return float64(r.DiagonalFrequencyDistribution.NumLinePoints(r.Settings.MinDiagonalLineLength)) / float64(points)
}

// AverageDiagonalLine is L: the mean diagonal line length over lines of
// length >= L_min.
func (r *RQAResult) AverageDiagonalLine() float64 {
	min := r.Settings.MinDiagonalLineLength
	lines := r.DiagonalFrequencyDistribution.NumLines(min)
	if lines == 0 {
		return 0
	}
	return float64(r.DiagonalFrequencyDistribution.NumLinePoints(min)) / float64(lines)
}

// LongestDiagonalLine is L_max over the whole distribution.
func (r *RQAResult) LongestDiagonalLine() int {
	return r.DiagonalFrequencyDistribution.Longest()
}

// Divergence is DIV = 1/L_max, or 0 when there is no diagonal line.
func (r *RQAResult) Divergence() float64 {
	if l := r.LongestDiagonalLine(); l > 0 {
		return 1 / float64(l)
	}
	return 0
}

// EntropyDiagonalLines is L_entr.
func (r *RQAResult) EntropyDiagonalLines() float64 {
	return r.DiagonalFrequencyDistribution.Entropy(r.Settings.MinDiagonalLineLength)
}

// Laminarity is LAM: the fraction of recurrence points that form vertical
// lines of length >= V_min.
func (r *RQAResult) Laminarity() float64 {
	points := r.NumRecurrencePoints()
	if points == 0 {
		return 0
	}
	return float64(r.VerticalFrequencyDistribution.NumLinePoints(r.Settings.MinVerticalLineLength)) / float64(points)
}

// TrappingTime is TT: the mean vertical line length over lines of length
// >= V_min.
func (r *RQAResult) TrappingTime() float64 {
	min := r.Settings.MinVerticalLineLength
	lines := r.VerticalFrequencyDistribution.NumLines(min)
	if lines == 0 {
		return 0
	}
	return float64(r.VerticalFrequencyDistribution.NumLinePoints(min)) / float64(lines)
}

// LongestVerticalLine is V_max.
func (r *RQAResult) LongestVerticalLine() int {
	return r.VerticalFrequencyDistribution.Longest()
}

// EntropyVerticalLines is V_entr.
func (r *RQAResult) EntropyVerticalLines() float64 {
	return r.VerticalFrequencyDistribution.Entropy(r.Settings.MinVerticalLineLength)
}

// AverageWhiteVerticalLine is W: the mean white vertical line length over
// lines of length >= W_min.
func (r *RQAResult) AverageWhiteVerticalLine() float64 {
	min := r.Settings.MinWhiteVerticalLineLength
	lines := r.WhiteVerticalFrequencyDistribution.NumLines(min)
	if lines == 0 {
		return 0
	}
	return float64(r.WhiteVerticalFrequencyDistribution.NumLinePoints(min)) / float64(lines)
}

// LongestWhiteVerticalLine is W_max.
func (r *RQAResult) LongestWhiteVerticalLine() int {
	return r.WhiteVerticalFrequencyDistribution.Longest()
}

// EntropyWhiteVerticalLines is W_entr.
func (r *RQAResult) EntropyWhiteVerticalLines() float64 {
	return r.WhiteVerticalFrequencyDistribution.Entropy(r.Settings.MinWhiteVerticalLineLength)
}

// RatioDeterminismRecurrenceRate is DET/RR, or 0 when RR is 0.
func (r *RQAResult) RatioDeterminismRecurrenceRate() float64 {
	if rr := r.RecurrenceRate(); rr > 0 {
		return r.Determinism() / rr
	}
	return 0
}

// RatioLaminarityDeterminism is LAM/DET, or 0 when DET is 0.
func (r *RQAResult) RatioLaminarityDeterminism() float64 {
	if det := r.Determinism(); det > 0 {
		return r.Laminarity() / det
	}
	return 0
}

// IndicesByLocalRecurrenceRate returns the vector indices whose local
// recurrence rate is at most the threshold.
func (r *RQAResult) IndicesByLocalRecurrenceRate(threshold float64) []int {
	n := r.Settings.NumVectors()
	var out []int
	for i, points := range r.RecurrencePoints {
		if float64(points)/float64(n) <= threshold {
			out = append(out, i)
		}
	}
	return out
}

// IndicesByNumberOfLocalRecurrencePoints returns the vector indices with at
// most the given number of local recurrence points.
func (r *RQAResult) IndicesByNumberOfLocalRecurrencePoints(threshold uint64) []int {
	var out []int
	for i, points := range r.RecurrencePoints {
		if points <= threshold {
			out = append(out, i)
		}
	}
	return out
}

// WriteDiagonalFrequencyDistribution writes the diagonal distribution as
// "length<TAB>count" rows starting at L_min.
func (r *RQAResult) WriteDiagonalFrequencyDistribution(w io.Writer) error {
	return r.DiagonalFrequencyDistribution.WriteTSV(w, r.Settings.MinDiagonalLineLength)
}

// WriteVerticalFrequencyDistribution writes the vertical distribution as
// "length<TAB>count" rows starting at V_min.
func (r *RQAResult) WriteVerticalFrequencyDistribution(w io.Writer) error {
	return r.VerticalFrequencyDistribution.WriteTSV(w, r.Settings.MinVerticalLineLength)
}

// WriteWhiteVerticalFrequencyDistribution writes the white vertical
// distribution as "length<TAB>count" rows starting at W_min.
func (r *RQAResult) WriteWhiteVerticalFrequencyDistribution(w io.Writer) error {
	return r.WhiteVerticalFrequencyDistribution.WriteTSV(w, r.Settings.MinWhiteVerticalLineLength)
}

// String renders the measures in the fixed report order.
func (r *RQAResult) String() string {
	return fmt.Sprintf("RQA Result:\n"+
		"-----------\n"+
		"Minimum diagonal line length (L_min): %d\n"+
		"Minimum vertical line length (V_min): %d\n"+
		"Minimum white vertical line length (W_min): %d\n"+
		"\n"+
		"Recurrence rate (RR): %f\n"+
		"Determinism (DET): %f\n"+
		"Average diagonal line length (L): %f\n"+
		"Longest diagonal line length (L_max): %d\n"+
		"Divergence (DIV): %f\n"+
		"Entropy diagonal lines (L_entr): %f\n"+
		"Laminarity (LAM): %f\n"+
		"Trapping time (TT): %f\n"+
		"Longest vertical line length (V_max): %d\n"+
		"Entropy vertical lines (V_entr): %f\n"+
		"Average white vertical line length (W): %f\n"+
		"Longest white vertical line length (W_max): %d\n"+
		"Entropy white vertical lines (W_entr): %f\n"+
		"\n"+
		"Ratio determinism / recurrence rate (DET/RR): %f\n"+
		"Ratio laminarity / determinism (LAM/DET): %f\n",
		r.Settings.MinDiagonalLineLength,
		r.Settings.MinVerticalLineLength,
		r.Settings.MinWhiteVerticalLineLength,
		r.RecurrenceRate(),
		r.Determinism(),
		r.AverageDiagonalLine(),
		r.LongestDiagonalLine(),
		r.Divergence(),
		r.EntropyDiagonalLines(),
		r.Laminarity(),
		r.TrappingTime(),
		r.LongestVerticalLine(),
		r.EntropyVerticalLines(),
		r.AverageWhiteVerticalLine(),
		r.LongestWhiteVerticalLine(),
		r.EntropyWhiteVerticalLines(),
		r.RatioDeterminismRecurrenceRate(),
		r.RatioLaminarityDeterminism())
}
