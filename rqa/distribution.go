package rqa

import (
	"io"
	"math"
	"strconv"

	"github.com/grailbio/base/tsv"
)

// FreqDistribution counts maximal runs of recurrence (or non-recurrence)
// points by length. Entry i holds the number of runs of length exactly i+1.
type FreqDistribution []uint64

// NewFreqDistribution returns an empty distribution for runs up to length n.
func NewFreqDistribution(n int) FreqDistribution {
	return make(FreqDistribution, n)
}

// Record counts one run of the given length.
func (f FreqDistribution) Record(length int) {
	f[length-1]++
}

// Merge adds o into f. The two distributions must have the same length.
func (f FreqDistribution) Merge(o FreqDistribution) {
	for i, v := range o {
		f[i] += v
	}
}

// NumLines is the number of runs of length >= min.
func (f FreqDistribution) NumLines(min int) uint64 {
	var n uint64
	for i := min - 1; i < len(f); i++ {
		n += f[i]
	}
	return n
}

// NumLinePoints is the number of points contained in runs of length >= min.
func (f FreqDistribution) NumLinePoints(min int) uint64 {
	var n uint64
	for i := min - 1; i < len(f); i++ {
		n += uint64(i+1) * f[i]
	}
	return n
}

// Longest is the largest length with a nonzero count, or 0 when the
// distribution is empty.
func (f FreqDistribution) Longest() int {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] > 0 {
			return i + 1
		}
	}
	return 0
}

// Entropy is the Shannon entropy (natural log) of the line lengths >= min.
func (f FreqDistribution) Entropy(min int) float64 {
	lines := f.NumLines(min)
	if lines == 0 {
		return 0
	}
	var sum float64
	for i := min - 1; i < len(f); i++ {
		if f[i] == 0 {
			continue
		}
		p := float64(f[i]) / float64(lines)
		sum += p * math.Log(p)
	}
	if sum == 0 {
		return 0
	}
	return -sum
}

// WriteTSV writes one "length<TAB>count" row per length >= min.
func (f FreqDistribution) WriteTSV(w io.Writer, min int) error {
	out := tsv.NewWriter(w)
	for i := min - 1; i < len(f); i++ {
		out.WriteString(strconv.Itoa(i + 1))
		out.WriteString(strconv.FormatUint(f[i], 10))
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}
