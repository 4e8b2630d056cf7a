package rqa

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestMetricDistances(t *testing.T) {
	// Two embedded vectors of dimension 3 with delay 2:
	// x = (1, 3, 5), y = (2, 1, 9).
	series := []float32{1, 2, 3, 1, 5, 9, 7}
	tests := []struct {
		metric Metric
		want   float32
	}{
		{Taxicab{}, 1 + 2 + 4},
		{Euclidean{}, 4.5825758}, // sqrt(1 + 4 + 16)
		{Maximum{}, 4},
	}
	for _, test := range tests {
		got := test.metric.Distance(series, series, 3, 2, 0, 1)
		expect.True(t, got-test.want < 1e-5 && test.want-got < 1e-5,
			"%s: got %v, want %v", test.metric.Name(), got, test.want)
	}
}

func TestMetricSymmetry(t *testing.T) {
	series := []float32{0.3, -1.5, 2.25, 0.125, -4, 8.5}
	for _, metric := range []Metric{Taxicab{}, Euclidean{}, Maximum{}} {
		expect.True(t, metric.Symmetric())
		for ix := 0; ix < 3; ix++ {
			for iy := 0; iy < 3; iy++ {
				expect.EQ(t, metric.Distance(series, series, 2, 2, ix, iy),
					metric.Distance(series, series, 2, 2, iy, ix))
			}
		}
	}
}

func TestMetricIdenticalVectors(t *testing.T) {
	series := []float32{1.5, 1.5, 1.5, 1.5}
	for _, metric := range []Metric{Taxicab{}, Euclidean{}, Maximum{}} {
		// The maximum metric must not report its seed for a zero distance.
		expect.EQ(t, metric.Distance(series, series, 2, 1, 0, 2), float32(0))
	}
}

func TestMetricSingleDimension(t *testing.T) {
	series := []float32{1, 4}
	for _, metric := range []Metric{Taxicab{}, Euclidean{}, Maximum{}} {
		expect.EQ(t, metric.Distance(series, series, 1, 1, 0, 1), float32(3))
	}
}
