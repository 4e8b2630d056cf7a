package rqa

import "math"

// lowestFloat32 seeds the running maximum of the L∞ metric so that the first
// comparison always wins.
const lowestFloat32 = -math.MaxFloat32

// Metric computes the distance between two embedded vectors. The vectors are
// read directly out of series windows given per-window indices, so the scalar
// baseline (whole series, global indices) and the tile executor (per-tile
// windows, local indices) run the identical float32 arithmetic.
type Metric interface {
	// Name identifies the metric in the kernel registry.
	Name() string
	// Symmetric reports whether Distance(i, j) == Distance(j, i).
	Symmetric() bool
	// Distance returns the distance between the embedded vector anchored at
	// seriesX[indexX] and the one anchored at seriesY[indexY]. Both vectors
	// consist of dim samples strided by delay.
	Distance(seriesX, seriesY []float32, dim, delay, indexX, indexY int) float32
}

// Taxicab is the L1 metric.
type Taxicab struct{}

// Name implements Metric.
func (Taxicab) Name() string { return "taxicab_metric" }

// Symmetric implements Metric.
func (Taxicab) Symmetric() bool { return true }

// Distance implements Metric.
func (Taxicab) Distance(seriesX, seriesY []float32, dim, delay, indexX, indexY int) float32 {
	var d float32
	for k := 0; k < dim; k++ {
		v := seriesX[indexX+k*delay] - seriesY[indexY+k*delay]
		if v < 0 {
			v = -v
		}
		d += v
	}
	return d
}

// Euclidean is the L2 metric.
type Euclidean struct{}

// Name implements Metric.
func (Euclidean) Name() string { return "euclidean_metric" }

// Symmetric implements Metric.
func (Euclidean) Symmetric() bool { return true }

// Distance implements Metric.
func (Euclidean) Distance(seriesX, seriesY []float32, dim, delay, indexX, indexY int) float32 {
	var d float32
	for k := 0; k < dim; k++ {
		v := seriesX[indexX+k*delay] - seriesY[indexY+k*delay]
		d += v * v
	}
	return float32(math.Sqrt(float64(d)))
}

// Maximum is the L∞ metric.
type Maximum struct{}

// Name implements Metric.
func (Maximum) Name() string { return "maximum_metric" }

// Symmetric implements Metric.
func (Maximum) Symmetric() bool { return true }

// Distance implements Metric.
func (Maximum) Distance(seriesX, seriesY []float32, dim, delay, indexX, indexY int) float32 {
	var d float32 = lowestFloat32
	for k := 0; k < dim; k++ {
		v := seriesX[indexX+k*delay] - seriesY[indexY+k*delay]
		if v < 0 {
			v = -v
		}
		if v > d {
			d = v
		}
	}
	return d
}
