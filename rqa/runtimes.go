package rqa

import (
	"fmt"
	"time"
)

// Runtimes aggregates the wall-clock time spent in each stage of tile
// processing. Values add across tiles and across devices.
type Runtimes struct {
	// TransferToDevice covers copying series windows into device scratch.
	TransferToDevice time.Duration
	// TransferFromDevice covers merging per-tile results back out.
	TransferFromDevice time.Duration
	// CreateMatrix covers materialising the recurrence bits of a tile.
	CreateMatrix time.Duration
	// DetectVerticalLines covers the vertical and white-vertical scan.
	DetectVerticalLines time.Duration
	// DetectDiagonalLines covers the diagonal scan.
	DetectDiagonalLines time.Duration
}

// Add returns the sum of r and o.
func (r Runtimes) Add(o Runtimes) Runtimes {
	r.TransferToDevice += o.TransferToDevice
	r.TransferFromDevice += o.TransferFromDevice
	r.CreateMatrix += o.CreateMatrix
	r.DetectVerticalLines += o.DetectVerticalLines
	r.DetectDiagonalLines += o.DetectDiagonalLines
	return r
}

func (r Runtimes) String() string {
	return fmt.Sprintf("Runtimes\n"+
		"--------\n"+
		"Transfer to Device: %.4fs\n"+
		"Transfer from Device: %.4fs\n"+
		"Create Matrix: %.4fs\n"+
		"Detect Vertical Lines: %.4fs\n"+
		"Detect Diagonal Lines: %.4fs\n",
		r.TransferToDevice.Seconds(),
		r.TransferFromDevice.Seconds(),
		r.CreateMatrix.Seconds(),
		r.DetectVerticalLines.Seconds(),
		r.DetectDiagonalLines.Seconds())
}
