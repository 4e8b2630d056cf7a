// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package engine

import (
	"time"

	"github.com/grailbio/base/log"
	"github.com/grailbio/rqa/rqa"
	"github.com/grailbio/rqa/tiling"
)

// processSubMatrix runs the full per-tile pipeline: transfer the series
// windows in, materialise the recurrence bits, run the vertical and diagonal
// aggregators against the shared carryovers, and flush the per tile
// distributions into the device accumulators.
func (d *Device) processSubMatrix(a *analysis, sub tiling.SubMatrix) {
	start := time.Now()
	d.loadWindows(a.settings, sub)
	d.runtimes.TransferToDevice += time.Since(start)

	start = time.Now()
	d.createMatrix(a.settings, sub)
	d.runtimes.CreateMatrix += time.Since(start)

	start = time.Now()
	d.detectVerticalLines(a, sub)
	d.runtimes.DetectVerticalLines += time.Since(start)

	start = time.Now()
	d.detectDiagonalLines(a, sub)
	d.runtimes.DetectDiagonalLines += time.Since(start)

	start = time.Now()
	d.flushDistributions()
	d.runtimes.TransferFromDevice += time.Since(start)
}

// loadWindows copies the two series windows the tile needs into device
// scratch. The planner only emits in-range tiles.
func (d *Device) loadWindows(s *rqa.Settings, sub tiling.SubMatrix) {
	windowX, err := s.SeriesWindow(sub.StartX, sub.DimX)
	if err != nil {
		log.Panicf("%v: %v", sub, err)
	}
	windowY, err := s.SeriesWindow(sub.StartY, sub.DimY)
	if err != nil {
		log.Panicf("%v: %v", sub, err)
	}
	d.seriesX = append(d.seriesX[:0], windowX...)
	d.seriesY = append(d.seriesY[:0], windowY...)
}

// createMatrix evaluates the neighbourhood predicate for every cell of the
// tile.
func (d *Device) createMatrix(s *rqa.Settings, sub tiling.SubMatrix) {
	d.matrix.reset(sub.DimX, sub.DimY)
	var (
		metric        = s.Metric
		neighbourhood = s.Neighbourhood
		dim           = s.EmbeddingDimension
		delay         = s.TimeDelay
	)
	for x := 0; x < sub.DimX; x++ {
		for y := 0; y < sub.DimY; y++ {
			if neighbourhood.Contains(metric.Distance(d.seriesX, d.seriesY, dim, delay, x, y)) {
				d.matrix.set(x, y)
			}
		}
	}
}

// detectVerticalLines walks each tile column top to bottom, extending the
// vertical and white vertical carryovers for that column and closing runs
// into the per tile distributions. It also accumulates the recurrence-point
// count of each column.
func (d *Device) detectVerticalLines(a *analysis, sub tiling.SubMatrix) {
	c := a.carry
	for x := 0; x < sub.DimX; x++ {
		col := sub.StartX + x
		var points uint64
		for y := 0; y < sub.DimY; y++ {
			if d.matrix.get(x, y) {
				points++
				if c.whiteLength[col] > 0 {
					d.whiteVertical.Record(int(c.whiteLength[col]))
					c.whiteLength[col] = 0
				}
				if c.verticalLength[col] == 0 {
					c.verticalStart[col] = uint32(sub.StartY + y)
				}
				c.verticalLength[col]++
			} else {
				if c.verticalLength[col] > 0 {
					d.vertical.Record(int(c.verticalLength[col]))
					c.verticalLength[col] = 0
				}
				if c.whiteLength[col] == 0 {
					c.whiteStart[col] = uint32(sub.StartY + y)
				}
				c.whiteLength[col]++
			}
		}
		a.recurrencePoints[col] += points
	}
}

func (d *Device) detectDiagonalLines(a *analysis, sub tiling.SubMatrix) {
	if a.symmetric {
		d.detectDiagonalLinesSymmetric(a, sub)
		return
	}
	d.detectDiagonalLinesFull(a, sub)
}

// detectDiagonalLinesSymmetric scans the half of the matrix with y >= x.
// Tiles strictly below the main diagonal mirror tiles above it and are
// skipped; the distribution is doubled at finalisation instead. Anti
// diagonals with |y-x| below the Theiler corrector never hold a countable
// run and are not walked at all.
func (d *Device) detectDiagonalLinesSymmetric(a *analysis, sub tiling.SubMatrix) {
	if sub.PartitionX > sub.PartitionY {
		return
	}
	diagMin := sub.StartY - (sub.StartX + sub.DimX - 1)
	if diagMin < a.theiler {
		diagMin = a.theiler
	}
	diagMax := sub.StartY + sub.DimY - 1 - sub.StartX
	for diag := diagMin; diag <= diagMax; diag++ {
		// Cells (x, x+diag) inside the tile, in ascending x: the same order
		// the run continues in the tile to the lower right.
		lo := sub.StartX
		if v := sub.StartY - diag; v > lo {
			lo = v
		}
		hi := sub.StartX + sub.DimX - 1
		if v := sub.StartY + sub.DimY - 1 - diag; v < hi {
			hi = v
		}
		open := a.carry.diagonalLength[diag]
		for x := lo; x <= hi; x++ {
			if d.matrix.get(x-sub.StartX, x+diag-sub.StartY) {
				open++
			} else if open > 0 {
				d.diagonal.Record(int(open))
				open = 0
			}
		}
		a.carry.diagonalLength[diag] = open
	}
}

// detectDiagonalLinesFull scans all anti diagonals of the tile against the
// 2N-1 sized carryover.
func (d *Device) detectDiagonalLinesFull(a *analysis, sub tiling.SubMatrix) {
	diagMin := sub.StartY - (sub.StartX + sub.DimX - 1)
	diagMax := sub.StartY + sub.DimY - 1 - sub.StartX
	for diag := diagMin; diag <= diagMax; diag++ {
		if diag > -a.theiler && diag < a.theiler {
			continue
		}
		lo := sub.StartX
		if v := sub.StartY - diag; v > lo {
			lo = v
		}
		hi := sub.StartX + sub.DimX - 1
		if v := sub.StartY + sub.DimY - 1 - diag; v < hi {
			hi = v
		}
		slot := a.n - 1 + diag
		open := a.carry.diagonalLength[slot]
		for x := lo; x <= hi; x++ {
			if d.matrix.get(x-sub.StartX, x+diag-sub.StartY) {
				open++
			} else if open > 0 {
				d.diagonal.Record(int(open))
				open = 0
			}
		}
		a.carry.diagonalLength[slot] = open
	}
}

// flushDistributions adds the per tile distributions into the device
// accumulators and clears them for the next tile.
func (d *Device) flushDistributions() {
	flush := func(local, acc rqa.FreqDistribution) {
		for i, v := range local {
			if v != 0 {
				acc[i] += v
				local[i] = 0
			}
		}
	}
	flush(d.diagonal, d.diagonalAcc)
	flush(d.vertical, d.verticalAcc)
	flush(d.whiteVertical, d.whiteVerticalAcc)
}
