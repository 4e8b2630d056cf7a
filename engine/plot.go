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
	"context"
	"sync/atomic"
	"time"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/rqa/rqa"
	"github.com/grailbio/rqa/tiling"
)

// RecurrencePlot materialises the full recurrence matrix tile by tile.
// Unlike RQA it has no carryover dependencies, so its tiles form a single
// bulk wave by default. Create it with NewRecurrencePlot.
type RecurrencePlot struct {
	settings rqa.Settings
	opts     Opts
	order    tiling.Order
	kind     matrixKind
	kernels  []string
}

// Run executes the materialisation and returns the matrix as packed bytes,
// row major, origin top left.
func (p *RecurrencePlot) Run(ctx context.Context) (*rqa.RecurrencePlotResult, error) {
	n := p.settings.NumVectors()
	devices, err := resolveDevices(&p.opts, n, p.kind)
	if err != nil {
		return nil, err
	}
	edge := p.opts.EdgeLength
	if edge == 0 {
		edge = DefaultEdgeLength
	}
	plan, err := tiling.NewPlan(n, edge, p.order)
	if err != nil {
		return nil, err
	}
	log.Debug.Printf("rp: %d vectors, %d tiles in %d waves (edge %d), %d devices, kernels %v",
		n, plan.NumTiles(), len(plan.Waves), plan.EdgeLength, len(devices), p.kernels)

	matrix := make([]byte, n*n)
	for _, wave := range plan.Waves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tiles := wave
		var cursor int64
		err := traverse.Each(len(devices), func(deviceIdx int) error {
			device := devices[deviceIdx]
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= len(tiles) {
					return nil
				}
				device.insertSubMatrix(&p.settings, tiles[i], matrix, n)
			}
		})
		if err != nil {
			return nil, err
		}
	}

	result := &rqa.RecurrencePlotResult{
		Settings: p.settings,
		N:        n,
		Matrix:   matrix,
	}
	for _, device := range devices {
		result.Runtimes = result.Runtimes.Add(device.runtimes)
	}
	return result, nil
}

// insertSubMatrix materialises one tile and copies its cells into the global
// matrix. Tiles write disjoint regions, so no synchronisation is needed.
func (d *Device) insertSubMatrix(s *rqa.Settings, sub tiling.SubMatrix, matrix []byte, n int) {
	start := time.Now()
	d.loadWindows(s, sub)
	d.runtimes.TransferToDevice += time.Since(start)

	start = time.Now()
	d.createMatrix(s, sub)
	d.runtimes.CreateMatrix += time.Since(start)

	start = time.Now()
	for y := 0; y < sub.DimY; y++ {
		row := matrix[(sub.StartY+y)*n+sub.StartX:]
		for x := 0; x < sub.DimX; x++ {
			if d.matrix.get(x, y) {
				row[x] = 1
			}
		}
	}
	d.runtimes.TransferFromDevice += time.Since(start)
}
