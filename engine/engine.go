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

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/rqa/kernel"
	"github.com/grailbio/rqa/rqa"
	"github.com/grailbio/rqa/tiling"
)

// DefaultEdgeLength is the sub matrix edge length used when Opts leaves it
// zero. The planner clamps it to tiling.MaxEdgeLength.
const DefaultEdgeLength = 10240

// Opts configure the tiled engine.
type Opts struct {
	// EdgeLength of the sub matrices. 0 selects DefaultEdgeLength.
	EdgeLength int
	// Order of tile processing. tiling.Default selects diagonal order for
	// RQA and bulk order for recurrence plots.
	Order tiling.Order
	// Devices lists explicit device indices. Empty means Parallelism
	// devices.
	Devices []int
	// Parallelism is the number of devices when Devices is empty; 0 selects
	// one device per CPU.
	Parallelism int
	// OptimisationsEnabled selects the bit packed tile representation.
	OptimisationsEnabled bool
	// Registry overrides the compiled-in kernel registry.
	Registry *kernel.Registry

	// forceAsymmetric drives the engine down the asymmetric code path (2N-1
	// diagonal carryover slots, no mirroring) regardless of the settings.
	// Test hook.
	forceAsymmetric bool
}

// DefaultOpts match the command line defaults.
var DefaultOpts = Opts{
	EdgeLength:           DefaultEdgeLength,
	OptimisationsEnabled: true,
}

// RQA is the tiled recurrence quantification computation. Create it with
// NewRQA.
type RQA struct {
	settings rqa.Settings
	opts     Opts
	order    tiling.Order
	kind     matrixKind
	kernels  []string
}

// Run executes the analysis: it schedules the tile waves across the devices,
// post-processes the carryovers, and finalises the result. Run may be called
// repeatedly; runs are independent.
func (q *RQA) Run(ctx context.Context) (*rqa.RQAResult, error) {
	n := q.settings.NumVectors()
	devices, err := resolveDevices(&q.opts, n, q.kind)
	if err != nil {
		return nil, err
	}
	if q.order == tiling.Vertical && len(devices) > 1 {
		// Within a vertical wave, horizontally adjacent tiles overlap in
		// anti diagonal footprint.
		return nil, errors.E("engine: vertical processing order requires a single device")
	}
	edge := q.opts.EdgeLength
	if edge == 0 {
		edge = DefaultEdgeLength
	}
	plan, err := tiling.NewPlan(n, edge, q.order)
	if err != nil {
		return nil, err
	}
	symmetric := q.settings.Symmetric() && !q.opts.forceAsymmetric
	log.Debug.Printf("rqa: %d vectors, %d tiles in %d waves (edge %d), %d devices, symmetric=%v, kernels %v",
		n, plan.NumTiles(), len(plan.Waves), plan.EdgeLength, len(devices), symmetric, q.kernels)

	a := newAnalysis(&q.settings, symmetric)
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
				device.processSubMatrix(a, tiles[i])
			}
		})
		if err != nil {
			return nil, err
		}
	}

	result := &rqa.RQAResult{
		Settings:                           q.settings,
		RecurrencePoints:                   a.recurrencePoints,
		DiagonalFrequencyDistribution:      rqa.NewFreqDistribution(n),
		VerticalFrequencyDistribution:      rqa.NewFreqDistribution(n),
		WhiteVerticalFrequencyDistribution: rqa.NewFreqDistribution(n),
	}
	for _, device := range devices {
		result.DiagonalFrequencyDistribution.Merge(device.diagonalAcc)
		result.VerticalFrequencyDistribution.Merge(device.verticalAcc)
		result.WhiteVerticalFrequencyDistribution.Merge(device.whiteVerticalAcc)
		result.Runtimes = result.Runtimes.Add(device.runtimes)
	}
	a.closeCarryovers(
		result.DiagonalFrequencyDistribution,
		result.VerticalFrequencyDistribution,
		result.WhiteVerticalFrequencyDistribution)
	a.extendDiagonal(result.DiagonalFrequencyDistribution)
	return result, nil
}
