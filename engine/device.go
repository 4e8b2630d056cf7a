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
	"fmt"
	"runtime"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/rqa/rqa"
)

// Device is one logical compute slot: a worker with private scratch for the
// series windows and the tile matrix, per tile local distributions, and per
// device accumulators that are merged once after the last wave. Scratch is
// recycled between tiles.
type Device struct {
	index int

	seriesX []float32
	seriesY []float32
	matrix  tileMatrix

	// Per tile local distributions, flushed into the accumulators after
	// each tile.
	diagonal      rqa.FreqDistribution
	vertical      rqa.FreqDistribution
	whiteVertical rqa.FreqDistribution

	diagonalAcc      rqa.FreqDistribution
	verticalAcc      rqa.FreqDistribution
	whiteVerticalAcc rqa.FreqDistribution

	runtimes rqa.Runtimes
}

type matrixKind int

const (
	byteKind matrixKind = iota
	bitKind
)

func newDevice(index, n int, kind matrixKind) *Device {
	d := &Device{
		index:            index,
		diagonal:         rqa.NewFreqDistribution(n),
		vertical:         rqa.NewFreqDistribution(n),
		whiteVertical:    rqa.NewFreqDistribution(n),
		diagonalAcc:      rqa.NewFreqDistribution(n),
		verticalAcc:      rqa.NewFreqDistribution(n),
		whiteVerticalAcc: rqa.NewFreqDistribution(n),
	}
	if kind == bitKind {
		d.matrix = &bitMatrix{}
	} else {
		d.matrix = &byteMatrix{}
	}
	return d
}

// resolveDevices builds the device set for one run. Explicit device indices
// must name existing compute slots; otherwise Parallelism devices are
// created, defaulting to one per CPU.
func resolveDevices(opts *Opts, n int, kind matrixKind) ([]*Device, error) {
	if len(opts.Devices) > 0 {
		limit := runtime.NumCPU()
		seen := make(map[int]bool)
		devices := make([]*Device, 0, len(opts.Devices))
		for _, idx := range opts.Devices {
			if idx < 0 || idx >= limit {
				return nil, errors.E(fmt.Sprintf("engine: device index %d out of range [0,%d)", idx, limit))
			}
			if seen[idx] {
				return nil, errors.E(fmt.Sprintf("engine: duplicate device index %d", idx))
			}
			seen[idx] = true
			devices = append(devices, newDevice(idx, n, kind))
		}
		return devices, nil
	}
	p := opts.Parallelism
	if p < 0 {
		return nil, errors.E(fmt.Sprintf("engine: parallelism %d < 0", p))
	}
	if p == 0 {
		p = runtime.NumCPU()
	}
	devices := make([]*Device, p)
	for i := range devices {
		devices[i] = newDevice(i, n, kind)
	}
	return devices, nil
}
