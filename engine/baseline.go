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
	"github.com/grailbio/rqa/rqa"
)

// BaselineRQA is the scalar oracle: one direct column-by-column scan of the
// full recurrence matrix without tiling, devices, or symmetry shortcuts. Its
// diagonal buffer spans all 2N-1 anti diagonals regardless of metric
// symmetry. The engine tests compare against it counter by counter.
func BaselineRQA(settings rqa.Settings) (*rqa.RQAResult, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	var (
		n             = settings.NumVectors()
		series        = settings.Series
		metric        = settings.Metric
		neighbourhood = settings.Neighbourhood
		dim           = settings.EmbeddingDimension
		delay         = settings.TimeDelay
		theiler       = settings.TheilerCorrector
	)
	result := &rqa.RQAResult{
		Settings:                           settings,
		RecurrencePoints:                   make([]uint64, n),
		DiagonalFrequencyDistribution:      rqa.NewFreqDistribution(n),
		VerticalFrequencyDistribution:      rqa.NewFreqDistribution(n),
		WhiteVerticalFrequencyDistribution: rqa.NewFreqDistribution(n),
	}
	var (
		diagonalOpen = make([]uint32, 2*n-1)
		verticalOpen = make([]uint32, n)
		whiteOpen    = make([]uint32, n)
	)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			slot := n - 1 + (y - x)
			if neighbourhood.Contains(metric.Distance(series, series, dim, delay, x, y)) {
				result.RecurrencePoints[x]++
				if y-x >= theiler || x-y >= theiler {
					diagonalOpen[slot]++
				}
				if whiteOpen[x] > 0 {
					result.WhiteVerticalFrequencyDistribution.Record(int(whiteOpen[x]))
					whiteOpen[x] = 0
				}
				verticalOpen[x]++
			} else {
				if diagonalOpen[slot] > 0 {
					result.DiagonalFrequencyDistribution.Record(int(diagonalOpen[slot]))
					diagonalOpen[slot] = 0
				}
				if verticalOpen[x] > 0 {
					result.VerticalFrequencyDistribution.Record(int(verticalOpen[x]))
					verticalOpen[x] = 0
				}
				whiteOpen[x]++
			}
		}
	}
	for _, open := range diagonalOpen {
		if open > 0 {
			result.DiagonalFrequencyDistribution.Record(int(open))
		}
	}
	for _, open := range verticalOpen {
		if open > 0 {
			result.VerticalFrequencyDistribution.Record(int(open))
		}
	}
	for _, open := range whiteOpen {
		if open > 0 {
			result.WhiteVerticalFrequencyDistribution.Record(int(open))
		}
	}
	return result, nil
}

// BaselineRecurrenceMatrix materialises the full matrix in one pass, byte
// per cell, row major.
func BaselineRecurrenceMatrix(settings rqa.Settings) (*rqa.RecurrencePlotResult, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	var (
		n             = settings.NumVectors()
		series        = settings.Series
		metric        = settings.Metric
		neighbourhood = settings.Neighbourhood
		dim           = settings.EmbeddingDimension
		delay         = settings.TimeDelay
	)
	matrix := make([]byte, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if neighbourhood.Contains(metric.Distance(series, series, dim, delay, x, y)) {
				matrix[y*n+x] = 1
			}
		}
	}
	return &rqa.RecurrencePlotResult{Settings: settings, N: n, Matrix: matrix}, nil
}
