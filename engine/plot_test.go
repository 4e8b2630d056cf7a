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
	"testing"

	"github.com/grailbio/rqa/rqa"
	"github.com/grailbio/rqa/tiling"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func runPlot(t *testing.T, settings rqa.Settings, opts Opts) *rqa.RecurrencePlotResult {
	computation, err := NewRecurrencePlot(settings, opts)
	require.NoError(t, err)
	result, err := computation.Run(context.Background())
	require.NoError(t, err)
	return result
}

func TestPlotMatchesBaseline(t *testing.T) {
	series := randomSeries(200, 21)
	settings := rqa.NewSettings(series)
	settings.EmbeddingDimension = 2
	settings.TimeDelay = 1
	settings.Neighbourhood = rqa.FixedRadius{Radius: 0.3}

	oracle, err := BaselineRecurrenceMatrix(settings)
	require.NoError(t, err)
	for _, opts := range []Opts{
		{EdgeLength: 60, Parallelism: 4},
		{EdgeLength: 60, Parallelism: 1, OptimisationsEnabled: true},
		{EdgeLength: 1 << 20, Parallelism: 2},
		{EdgeLength: 60, Parallelism: 2, Order: tiling.Diagonal},
	} {
		result := runPlot(t, settings, opts)
		expect.EQ(t, result.Matrix, oracle.Matrix)
	}
}

func TestPlotSymmetryAndDiagonal(t *testing.T) {
	series := randomSeries(120, 22)
	settings := rqa.NewSettings(series)
	settings.Neighbourhood = rqa.FixedRadius{Radius: 0.4}

	result := runPlot(t, settings, Opts{EdgeLength: 50, Parallelism: 2})
	n := result.N
	for y := 0; y < n; y++ {
		require.True(t, result.At(y, y), "main diagonal cell %d", y)
		for x := 0; x < y; x++ {
			require.Equal(t, result.At(x, y), result.At(y, x), "cell (%d,%d)", x, y)
		}
	}
}

func TestPlotIdentity(t *testing.T) {
	settings := rqa.NewSettings([]float32{0, 1, 2, 3, 4})
	settings.EmbeddingDimension = 1
	settings.TimeDelay = 1
	settings.Neighbourhood = rqa.FixedRadius{Radius: 0.5}

	result := runPlot(t, settings, Opts{Parallelism: 1})
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			expect.EQ(t, result.At(x, y), x == y)
		}
	}
}
