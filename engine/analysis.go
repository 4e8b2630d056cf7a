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

// analysis is the shared mutable state of one engine run: the carryover
// buffers and the recurrence-point counts. Both are partitioned by tile
// coordinates so that tiles of one wave never write the same elements.
type analysis struct {
	settings  *rqa.Settings
	n         int
	symmetric bool
	theiler   int

	carry            *carryover
	recurrencePoints []uint64
}

func newAnalysis(settings *rqa.Settings, symmetric bool) *analysis {
	n := settings.NumVectors()
	return &analysis{
		settings:         settings,
		n:                n,
		symmetric:        symmetric,
		theiler:          settings.TheilerCorrector,
		carry:            newCarryover(n, symmetric),
		recurrencePoints: make([]uint64, n),
	}
}

// closeCarryovers folds every still open run into the distributions: the
// matrix is finite, so a run that is open after the last wave is a complete
// line. White vertical runs close with their distance to the bottom edge,
// N minus the row where the run began; with no recurrence in a column at all
// that distance is the full column height N.
func (a *analysis) closeCarryovers(diagonal, vertical, white rqa.FreqDistribution) {
	for _, open := range a.carry.diagonalLength {
		if open > 0 {
			diagonal.Record(int(open))
		}
	}
	for _, open := range a.carry.verticalLength {
		if open > 0 {
			vertical.Record(int(open))
		}
	}
	for col, open := range a.carry.whiteLength {
		if open > 0 {
			white.Record(a.n - int(a.carry.whiteStart[col]))
		}
	}
}

// extendDiagonal mirrors the diagonal distribution of a symmetric matrix:
// every line off the main diagonal has a twin in the skipped half. With a
// zero Theiler corrector the main diagonal itself was counted once and must
// not be doubled.
func (a *analysis) extendDiagonal(diagonal rqa.FreqDistribution) {
	if !a.symmetric {
		return
	}
	for i := range diagonal {
		diagonal[i] *= 2
	}
	if a.theiler == 0 {
		diagonal[a.n-1]--
	}
}
