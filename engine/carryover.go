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

// carryover persists the open (still growing) runs at tile boundaries so the
// next tile in scan order can extend or close them. For vertical and white
// vertical lines it tracks, per matrix column, the open run length and the
// global row where the run began. For diagonal lines it tracks the open
// length per anti diagonal: N slots indexed by y-x in the symmetric case,
// 2N-1 slots indexed by (N-1)+(y-x) otherwise.
type carryover struct {
	n         int
	symmetric bool

	diagonalLength []uint32

	verticalLength []uint32
	verticalStart  []uint32

	whiteLength []uint32
	whiteStart  []uint32
}

func newCarryover(n int, symmetric bool) *carryover {
	diagonals := n
	if !symmetric {
		diagonals = 2*n - 1
	}
	return &carryover{
		n:              n,
		symmetric:      symmetric,
		diagonalLength: make([]uint32, diagonals),
		verticalLength: make([]uint32, n),
		verticalStart:  make([]uint32, n),
		whiteLength:    make([]uint32, n),
		whiteStart:     make([]uint32, n),
	}
}
