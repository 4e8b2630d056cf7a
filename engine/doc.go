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

// Package engine runs recurrence analyses over a tiled decomposition of the
// logical N×N recurrence matrix. Tiles are materialised in parallel on a set
// of compute devices while line-length statistics are threaded across tile
// boundaries through carryover buffers, so the full matrix is never resident
// for RQA.
//
// Problem:
// Counting diagonal, vertical, and white vertical lines requires scanning
// maximal runs of (non-)recurrence points, and a run does not respect tile
// boundaries. The engine therefore partitions the matrix into a P×P grid of
// sub matrices and schedules them in waves such that, when a tile runs, every
// tile an open run could have entered from is already finished. Within a
// diagonal wave (PartitionX+PartitionY constant), no two tiles touch the same
// matrix column or the same anti diagonal, so the shared carryover buffers,
// the recurrence-point counts, and the per-wave work need no locks; the wave
// barrier provides the only synchronisation.
//
// A device is a logical compute slot: one worker goroutine owning recycled
// scratch for the series windows and the tile matrix, plus private
// accumulators that are merged once after the last wave.
package engine
