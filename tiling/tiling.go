// Package tiling partitions the logical N×N recurrence matrix into sub
// matrices and schedules them in waves; waves run strictly in order. Tiles
// within one diagonal wave have disjoint carryover footprints and may run
// concurrently. Horizontally adjacent tiles of a vertical wave share anti
// diagonals, and the single bulk wave holds every tile.
package tiling

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// MaxEdgeLength caps tile dimensions. Requested edge lengths are clamped.
const MaxEdgeLength = 1<<16 - 1

// Order selects how tiles are grouped into waves.
type Order int

const (
	// Default stands for the computation's preferred order (diagonal for
	// RQA, bulk for recurrence plots). The planner itself rejects it.
	Default Order = iota
	// Diagonal groups tiles by PartitionX+PartitionY. When a tile runs, the
	// tiles above and to the upper left, whose carryovers it extends, are
	// complete.
	Diagonal
	// Vertical groups tiles by PartitionY, serialising each tile row so that
	// vertical carryovers flow in strict column-scan order.
	Vertical
	// Bulk puts every tile in a single wave. Only valid when no carryover
	// dependency exists.
	Bulk
)

func (o Order) String() string {
	switch o {
	case Default:
		return "default"
	case Diagonal:
		return "diagonal"
	case Vertical:
		return "vertical"
	case Bulk:
		return "bulk"
	}
	return fmt.Sprintf("order(%d)", int(o))
}

// SubMatrix is one rectangular region of the recurrence matrix.
// [StartX, StartX+DimX) spans columns, [StartY, StartY+DimY) spans rows.
type SubMatrix struct {
	PartitionX int
	PartitionY int
	StartX     int
	StartY     int
	DimX       int
	DimY       int
}

func (s SubMatrix) String() string {
	return fmt.Sprintf("tile(%d,%d) x[%d,%d) y[%d,%d)",
		s.PartitionX, s.PartitionY, s.StartX, s.StartX+s.DimX, s.StartY, s.StartY+s.DimY)
}

// Plan is the wave schedule of all tiles of one analysis.
type Plan struct {
	N          int
	EdgeLength int
	Partitions int
	Order      Order
	Waves      [][]SubMatrix
}

// NewPlan partitions an n×n matrix into a Partitions×Partitions grid of
// tiles with the given edge length (clamped to MaxEdgeLength; the last row
// and column of tiles may be smaller) and groups them into waves.
func NewPlan(n, edgeLength int, order Order) (*Plan, error) {
	if n < 1 {
		return nil, errors.E(fmt.Sprintf("tiling: matrix dimension %d < 1", n))
	}
	if edgeLength < 1 {
		return nil, errors.E(fmt.Sprintf("tiling: edge length %d < 1", edgeLength))
	}
	if edgeLength > MaxEdgeLength {
		edgeLength = MaxEdgeLength
	}
	partitions := (n + edgeLength - 1) / edgeLength

	var numWaves int
	switch order {
	case Diagonal:
		numWaves = 2*partitions - 1
	case Vertical:
		numWaves = partitions
	case Bulk:
		numWaves = 1
	default:
		return nil, errors.E(fmt.Sprintf("tiling: unknown processing order %v", order))
	}

	plan := &Plan{
		N:          n,
		EdgeLength: edgeLength,
		Partitions: partitions,
		Order:      order,
		Waves:      make([][]SubMatrix, numWaves),
	}
	for px := 0; px < partitions; px++ {
		for py := 0; py < partitions; py++ {
			sub := SubMatrix{
				PartitionX: px,
				PartitionY: py,
				StartX:     px * edgeLength,
				StartY:     py * edgeLength,
				DimX:       edgeLength,
				DimY:       edgeLength,
			}
			if px == partitions-1 {
				sub.DimX = n - sub.StartX
			}
			if py == partitions-1 {
				sub.DimY = n - sub.StartY
			}
			var wave int
			switch order {
			case Diagonal:
				wave = px + py
			case Vertical:
				wave = py
			case Bulk:
				wave = 0
			}
			plan.Waves[wave] = append(plan.Waves[wave], sub)
		}
	}
	return plan, nil
}

// NumTiles is the total number of tiles across all waves.
func (p *Plan) NumTiles() int {
	n := 0
	for _, wave := range p.Waves {
		n += len(wave)
	}
	return n
}
