// Package grid implements the uniform cell list used to find interaction
// candidates on the wrapped plane.
package grid

import (
	"math"

	"github.com/pkg/errors"

	"github.com/olivierh59500/particlelife/particle"
	"github.com/olivierh59500/particlelife/topology"
)

// MinCells is the smallest per-axis cell count for which the wrapped 3×3
// block visits nine distinct cells.
const MinCells = 3

// ErrDegenerate is returned when the radius is too large for a 3×3 search.
var ErrDegenerate = errors.New("grid: fewer than 3 cells per axis")

// Grid buckets particle indices by cell. Buckets are rebuilt from scratch
// every step and never own particle state.
type Grid struct {
	radius float64
	side   float64 // actual cell side, >= radius
	n      int
	cells  [][]int // flat n*n, index = ci*n + cj
}

// CellCount returns the per-axis cell count for an interaction radius. Cells
// are never narrower than the radius, so any pair closer than the radius sits
// in the same or an adjacent cell.
//
// This rounds 2/radius down, not up. Rounding up would give radius 0.15
// fourteen cells of 0.143, narrow enough for the 3×3 block to miss pairs.
// Both agree whenever 2/radius is whole.
func CellCount(radius float64) int {
	n := int(math.Floor(topology.Period / radius))
	for n > 1 && topology.Period/float64(n) < radius {
		n--
	}
	return n
}

// New builds an empty grid for the given interaction radius.
func New(radius float64) (*Grid, error) {
	if !(radius > 0) {
		return nil, errors.Errorf("grid: radius must be positive, got %v", radius)
	}
	n := CellCount(radius)
	if n < MinCells {
		return nil, errors.Wrapf(ErrDegenerate, "radius %v gives %d", radius, n)
	}

	cells := make([][]int, n*n)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}
	return &Grid{
		radius: radius,
		side:   topology.Period / float64(n),
		n:      n,
		cells:  cells,
	}, nil
}

// Cells returns the per-axis cell count.
func (g *Grid) Cells() int {
	return g.n
}

// Side returns the cell side length.
func (g *Grid) Side() float64 {
	return g.side
}

// Clear empties every bucket, keeping capacity.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Rebuild clears the grid and files every particle index under its cell.
func (g *Grid) Rebuild(ps []particle.Particle) {
	g.Clear()
	for i := range ps {
		ci, cj := g.CellOf(ps[i].Pos.X, ps[i].Pos.Y)
		g.cells[ci*g.n+cj] = append(g.cells[ci*g.n+cj], i)
	}
}

// CellOf maps a position to its cell coordinates, wrapping out-of-range
// indices back onto the torus.
func (g *Grid) CellOf(x, y float64) (int, int) {
	return g.axis(x), g.axis(y)
}

func (g *Grid) axis(v float64) int {
	i := int(math.Floor((v + topology.HalfExtent) / topology.Period * float64(g.n)))
	return g.wrap(i)
}

func (g *Grid) wrap(i int) int {
	i %= g.n
	if i < 0 {
		i += g.n
	}
	return i
}

// Bucket returns the indices filed under one cell. The slice is owned by the
// grid and valid until the next Rebuild.
func (g *Grid) Bucket(ci, cj int) []int {
	return g.cells[g.wrap(ci)*g.n+g.wrap(cj)]
}

// AppendNeighbors appends the contents of the wrapped 3×3 block centred on
// (ci, cj) to dst and returns it. The centre cell's own particles are
// included; callers skip self.
func (g *Grid) AppendNeighbors(dst []int, ci, cj int) []int {
	for di := -1; di <= 1; di++ {
		row := g.wrap(ci+di) * g.n
		for dj := -1; dj <= 1; dj++ {
			dst = append(dst, g.cells[row+g.wrap(cj+dj)]...)
		}
	}
	return dst
}

// Neighbors returns the candidates around (ci, cj) in a fresh slice.
func (g *Grid) Neighbors(ci, cj int) []int {
	return g.AppendNeighbors(nil, ci, cj)
}

// Len returns the number of filed indices.
func (g *Grid) Len() int {
	total := 0
	for _, c := range g.cells {
		total += len(c)
	}
	return total
}
