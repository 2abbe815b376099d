package world

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particlelife/topology"
)

// accumulate recomputes every particle's acceleration from the current grid.
// Each particle's contributions are summed in the same order whatever the
// worker count, so sequential and parallel runs match bit for bit.
func (w *World) accumulate() {
	for i := range w.particles {
		w.particles[i].Acc = r2.Vec{}
	}

	rows := w.grid.Cells()
	workers := min(w.cfg.Workers, rows)
	if workers <= 1 {
		w.accumulateRows(0, rows, 0)
		return
	}

	// workers own disjoint bands of grid rows, so every particle is written
	// by exactly one goroutine while all positions are only read
	var g errgroup.Group
	band := (rows + workers - 1) / workers
	for k := 0; k < workers; k++ {
		lo, hi := k*band, min((k+1)*band, rows)
		if lo >= hi {
			break
		}
		g.Go(func() error {
			w.accumulateRows(lo, hi, k)
			return nil
		})
	}
	g.Wait()
}

// accumulateRows handles every particle filed in grid rows [lo, hi).
func (w *World) accumulateRows(lo, hi, worker int) {
	n := w.grid.Cells()
	for ci := lo; ci < hi; ci++ {
		for cj := 0; cj < n; cj++ {
			bucket := w.grid.Bucket(ci, cj)
			if len(bucket) == 0 {
				continue
			}
			candidates := w.grid.AppendNeighbors(w.scratch[worker][:0], ci, cj)
			w.scratch[worker] = candidates
			for _, i := range bucket {
				w.accumulateOne(i, candidates)
			}
		}
	}
}

// accumulateOne sums the pull of every candidate within the interaction
// radius on particle i.
func (w *World) accumulateOne(i int, candidates []int) {
	radius := w.cfg.InteractionRadius
	p := &w.particles[i]
	row := w.matrix.Row(p.Class)

	acc := r2.Vec{}
	for _, j := range candidates {
		if j == i {
			continue
		}
		q := &w.particles[j]
		diff := topology.Delta(p.Pos, q.Pos)
		dist := r2.Norm(diff)
		if dist <= 0 || dist >= radius {
			continue
		}
		dir := r2.Scale(1/dist, diff)
		f := w.law.Magnitude(dist/radius, row[q.Class])
		acc = r2.Add(acc, r2.Scale(f*radius/p.Mass, dir))
	}
	p.Acc = acc
}
