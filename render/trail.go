package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particlelife/particle"
)

// Trails keeps the last few positions of every particle.
type Trails struct {
	frames [][]r2.Vec // ring buffer of positions
	head   int        // slot of the next push
	n      int        // filled slots
}

// NewTrails keeps up to length positions per particle.
func NewTrails(length int) *Trails {
	return &Trails{frames: make([][]r2.Vec, max(length, 2))}
}

// Reset forgets every stored position.
func (t *Trails) Reset() {
	t.head, t.n = 0, 0
}

// Len returns the number of stored frames.
func (t *Trails) Len() int {
	return t.n
}

// Push records the current positions. A change in particle count restarts
// the trails.
func (t *Trails) Push(snaps []particle.Snapshot) {
	if t.n > 0 && len(t.frame(t.n-1)) != len(snaps) {
		t.Reset()
	}
	slot := t.frames[t.head][:0]
	for _, s := range snaps {
		slot = append(slot, s.Pos)
	}
	t.frames[t.head] = slot
	t.head = (t.head + 1) % len(t.frames)
	t.n = min(t.n+1, len(t.frames))
}

// frame returns the k-th stored frame, oldest first.
func (t *Trails) frame(k int) []r2.Vec {
	start := (t.head - t.n + len(t.frames)) % len(t.frames)
	return t.frames[(start+k)%len(t.frames)]
}

// Segments calls fn for every consecutive pair of positions, oldest first.
// age runs from 0 for the oldest segment to 1 for the newest. Segments that
// jump across a seam of the torus are skipped.
func (t *Trails) Segments(fn func(i int, a, b r2.Vec, age float64)) {
	for k := 1; k < t.n; k++ {
		prev, cur := t.frame(k-1), t.frame(k)
		age := float64(k-1) / float64(max(t.n-2, 1))
		for i := range cur {
			a, b := prev[i], cur[i]
			if math.Abs(b.X-a.X) > 1 || math.Abs(b.Y-a.Y) > 1 {
				continue
			}
			fn(i, a, b, age)
		}
	}
}
