package grid

import (
	"errors"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particlelife/particle"
	"github.com/olivierh59500/particlelife/topology"
)

func scatter(seed int64, n int) []particle.Particle {
	r := rand.New(rand.NewSource(seed))
	ps := make([]particle.Particle, n)
	for i := range ps {
		ps[i].Pos = r2.Vec{X: r.Float64()*2 - 1, Y: r.Float64()*2 - 1}
	}
	return ps
}

func TestCellCount_NeverNarrowerThanRadius(t *testing.T) {
	for _, radius := range []float64{0.05, 0.1, 0.15, 0.2, 0.3, 0.5, 0.6, 2.0 / 3.0} {
		n := CellCount(radius)
		if side := topology.Period / float64(n); side < radius {
			t.Errorf("radius %v: side %v narrower than radius", radius, side)
		}
		if n < MinCells {
			t.Errorf("radius %v: expected at least %d cells, got %d", radius, MinCells, n)
		}
	}
}

func TestCellCount_RoundsDown(t *testing.T) {
	cases := []struct {
		radius float64
		want   int
	}{
		{0.15, 13}, {0.2, 10}, {0.5, 4}, {0.8, 2},
	}
	for _, c := range cases {
		if got := CellCount(c.radius); got != c.want {
			t.Errorf("CellCount(%v) = %d, expected %d", c.radius, got, c.want)
		}
	}
}

func TestNew_Degenerate(t *testing.T) {
	for _, radius := range []float64{0.7, 1, 2, 5} {
		_, err := New(radius)
		if !errors.Is(err, ErrDegenerate) {
			t.Errorf("radius %v: expected ErrDegenerate, got %v", radius, err)
		}
	}
	if _, err := New(0); err == nil {
		t.Errorf("Expected error for zero radius")
	}
}

func TestCellOf_Wraps(t *testing.T) {
	g, err := New(0.5)
	if err != nil {
		t.Fatal(err)
	}
	if g.Cells() != 4 {
		t.Fatalf("Expected 4 cells, got %d", g.Cells())
	}
	cases := []struct {
		x    float64
		want int
	}{
		{-1, 0}, {-0.51, 0}, {-0.5, 1}, {0, 2}, {0.99, 3}, {1, 0}, {-1.2, 3},
	}
	for _, c := range cases {
		if got, _ := g.CellOf(c.x, 0); got != c.want {
			t.Errorf("CellOf(%v) = %d, expected %d", c.x, got, c.want)
		}
	}
}

func TestRebuild_EachParticleOnce(t *testing.T) {
	ps := scatter(1, 500)
	g, _ := New(0.15)
	g.Rebuild(ps)
	if g.Len() != len(ps) {
		t.Fatalf("Expected %d filed indices, got %d", len(ps), g.Len())
	}
	seen := make([]int, len(ps))
	for ci := 0; ci < g.Cells(); ci++ {
		for cj := 0; cj < g.Cells(); cj++ {
			for _, idx := range g.Bucket(ci, cj) {
				seen[idx]++
				gi, gj := g.CellOf(ps[idx].Pos.X, ps[idx].Pos.Y)
				if gi != ci || gj != cj {
					t.Errorf("Particle %d filed in (%d,%d), belongs to (%d,%d)", idx, ci, cj, gi, gj)
				}
			}
		}
	}
	for i, c := range seen {
		if c != 1 {
			t.Errorf("Particle %d filed %d times", i, c)
		}
	}

	// a second rebuild must not accumulate
	g.Rebuild(ps)
	if g.Len() != len(ps) {
		t.Errorf("Rebuild accumulated: %d entries", g.Len())
	}
}

func TestNeighbors_NineDistinctCells(t *testing.T) {
	g, _ := New(2.0 / 3.0)
	if g.Cells() != 3 {
		t.Fatalf("Expected 3 cells, got %d", g.Cells())
	}
	ps := scatter(2, 200)
	g.Rebuild(ps)
	got := g.Neighbors(0, 0)
	if len(got) != len(ps) {
		t.Errorf("3x3 block on a 3-cell grid must see every particle once, got %d of %d", len(got), len(ps))
	}
}

// Any pair closer than the radius must appear in each other's 3×3 block.
func TestNeighbors_Completeness(t *testing.T) {
	for _, radius := range []float64{0.07, 0.15, 0.3, 0.45} {
		ps := scatter(int64(radius*1000), 800)
		g, err := New(radius)
		if err != nil {
			t.Fatal(err)
		}
		g.Rebuild(ps)

		for i := range ps {
			ci, cj := g.CellOf(ps[i].Pos.X, ps[i].Pos.Y)
			found := make(map[int]bool)
			for _, j := range g.Neighbors(ci, cj) {
				found[j] = true
			}
			for j := range ps {
				if i == j {
					continue
				}
				if topology.Distance(ps[i].Pos, ps[j].Pos) < radius && !found[j] {
					t.Fatalf("radius %v: particle %d misses neighbour %d", radius, i, j)
				}
			}
		}
	}
}

func TestNeighbors_AcrossSeam(t *testing.T) {
	g, _ := New(0.15)
	ps := []particle.Particle{
		{Pos: r2.Vec{X: 0.99, Y: -0.99}},
		{Pos: r2.Vec{X: -0.99, Y: 0.99}},
	}
	g.Rebuild(ps)
	ci, cj := g.CellOf(ps[0].Pos.X, ps[0].Pos.Y)
	hit := false
	for _, j := range g.Neighbors(ci, cj) {
		if j == 1 {
			hit = true
		}
	}
	if !hit {
		t.Errorf("Expected corner particles to see each other across both seams")
	}
}

func BenchmarkRebuild(b *testing.B) {
	ps := scatter(3, 10000)
	g, _ := New(0.15)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Rebuild(ps)
	}
}
