package rng

import (
	"math"
	"testing"
)

func TestLCG_FirstValues(t *testing.T) {
	g := New(2)

	// (1103515245*2 + 12345) mod 2^31 = 59559187
	want := 59559187.0
	g.Next()
	if g.State() != want {
		t.Fatalf("Expected state %v, got %v", want, g.State())
	}
}

func TestLCG_Range(t *testing.T) {
	g := New(12345)
	for i := 0; i < 100000; i++ {
		v := g.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("Value %d out of [0,1): %v", i, v)
		}
	}
}

func TestLCG_Deterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 1000; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("Streams diverged at %d: %v != %v", i, x, y)
		}
	}
}

func TestLCG_SeedsDiffer(t *testing.T) {
	a, b := New(1), New(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			same = false
		}
	}
	if same {
		t.Errorf("Expected different seeds to give different streams")
	}
}

func TestLCG_StateStaysIntegral(t *testing.T) {
	g := New(99)
	for i := 0; i < 1000; i++ {
		g.Next()
		s := g.State()
		if s != math.Trunc(s) || s < 0 || s >= lcgM {
			t.Fatalf("Unexpected state %v at %d", s, i)
		}
	}
}
