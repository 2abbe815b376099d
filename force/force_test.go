package force

import (
	"math"
	"testing"
)

var law = Law{Critical: 0.3, Scale: 10}

func TestMagnitude_ZeroAtCritical(t *testing.T) {
	for _, m := range []float64{-1, -0.45, 0, 0.2, 1} {
		if got := law.Magnitude(law.Critical, m); got != 0 {
			t.Errorf("Magnitude(c, %v) = %v, expected 0", m, got)
		}
	}
}

func TestMagnitude_ZeroAtRadius(t *testing.T) {
	for _, m := range []float64{-1, 0.5, 1} {
		if got := law.Magnitude(1, m); got != 0 {
			t.Errorf("Magnitude(1, %v) = %v, expected 0", m, got)
		}
		if got := law.Magnitude(1.7, m); got != 0 {
			t.Errorf("Magnitude(1.7, %v) = %v, expected 0", m, got)
		}
	}
}

func TestMagnitude_FullRepulsionAtContact(t *testing.T) {
	for _, m := range []float64{-1, 0, 1} {
		if got := law.Magnitude(0, m); got != -law.Scale {
			t.Errorf("Magnitude(0, %v) = %v, expected %v", m, got, -law.Scale)
		}
	}
}

func TestMagnitude_RepulsionIgnoresClass(t *testing.T) {
	for _, r := range []float64{0.05, 0.1, 0.2, 0.29} {
		a, b := law.Magnitude(r, -1), law.Magnitude(r, 1)
		if a != b {
			t.Errorf("Repulsion at r=%v depends on m: %v vs %v", r, a, b)
		}
		if a >= 0 {
			t.Errorf("Expected repulsion at r=%v, got %v", r, a)
		}
	}
}

func TestMagnitude_PeakInBand(t *testing.T) {
	const m = 0.4
	peak := law.Magnitude(law.Peak(), m)
	if math.Abs(peak-m*law.Scale) > 1e-12 {
		t.Errorf("Peak magnitude %v, expected %v", peak, m*law.Scale)
	}
	for _, r := range []float64{0.35, 0.5, 0.6, 0.7, 0.9, 0.99} {
		if v := law.Magnitude(r, m); v > peak+1e-12 || v < 0 {
			t.Errorf("Magnitude(%v) = %v outside [0, peak]", r, v)
		}
	}
}

func TestMagnitude_ContinuousAtCritical(t *testing.T) {
	const h = 1e-9
	below := law.Magnitude(law.Critical-h, 0.8)
	above := law.Magnitude(law.Critical+h, 0.8)
	if math.Abs(below) > 1e-6 || math.Abs(above) > 1e-6 {
		t.Errorf("Discontinuity at c: %v / %v", below, above)
	}
}
