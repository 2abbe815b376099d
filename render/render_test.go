package render

import (
	"image"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particlelife/particle"
)

func TestPalette_FixedColours(t *testing.T) {
	p := NewPalette(6)
	if c := p.Color(1); c.R != 51 || c.G != 153 || c.B != 255 {
		t.Errorf("Unexpected colour for class 1: %v", c)
	}
	if c := p.Color(42); c.R != 230 {
		t.Errorf("Expected grey for unknown class, got %v", c)
	}
}

func TestPalette_ExtraClassesDistinct(t *testing.T) {
	p := NewPalette(12)
	seen := make(map[[3]uint8]bool)
	for i := 0; i < p.Len(); i++ {
		c := p.Color(i)
		key := [3]uint8{c.R, c.G, c.B}
		if seen[key] {
			t.Errorf("Class %d repeats colour %v", i, c)
		}
		seen[key] = true
	}
}

func TestToScreen_Corners(t *testing.T) {
	x, y := ToScreen(r2.Vec{X: -1, Y: 1}, 600, 400)
	if x != 0 || y != 0 {
		t.Errorf("Expected top-left (0,0), got (%v,%v)", x, y)
	}
	x, y = ToScreen(r2.Vec{}, 600, 400)
	if x != 300 || y != 200 {
		t.Errorf("Expected centre (300,200), got (%v,%v)", x, y)
	}
}

func TestRasterize_DrawsParticle(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	pal := NewPalette(6)
	Rasterize(img, []particle.Snapshot{{Pos: r2.Vec{}, Class: 0}}, pal)

	centre := img.RGBAAt(100, 100)
	if centre == Background {
		t.Errorf("Expected particle pixel at centre")
	}
	if corner := img.RGBAAt(0, 0); corner != Background {
		t.Errorf("Expected background at corner, got %v", corner)
	}
}
