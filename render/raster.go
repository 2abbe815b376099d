package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particlelife/particle"
)

// DisplayRadius is the drawn particle radius in domain units.
const DisplayRadius = 0.007

// Background is the frame clear colour.
var Background = color.RGBA{12, 12, 14, 255}

// ToScreen maps a domain position to pixel coordinates with y pointing up.
func ToScreen(pos r2.Vec, width, height float64) (float64, float64) {
	return (pos.X*0.5 + 0.5) * width, (1 - (pos.Y*0.5 + 0.5)) * height
}

// PixelRadius returns the particle radius in pixels for a canvas size.
func PixelRadius(width, height float64) float64 {
	return DisplayRadius * math.Min(width, height) * 0.5
}

// Rasterize draws snapshots onto img as filled discs.
func Rasterize(img *image.RGBA, snaps []particle.Snapshot, pal *Palette) {
	b := img.Bounds()
	draw.Draw(img, b, &image.Uniform{C: Background}, image.Point{}, draw.Src)

	w, h := float64(b.Dx()), float64(b.Dy())
	radius := math.Max(PixelRadius(w, h), 1)
	r2sq := radius * radius
	span := int(math.Ceil(radius))

	for _, s := range snaps {
		cx, cy := ToScreen(s.Pos, w, h)
		fill := pal.Fill(s.Class)
		x0, y0 := int(cx), int(cy)
		for dy := -span; dy <= span; dy++ {
			for dx := -span; dx <= span; dx++ {
				px, py := x0+dx, y0+dy
				fx, fy := float64(px)+0.5-cx, float64(py)+0.5-cy
				if fx*fx+fy*fy > r2sq {
					continue
				}
				pt := image.Point{X: b.Min.X + px, Y: b.Min.Y + py}
				if !pt.In(b) {
					continue
				}
				blend(img, pt, fill)
			}
		}
	}
}

// blend composites a premultiplied colour over the pixel.
func blend(img *image.RGBA, pt image.Point, c color.RGBA) {
	i := img.PixOffset(pt.X, pt.Y)
	inv := uint16(255 - c.A)
	pix := img.Pix[i : i+4 : i+4]
	pix[0] = c.R + uint8(uint16(pix[0])*inv/255)
	pix[1] = c.G + uint8(uint16(pix[1])*inv/255)
	pix[2] = c.B + uint8(uint16(pix[2])*inv/255)
	pix[3] = 255
}
