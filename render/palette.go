// Package render holds the pieces shared by every front end: the class
// palette, the world-to-screen mapping and a small software rasterizer.
package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ParticleAlpha is the fill opacity of a particle.
const ParticleAlpha = 200

// fixed colours of the first six classes
var baseColors = []color.RGBA{
	{255, 130, 51, 255},
	{51, 153, 255, 255},
	{204, 25, 77, 255},
	{51, 204, 77, 255},
	{153, 77, 204, 255},
	{255, 255, 51, 255},
}

// Palette maps class ids to colours.
type Palette struct {
	colors []color.RGBA
}

// NewPalette builds colours for classes. The first six are fixed, the rest
// are spread around the hue circle.
func NewPalette(classes int) *Palette {
	p := &Palette{colors: make([]color.RGBA, classes)}
	for i := range p.colors {
		if i < len(baseColors) {
			p.colors[i] = baseColors[i]
			continue
		}
		hue := float64(i-len(baseColors)) / float64(classes-len(baseColors)) * 360
		r, g, b := colorful.Hsv(hue+15, 0.75, 0.95).RGB255()
		p.colors[i] = color.RGBA{r, g, b, 255}
	}
	return p
}

// Color returns the opaque colour of a class. Unknown classes are light grey.
func (p *Palette) Color(class int) color.RGBA {
	if class < 0 || class >= len(p.colors) {
		return color.RGBA{230, 230, 230, 255}
	}
	return p.colors[class]
}

// Fill returns the translucent fill colour of a class, premultiplied.
func (p *Palette) Fill(class int) color.RGBA {
	c := p.Color(class)
	scale := func(v uint8) uint8 { return uint8(uint16(v) * ParticleAlpha / 255) }
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), ParticleAlpha}
}

// Len returns the number of classes covered.
func (p *Palette) Len() int {
	return len(p.colors)
}
