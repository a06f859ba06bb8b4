// Package render provides the particle sprite and the surfaces particles are
// drawn on.
package render

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// NewSprite renders a size x size radial gradient: c at full opacity in the
// centre, fading linearly to transparent at the rim of the inscribed disc.
func NewSprite(size int, c colorful.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r, g, b := c.RGB255()
	to := float64(size) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-to, float64(y)+0.5-to)
			if d >= to {
				continue
			}
			a := Clamp01(1 - d/to)
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)})
		}
	}
	return img
}
