// Package ebiten provides the particle surface backed by an ebiten canvas.
package ebiten

import (
	"image"

	eb "github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/pink-heart/internal/render"
)

// Surface is an offscreen ebiten canvas. Particles are drawn into it during
// the frame callback and the game blits it to the screen in Draw.
type Surface struct {
	canvas  *eb.Image
	alpha   float64
	sprites *render.SpriteCache[*eb.Image]
}

// NewSurface allocates a w x h canvas.
func NewSurface(w, h int) *Surface {
	return &Surface{
		canvas:  eb.NewImage(w, h),
		alpha:   1,
		sprites: render.NewSpriteCache(eb.NewImageFromImage),
	}
}

// Clear makes the canvas transparent.
func (s *Surface) Clear() {
	s.canvas.Clear()
}

// SetGlobalAlpha sets the opacity applied to subsequent DrawImage calls.
func (s *Surface) SetGlobalAlpha(a float64) {
	s.alpha = render.Clamp01(a)
}

// DrawImage draws sprite scaled to w x h at (x, y). The sprite is uploaded
// to the GPU the first time it is seen and reused afterwards.
func (s *Surface) DrawImage(sprite image.Image, x, y, w, h float64) {
	if !render.Visible(w, h, s.alpha) {
		return
	}
	img := s.sprites.Get(sprite)

	b := img.Bounds()
	op := &eb.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(s.alpha))
	op.Filter = eb.FilterLinear
	s.canvas.DrawImage(img, op)
}

// Size returns the canvas dimensions.
func (s *Surface) Size() (int, int) {
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the canvas, discarding its contents.
func (s *Surface) Resize(w, h int) {
	s.canvas.Deallocate()
	s.canvas = eb.NewImage(w, h)
}

// Canvas returns the image to blit onto the screen.
func (s *Surface) Canvas() *eb.Image {
	return s.canvas
}
