package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// RasterSurface draws into an in-memory RGBA image. It backs the headless
// mode, where no window or GPU is available.
type RasterSurface struct {
	img   *image.RGBA
	alpha float64
}

// NewRasterSurface returns a transparent w x h surface.
func NewRasterSurface(w, h int) *RasterSurface {
	return &RasterSurface{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		alpha: 1,
	}
}

// Clear makes every pixel transparent.
func (s *RasterSurface) Clear() {
	xdraw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, xdraw.Src)
}

// SetGlobalAlpha sets the opacity applied to subsequent DrawImage calls.
func (s *RasterSurface) SetGlobalAlpha(a float64) {
	s.alpha = Clamp01(a)
}

// DrawImage scales sprite into the given rectangle and composites it over
// the surface at the current global alpha.
func (s *RasterSurface) DrawImage(sprite image.Image, x, y, w, h float64) {
	x0, y0, x1, y1 := pixelRect(x, y, w, h)
	dr := image.Rect(x0, y0, x1, y1)
	if !Visible(w, h, s.alpha) || dr.Empty() || !dr.Overlaps(s.img.Bounds()) {
		return
	}

	var opts *xdraw.Options
	if s.alpha < 1 {
		opts = &xdraw.Options{
			SrcMask: image.NewUniform(color.Alpha16{A: uint16(s.alpha*0xffff + 0.5)}),
		}
	}
	xdraw.BiLinear.Scale(s.img, dr, sprite, sprite.Bounds(), xdraw.Over, opts)
}

// Size returns the surface dimensions.
func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the backing image, discarding its contents.
func (s *RasterSurface) Resize(w, h int) {
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Image returns the backing image.
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}
