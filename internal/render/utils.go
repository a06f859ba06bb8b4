package render

import (
	"image"
	"math"
)

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Visible reports whether a w x h draw at opacity alpha would change any
// pixel.
func Visible(w, h, alpha float64) bool {
	return w > 0 && h > 0 && alpha > 0
}

// pixelRect rounds a float rectangle to whole pixels.
func pixelRect(x, y, w, h float64) (x0, y0, x1, y1 int) {
	return int(math.Round(x)), int(math.Round(y)), int(math.Round(x + w)), int(math.Round(y + h))
}

// SpriteCache converts each distinct sprite once and reuses the result.
type SpriteCache[T any] struct {
	load  func(image.Image) T
	items map[image.Image]T
}

// NewSpriteCache returns an empty cache converting sprites with load.
func NewSpriteCache[T any](load func(image.Image) T) *SpriteCache[T] {
	return &SpriteCache[T]{
		load:  load,
		items: make(map[image.Image]T),
	}
}

// Get returns the converted sprite, converting it on first use.
func (c *SpriteCache[T]) Get(sprite image.Image) T {
	v, ok := c.items[sprite]
	if !ok {
		v = c.load(sprite)
		c.items[sprite] = v
	}
	return v
}

// Len returns how many sprites have been converted.
func (c *SpriteCache[T]) Len() int {
	return len(c.items)
}
