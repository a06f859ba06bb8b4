package particle

import (
	"fmt"
	"image"
)

// Surface is the drawing target used by Pool.DrawAll.
type Surface interface {
	Clear()
	SetGlobalAlpha(a float64)
	DrawImage(sprite image.Image, x, y, w, h float64)
}

// Pool is a fixed-capacity ring of particles. The live particles are the
// alive slots starting at firstActive, oldest first; they end at firstFree.
// When the ring is full the next Emit overwrites the oldest particle.
type Pool struct {
	slots       []Particle
	firstActive int
	firstFree   int
	alive       int

	duration float64
	effect   float64
}

// NewPool allocates every slot up front. Capacity must be at least 1.
func NewPool(capacity int, duration, effect float64) *Pool {
	if capacity < 1 {
		panic(fmt.Sprintf("particle: pool capacity %d < 1", capacity))
	}
	return &Pool{
		slots:    make([]Particle, capacity),
		duration: duration,
		effect:   effect,
	}
}

// Emit births a particle in the next free slot, evicting the oldest one if
// the ring is already full.
func (p *Pool) Emit(x, y, dx, dy float64) {
	p.slots[p.firstFree].Initialize(x, y, dx, dy, p.effect)
	p.firstFree = p.next(p.firstFree)
	if p.alive == len(p.slots) {
		p.firstActive = p.next(p.firstActive)
	} else {
		p.alive++
	}
	p.check()
}

// AdvanceAll ages every live particle by dt and retires expired particles
// from the head of the ring.
func (p *Pool) AdvanceAll(dt float64) {
	head, tail := p.spans()
	for i := range head {
		head[i].Advance(dt)
	}
	for i := range tail {
		tail[i].Advance(dt)
	}

	// Emission order is age order, so the head is always the oldest.
	for p.alive > 0 && p.slots[p.firstActive].Age >= p.duration {
		p.firstActive = p.next(p.firstActive)
		p.alive--
	}
	p.check()
}

// DrawAll draws the live particles oldest to newest, scaled and faded by age.
// The sprite's width is the particle's full-grown size.
func (p *Pool) DrawAll(s Surface, sprite image.Image) {
	base := float64(sprite.Bounds().Dx())
	p.Each(func(pt *Particle) {
		size, alpha := pt.RenderParams(p.duration, base)
		s.SetGlobalAlpha(alpha)
		s.DrawImage(sprite, pt.Position.X-size/2, pt.Position.Y-size/2, size, size)
	})
}

// Each calls fn for every live particle, oldest first.
func (p *Pool) Each(fn func(*Particle)) {
	head, tail := p.spans()
	for i := range head {
		fn(&head[i])
	}
	for i := range tail {
		fn(&tail[i])
	}
}

// Newest returns the most recently emitted live particle.
func (p *Pool) Newest() (Particle, bool) {
	if p.alive == 0 {
		return Particle{}, false
	}
	i := p.firstFree - 1
	if i < 0 {
		i = len(p.slots) - 1
	}
	return p.slots[i], true
}

// Len returns the number of live particles.
func (p *Pool) Len() int { return p.alive }

// Cap returns the ring size.
func (p *Pool) Cap() int { return len(p.slots) }

// Duration returns the particle lifetime in seconds.
func (p *Pool) Duration() float64 { return p.duration }

// Cursors returns the ring indices delimiting the live range.
func (p *Pool) Cursors() (firstActive, firstFree int) {
	return p.firstActive, p.firstFree
}

// spans splits the live range into at most two contiguous slices:
// [firstActive, N) and [0, firstFree) when it wraps.
func (p *Pool) spans() (head, tail []Particle) {
	if p.alive == 0 {
		return nil, nil
	}
	end := p.firstActive + p.alive
	if end <= len(p.slots) {
		return p.slots[p.firstActive:end], nil
	}
	return p.slots[p.firstActive:], p.slots[:end-len(p.slots)]
}

func (p *Pool) next(i int) int {
	i++
	if i == len(p.slots) {
		i = 0
	}
	return i
}

// check panics if the cursors ever leave the ring or disagree with the
// alive count. Reaching it means a bug in Pool itself.
func (p *Pool) check() {
	n := len(p.slots)
	if p.firstActive < 0 || p.firstActive >= n || p.firstFree < 0 || p.firstFree >= n {
		panic(fmt.Sprintf("particle: cursors out of range: active=%d free=%d cap=%d", p.firstActive, p.firstFree, n))
	}
	if p.alive < 0 || p.alive > n || (p.firstActive+p.alive)%n != p.firstFree {
		panic(fmt.Sprintf("particle: alive count %d inconsistent with active=%d free=%d cap=%d", p.alive, p.firstActive, p.firstFree, n))
	}
}
