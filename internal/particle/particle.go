package particle

// Particle is a single emitted unit. Particles live by value inside a Pool
// and are reinitialized in place rather than reallocated.
type Particle struct {
	Position     Vector
	Velocity     Vector
	Acceleration Vector
	Age          float64
}

// Initialize births the particle at (x, y) moving with (dx, dy). The
// acceleration is the velocity scaled by effect, so a negative effect bends
// the particle back towards where it came from.
func (p *Particle) Initialize(x, y, dx, dy, effect float64) {
	p.Position.X = x
	p.Position.Y = y
	p.Velocity.X = dx
	p.Velocity.Y = dy
	p.Acceleration.X = dx * effect
	p.Acceleration.Y = dy * effect
	p.Age = 0
}

// Advance integrates one step of dt seconds. Position uses the velocity from
// before this step's acceleration is applied.
func (p *Particle) Advance(dt float64) {
	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt
	p.Velocity.X += p.Acceleration.X * dt
	p.Velocity.Y += p.Acceleration.Y * dt
	p.Age += dt
}

// RenderParams returns the drawn size and opacity for a particle of the given
// lifetime. Results are only meaningful while Age < duration.
func (p *Particle) RenderParams(duration, baseSize float64) (size, alpha float64) {
	t := p.Age / duration
	return baseSize * Ease(t), 1 - t
}

// Ease is a cubic ease-out: fast growth early, flattening towards t = 1.
func Ease(t float64) float64 {
	t--
	return t*t*t + 1
}
