package game

import (
	"image"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/iburimskiy/pink-heart/internal/config"
	"github.com/iburimskiy/pink-heart/internal/frame"
	"github.com/iburimskiy/pink-heart/internal/particle"
	"github.com/iburimskiy/pink-heart/internal/render"
)

// Canvas is a particle.Surface that knows its size and can be resized to
// follow the displayed area.
type Canvas interface {
	particle.Surface
	Size() (w, h int)
	Resize(w, h int)
}

// Loop drives the heart effect: each frame it emits particles on the heart
// curve, advances the pool and redraws it onto the canvas.
type Loop struct {
	pool          *particle.Pool
	canvas        Canvas
	sprite        image.Image
	heart         Heart
	rate          float64 // particles per second
	velocityScale float64
	rng           *rand.Rand

	lastFrame   time.Time
	frames      int
	tap         *frameTap
	logInterval time.Duration
	lastLog     time.Time

	// Guarded by mu; everything above is touched only by frame callbacks.
	mu      sync.Mutex
	sched   frame.Scheduler
	handle  frame.Handle
	running bool
}

// NewLoop builds a loop drawing onto canvas. A nil rng is seeded from the
// clock.
func NewLoop(cfg *config.Config, canvas Canvas, rng *rand.Rand) *Loop {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>32|1))
	}
	p := cfg.Particles
	return &Loop{
		pool:          particle.NewPool(p.Length, p.Duration, p.Effect),
		canvas:        canvas,
		sprite:        render.NewSprite(p.Size, cfg.Derived.Color),
		heart:         Heart(cfg.Heart),
		rate:          cfg.Derived.EmissionRate,
		velocityScale: p.VelocityScale,
		rng:           rng,
		tap:           newFrameTap(cfg.Debug.StatsWindow),
		logInterval:   seconds(cfg.Debug.LogInterval),
	}
}

// Start begins requesting frames from s. Calling Start on a running loop
// does nothing.
func (l *Loop) Start(s frame.Scheduler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.sched = s
	l.running = true
	l.handle = s.Request(l.tick)
}

// Stop cancels the outstanding frame. A frame already running completes
// but does not request another. Safe to call from any goroutine.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	l.sched.Cancel(l.handle)
}

// tick runs a frame and only then requests the next one, so a frame slower
// than the scheduler interval delays its successor instead of overlapping it.
func (l *Loop) tick(now time.Time) {
	l.mu.Lock()
	running := l.running
	l.mu.Unlock()
	if !running {
		return
	}

	l.Frame(now)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		l.handle = l.sched.Request(l.tick)
	}
}

// Frame runs one frame at time now: clear, emit, advance, draw.
func (l *Loop) Frame(now time.Time) {
	var dt float64
	if !l.lastFrame.IsZero() {
		dt = now.Sub(l.lastFrame).Seconds()
	}
	if dt < 0 {
		dt = 0
	}
	l.lastFrame = now

	l.canvas.Clear()

	// The fractional remainder is dropped. More than a full ring in one
	// frame would only overwrite particles emitted in this same frame.
	amount := int(l.rate * dt)
	if amount > l.pool.Cap() {
		amount = l.pool.Cap()
	}
	if amount > 0 {
		w, h := l.canvas.Size()
		cx, cy := float64(w)/2, float64(h)/2
		for i := 0; i < amount; i++ {
			l.emit(cx, cy)
		}
	}

	l.pool.AdvanceAll(dt)
	l.pool.DrawAll(l.canvas, l.sprite)

	l.frames++
	l.tap.record(frameSample{dt: dt, alive: l.pool.Len()})
	l.maybeLog(now)
}

// emit births one particle at a random point of the heart, moving away from
// the heart's origin. Canvas y grows downwards, the curve's grows upwards.
func (l *Loop) emit(cx, cy float64) {
	pos := l.heart.Point(math.Pi - 2*math.Pi*l.rng.Float64())
	dir := pos.Clone()
	dir.X *= l.rng.Float64() * l.velocityScale
	dir.Y *= l.rng.Float64() * l.velocityScale
	l.pool.Emit(cx+pos.X, cy-pos.Y, dir.X, -dir.Y)
}

func (l *Loop) maybeLog(now time.Time) {
	if l.logInterval <= 0 {
		return
	}
	if l.lastLog.IsZero() {
		l.lastLog = now
		return
	}
	if now.Sub(l.lastLog) < l.logInterval {
		return
	}
	l.lastLog = now

	st := l.Stats()
	slog.Info("frame summary",
		"frames", l.frames,
		"fps", st.FPS,
		"mean_dt_ms", st.MeanDt*1000,
		"std_dt_ms", st.StdDt*1000,
		"alive", st.Alive,
		"capacity", l.pool.Cap(),
	)
}

// Resize resizes the canvas when the displayed area changes. The canvas is
// cleared as a side effect; the next frame redraws it.
func (l *Loop) Resize(w, h int) {
	cw, ch := l.canvas.Size()
	if w == cw && h == ch {
		return
	}
	l.canvas.Resize(w, h)
	slog.Debug("canvas resized", "from", []int{cw, ch}, "to", []int{w, h})
}

// Stats summarises recent frames.
func (l *Loop) Stats() FrameStats {
	return summarize(l.tap.snapshot(l.tap.size()))
}

// Frames returns how many frames have run.
func (l *Loop) Frames() int { return l.frames }

// Pool exposes the particle pool for inspection.
func (l *Loop) Pool() *particle.Pool { return l.pool }
