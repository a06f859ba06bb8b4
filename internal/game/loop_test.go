package game

import (
	"image"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/pink-heart/internal/config"
	"github.com/iburimskiy/pink-heart/internal/frame"
	"github.com/iburimskiy/pink-heart/internal/particle"
)

type fakeCanvas struct {
	w, h    int
	clears  int
	draws   int
	resizes int
}

func (c *fakeCanvas) Clear() {
	c.clears++
	c.draws = 0
}

func (c *fakeCanvas) SetGlobalAlpha(float64) {}

func (c *fakeCanvas) DrawImage(image.Image, float64, float64, float64, float64) { c.draws++ }

func (c *fakeCanvas) Size() (int, int) { return c.w, c.h }

func (c *fakeCanvas) Resize(w, h int) {
	c.w, c.h = w, h
	c.resizes++
}

// testConfig returns defaults with a 100-particle ring living 2s, so the
// emission rate is 50 particles per second.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Particles.Length = 100
	cfg.Particles.Duration = 2
	cfg.Debug.LogInterval = 0
	require.NoError(t, cfg.Validate())
	return cfg
}

func newTestLoop(t *testing.T, cfg *config.Config) (*Loop, *fakeCanvas) {
	t.Helper()
	canvas := &fakeCanvas{w: 400, h: 300}
	return NewLoop(cfg, canvas, rand.New(rand.NewPCG(1, 2))), canvas
}

var t0 = time.Unix(1_700_000_000, 0)

func TestLoopFirstFrameEmitsNothing(t *testing.T) {
	loop, canvas := newTestLoop(t, testConfig(t))

	loop.Frame(t0)

	assert.Equal(t, 0, loop.Pool().Len())
	assert.Equal(t, 1, canvas.clears)
	assert.Equal(t, 0, canvas.draws)
	assert.Equal(t, 1, loop.Frames())
}

func TestLoopEmitsFlooredAmount(t *testing.T) {
	loop, canvas := newTestLoop(t, testConfig(t))

	loop.Frame(t0)
	loop.Frame(t0.Add(500 * time.Millisecond))
	assert.Equal(t, 25, loop.Pool().Len())
	assert.Equal(t, 25, canvas.draws)

	// 50/s * 10ms = 0.5 particles, dropped.
	loop.Frame(t0.Add(510 * time.Millisecond))
	assert.Equal(t, 25, loop.Pool().Len())
	assert.Equal(t, 3, canvas.clears)
}

func TestLoopClampsNegativeDelta(t *testing.T) {
	loop, _ := newTestLoop(t, testConfig(t))
	loop.Frame(t0)
	loop.Frame(t0.Add(time.Second))
	require.Equal(t, 50, loop.Pool().Len())

	var before []float64
	loop.Pool().Each(func(p *particle.Particle) { before = append(before, p.Age) })

	loop.Frame(t0.Add(500 * time.Millisecond))

	var after []float64
	loop.Pool().Each(func(p *particle.Particle) { after = append(after, p.Age) })
	assert.Equal(t, before, after)
}

func TestLoopCapsEmissionAtCapacity(t *testing.T) {
	loop, _ := newTestLoop(t, testConfig(t))
	loop.Frame(t0)

	// A one-second stall emits a full ring but no more.
	loop.rate = 1000
	loop.Frame(t0.Add(time.Second))
	assert.Equal(t, 100, loop.Pool().Len())

	// A long stall ages everything past its lifetime.
	loop.Frame(t0.Add(time.Minute))
	assert.Equal(t, 0, loop.Pool().Len())
}

func TestLoopSteadyStateStaysBelowCapacity(t *testing.T) {
	loop, _ := newTestLoop(t, testConfig(t))
	now := t0
	for i := 0; i < 100; i++ {
		loop.Frame(now)
		now = now.Add(time.Second / 10)
		assert.LessOrEqual(t, loop.Pool().Len(), 100)
	}
	assert.Greater(t, loop.Pool().Len(), 50)
}

func TestLoopEmitsOnHeartWithoutVelocity(t *testing.T) {
	cfg := testConfig(t)
	cfg.Particles.VelocityScale = 0
	loop, canvas := newTestLoop(t, cfg)

	loop.Frame(t0)
	loop.Frame(t0.Add(time.Second))

	cx, cy := float64(canvas.w)/2, float64(canvas.h)/2
	loop.Pool().Each(func(p *particle.Particle) {
		assert.Equal(t, particle.Vector{}, p.Velocity)
		assert.LessOrEqual(t, math.Abs(p.Position.X-cx), 160.0)
		assert.LessOrEqual(t, math.Abs(p.Position.Y-cy), 130.0+50+20+10+25)
	})
}

func TestLoopVelocityPointsOutward(t *testing.T) {
	loop, canvas := newTestLoop(t, testConfig(t))
	loop.Frame(t0)
	loop.Frame(t0.Add(500 * time.Millisecond))

	cx, cy := float64(canvas.w)/2, float64(canvas.h)/2
	loop.Pool().Each(func(p *particle.Particle) {
		assert.GreaterOrEqual(t, p.Velocity.X*(p.Position.X-cx), 0.0)
		assert.GreaterOrEqual(t, p.Velocity.Y*(p.Position.Y-cy), 0.0)
	})
}

func TestLoopStartStopWithHost(t *testing.T) {
	loop, _ := newTestLoop(t, testConfig(t))
	host := frame.NewHost()

	loop.Start(host)
	loop.Start(host)
	for i := 0; i < 3; i++ {
		assert.True(t, host.Pump(t0.Add(time.Duration(i)*time.Second/60)))
	}
	assert.Equal(t, 3, loop.Frames())

	loop.Stop()
	assert.False(t, host.Pump(t0.Add(time.Second)))
	assert.Equal(t, 3, loop.Frames())
}

func TestLoopRunsOnTimerFallback(t *testing.T) {
	loop, _ := newTestLoop(t, testConfig(t))
	timer := frame.NewTimer(time.Millisecond)

	loop.Start(timer)
	require.Eventually(t, func() bool {
		loop.mu.Lock()
		defer loop.mu.Unlock()
		return loop.handle > 3
	}, time.Second, time.Millisecond)
	loop.Stop()
	timer.Close()

	frames := loop.Frames()
	assert.Greater(t, frames, 2)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, frames, loop.Frames())
}

// slowCanvas takes longer to clear than the timer interval and counts how
// often a frame starts while another is still inside Clear.
type slowCanvas struct {
	fakeCanvas
	inside   atomic.Int32
	overlaps atomic.Int32
}

func (c *slowCanvas) Clear() {
	if c.inside.Add(1) > 1 {
		c.overlaps.Add(1)
	}
	time.Sleep(5 * time.Millisecond)
	c.fakeCanvas.Clear()
	c.inside.Add(-1)
}

func TestLoopFramesDoNotOverlapOnSlowCanvas(t *testing.T) {
	canvas := &slowCanvas{fakeCanvas: fakeCanvas{w: 400, h: 300}}
	loop := NewLoop(testConfig(t), canvas, rand.New(rand.NewPCG(1, 2)))
	timer := frame.NewTimer(time.Millisecond)

	loop.Start(timer)
	time.Sleep(100 * time.Millisecond)
	loop.Stop()
	timer.Close()

	assert.Greater(t, loop.Frames(), 3)
	assert.Zero(t, canvas.overlaps.Load())
	assert.Equal(t, loop.Frames(), canvas.clears)
}

func TestLoopResize(t *testing.T) {
	loop, canvas := newTestLoop(t, testConfig(t))

	loop.Resize(400, 300)
	assert.Equal(t, 0, canvas.resizes)

	loop.Resize(800, 600)
	assert.Equal(t, 1, canvas.resizes)
	w, h := canvas.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestLoopStats(t *testing.T) {
	loop, _ := newTestLoop(t, testConfig(t))
	now := t0
	for i := 0; i < 10; i++ {
		loop.Frame(now)
		now = now.Add(20 * time.Millisecond)
	}

	st := loop.Stats()
	assert.Equal(t, 9, st.Frames)
	assert.InDelta(t, 50, st.FPS, 1e-6)
	assert.InDelta(t, 0, st.StdDt, 1e-9)
	assert.Equal(t, loop.Pool().Len(), st.Alive)
}
