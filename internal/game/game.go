package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/iburimskiy/pink-heart/internal/config"
	"github.com/iburimskiy/pink-heart/internal/frame"
	ebitensurface "github.com/iburimskiy/pink-heart/internal/render/ebiten"
)

// Game adapts the loop to ebiten. Ebiten's Update is the host refresh
// signal: it pumps the frame scheduler, which runs the loop's frame.
type Game struct {
	loop    *Loop
	host    *frame.Host
	surface *ebitensurface.Surface

	overlay bool
	started time.Time
}

// NewGame builds the loop on an ebiten canvas of the configured window size
// and starts it.
func NewGame(cfg *config.Config) *Game {
	surface := ebitensurface.NewSurface(cfg.Window.Width, cfg.Window.Height)
	host := frame.NewHost()

	g := &Game{
		loop:    NewLoop(cfg, surface, nil),
		host:    host,
		surface: surface,
		overlay: cfg.Debug.Overlay,
		started: time.Now(),
	}
	g.loop.Start(frame.Select(host))
	return g
}

func (g *Game) Update() error {
	g.host.Pump(time.Now())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.surface.Canvas(), nil)

	if !g.overlay {
		return
	}
	st := g.loop.Stats()
	pool := g.loop.Pool()
	msg := fmt.Sprintf("FPS %.1f  dt %.2fms ±%.2f\nalive %d/%d  up %s",
		st.FPS, st.MeanDt*1000, st.StdDt*1000,
		pool.Len(), pool.Cap(), formatDuration(time.Since(g.started)))
	ebitenutil.DebugPrintAt(screen, msg, 12, 12)
}

// Layout follows the window: the canvas always matches the displayed size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.loop.Resize(outsideWidth, outsideHeight)
	}
	return g.surface.Size()
}

// Close stops the frame loop.
func (g *Game) Close() {
	g.loop.Stop()
}
