package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/pink-heart/internal/config"
	"github.com/iburimskiy/pink-heart/internal/frame"
	"github.com/iburimskiy/pink-heart/internal/game"
	"github.com/iburimskiy/pink-heart/internal/render"
)

func main() {
	headless := flag.Bool("headless", false, "Render without a window and write the last frame as PNG")
	duration := flag.Duration("duration", 3*time.Second, "How long to animate in headless mode")
	out := flag.String("out", "heart.png", "PNG output path in headless mode")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Default()
	if err != nil {
		fatal(err, !*headless)
	}
	mode := "window"
	if *headless {
		mode = "headless"
	}
	slog.Info("starting",
		"mode", mode,
		"particles", cfg.Particles.Length,
		"duration_s", cfg.Particles.Duration,
		"rate_per_s", cfg.Derived.EmissionRate,
		"size", cfg.Particles.Size,
	)

	if *headless {
		err = runHeadless(cfg, *duration, *out)
	} else {
		err = runWindow(cfg)
	}
	if err != nil {
		fatal(err, !*headless)
	}
}

func runWindow(cfg *config.Config) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g := game.NewGame(cfg)
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// runHeadless animates on the timer scheduler into an in-memory image until
// d elapses or the process is interrupted, then writes the last frame.
func runHeadless(cfg *config.Config, d time.Duration, out string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, d)
	defer cancelTimeout()

	surface := render.NewRasterSurface(cfg.Window.Width, cfg.Window.Height)
	loop := game.NewLoop(cfg, surface, nil)
	timer := frame.NewTimer(frame.FallbackInterval)

	loop.Start(timer)
	<-ctx.Done()
	loop.Stop()
	timer.Close()

	st := loop.Stats()
	slog.Info("headless run finished",
		"frames", loop.Frames(),
		"fps", st.FPS,
		"alive", st.Alive,
	)

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := png.Encode(f, surface.Image()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	slog.Info("wrote frame", "path", out)
	return nil
}

// fatal logs err and exits. With a window expected there may be no terminal,
// so the error is also shown in a dialog.
func fatal(err error, dialog bool) {
	slog.Error("fatal", "error", err)
	if dialog {
		_ = zenity.Error(err.Error(), zenity.Title("Pink Heart"), zenity.ErrorIcon)
	}
	os.Exit(1)
}
