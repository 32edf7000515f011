// cmd/client/main.go
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-tanks/pkg/assets"
	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/logging"
	"github.com/opd-ai/go-tanks/pkg/physics"
	"github.com/opd-ai/go-tanks/pkg/render"
	ebitenrender "github.com/opd-ai/go-tanks/pkg/render/ebiten"
	engorender "github.com/opd-ai/go-tanks/pkg/render/engo"
	"github.com/opd-ai/go-tanks/pkg/render/raster"
	"github.com/opd-ai/go-tanks/pkg/scene"
	"github.com/opd-ai/go-tanks/pkg/validation"
)

// terminalOptions sizes the terminal renderer.
type terminalOptions struct {
	cols  int
	rows  int
	scale float64
	tick  time.Duration
	out   io.Writer
}

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	playerName := flag.String("name", "Player", "Player name")
	renderer := flag.String("renderer", "terminal", "Renderer type: 'terminal', 'ebiten', 'engo' or 'png'")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	placeholders := flag.Bool("placeholders", false, "Draw generated sprites instead of image files")
	cols := flag.Int("cols", 80, "Terminal columns")
	rows := flag.Int("rows", 24, "Terminal rows")
	scale := flag.Float64("scale", 20, "Pixels per terminal cell")
	out := flag.String("out", "frame.png", "Snapshot file for the png renderer")
	at := flag.Duration("at", 5*time.Second, "Game time of the png snapshot")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	name, err := validation.ValidatePlayerName(*playerName)
	if err != nil {
		logger.Error(ctx, "invalid player name", err)
		os.Exit(2)
	}

	cfg, err := loadConfig(ctx, *configPath, logger)
	if err != nil {
		logger.Error(ctx, "failed to load configuration", err)
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}

	if !*placeholders {
		if _, err := os.Stat(cfg.Assets.Dir); os.IsNotExist(err) {
			logger.Warn(ctx, "asset directory not found, using generated sprites", "dir", cfg.Assets.Dir)
			*placeholders = true
		}
	}

	source := scene.NewDemo(name, cfg.Assets.Powerups)
	logger.Info(ctx, "starting client", "renderer", *renderer, "player", name)

	switch *renderer {
	case "engo":
		engorender.Run(cfg, source, logger, *placeholders)
	case "ebiten":
		if err := ebitenrender.Run(cfg, source, logger, *placeholders); err != nil {
			logger.Error(ctx, "ebiten renderer stopped", err)
			os.Exit(1)
		}
	case "png":
		if err := runSnapshot(ctx, cfg, source, logger, *placeholders, *at, *out); err != nil {
			logger.Error(ctx, "snapshot failed", err)
			os.Exit(1)
		}
	case "terminal":
		fallthrough
	default:
		sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		opts := terminalOptions{cols: *cols, rows: *rows, scale: *scale, tick: 100 * time.Millisecond}
		if err := runTerminal(sigCtx, cfg, source, logger, opts); err != nil {
			logger.Error(ctx, "terminal renderer stopped", err)
			os.Exit(1)
		}
	}
}

// loadConfig reads the configuration file, falling back to defaults when it
// does not exist, and applies environment overrides.
func loadConfig(ctx context.Context, path string, logger *logging.Logger) (*config.RenderConfig, error) {
	var cfg *config.RenderConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "configuration file not found, using default configuration", "path", path)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, logging.WrapError(err, "apply environment overrides")
	}
	return cfg, nil
}

// runSnapshot draws the frame at elapsed and writes it to path as a PNG.
func runSnapshot(ctx context.Context, cfg *config.RenderConfig, source scene.Source, logger *logging.Logger, placeholders bool, elapsed time.Duration, path string) error {
	surface, err := raster.Render(ctx, cfg, source, logger, placeholders, elapsed)
	if err != nil {
		return err
	}
	if err := surface.SavePNG(path); err != nil {
		return err
	}
	logger.Info(ctx, "snapshot written", "path", path, "elapsed", elapsed.String())
	return nil
}

// runTerminal draws frames from source as text until ctx is done.
func runTerminal(ctx context.Context, cfg *config.RenderConfig, source scene.Source, logger *logging.Logger, opts terminalOptions) error {
	width := float64(opts.cols) * opts.scale
	height := float64(opts.rows) * opts.scale

	surface := render.NewTerminalSurface(opts.cols, opts.rows, opts.scale)
	surface.SetCenter(physics.Vector2D{X: width / 2, Y: height / 2})
	if opts.out != nil {
		surface.SetOutput(opts.out)
	}

	manager := assets.NewManager(cfg.Assets, render.TerminalLoader{TileSize: cfg.TileSize}, logger)
	if err := manager.Preload(ctx); err != nil {
		logger.Warn(ctx, "some sprites are missing and will not be drawn", "error", err.Error())
	}

	r, err := render.New(surface, manager, cfg)
	if err != nil {
		return err
	}
	view := &scene.View{
		Surface:  surface,
		Renderer: r,
		Camera:   scene.NewCamera(),
		Width:    width,
		Height:   height,
	}

	ticker := time.NewTicker(opts.tick)
	defer ticker.Stop()
	start := time.Now()
	last := start

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "terminal renderer stopping")
			return nil
		case now := <-ticker.C:
			surface.Clear()
			view.Draw(source.Frame(now.Sub(start)), now.Sub(last).Seconds())
			last = now
			if err := surface.Present(); err != nil {
				return err
			}
		}
	}
}
