package raster

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"

	"github.com/opd-ai/go-tanks/pkg/assets"
	"github.com/opd-ai/go-tanks/pkg/canvas"
	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/logging"
	"github.com/opd-ai/go-tanks/pkg/render"
	"github.com/opd-ai/go-tanks/pkg/render/fonts"
	"github.com/opd-ai/go-tanks/pkg/scene"
)

// Background is the color a snapshot starts from.
var Background = color.RGBA{20, 24, 20, 255}

// Loader reads sprites from image files.
type Loader struct{}

// Load implements assets.Loader.
func (Loader) Load(_, path string) (canvas.Image, error) {
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite: %w", err)
	}
	return img, nil
}

// PlaceholderLoader builds flat stand-in sprites instead of reading files.
type PlaceholderLoader struct {
	TileSize int
}

// Load implements assets.Loader.
func (l PlaceholderLoader) Load(name, _ string) (canvas.Image, error) {
	img := assets.Placeholder(name, l.TileSize)
	if img == nil {
		return nil, fmt.Errorf("no placeholder for %q", name)
	}
	return img, nil
}

// Render draws the frame source shows at elapsed into a new surface the size
// of the configured window, with the camera on the local player.
func Render(ctx context.Context, cfg *config.RenderConfig, source scene.Source, logger *logging.Logger, placeholders bool, elapsed time.Duration) (*Surface, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	fc, err := fonts.NewCache()
	if err != nil {
		return nil, err
	}

	var loader assets.Loader = Loader{}
	if placeholders {
		loader = PlaceholderLoader{TileSize: int(cfg.TileSize)}
	}
	manager := assets.NewManager(cfg.Assets, loader, logger)
	if err := manager.Preload(ctx); err != nil {
		logger.Warn(ctx, "some sprites are missing and will not be drawn", "error", err.Error())
	}

	surface := NewSurface(cfg.Window.Width, cfg.Window.Height, fc, logger)
	r, err := render.New(surface, manager, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	view := &scene.View{
		Surface:  surface,
		Renderer: r,
		Camera:   scene.NewCamera(),
		Width:    float64(cfg.Window.Width),
		Height:   float64(cfg.Window.Height),
	}

	surface.Clear(Background)
	view.Draw(source.Frame(elapsed), 0)
	logger.Debug(ctx, "snapshot rendered", "elapsed", elapsed.String(), "width", cfg.Window.Width, "height", cfg.Window.Height)
	return surface, nil
}

var (
	_ assets.Loader = Loader{}
	_ assets.Loader = PlaceholderLoader{}
)
