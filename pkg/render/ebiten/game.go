package ebiten

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-tanks/pkg/assets"
	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/logging"
	"github.com/opd-ai/go-tanks/pkg/render"
	"github.com/opd-ai/go-tanks/pkg/scene"
)

var backgroundColor = color.RGBA{20, 24, 20, 255}

// Game implements ebiten.Game, showing frames from a source.
type Game struct {
	cfg     *config.RenderConfig
	source  scene.Source
	logger  *logging.Logger
	assets  *assets.Manager
	surface *Surface
	view    *scene.View

	preloaded bool
	elapsed   time.Duration
	pending   time.Duration
}

// NewGame wires a renderer to a fresh surface. With placeholders set,
// sprites are generated instead of read from the asset directory.
func NewGame(cfg *config.RenderConfig, source scene.Source, logger *logging.Logger, placeholders bool) (*Game, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	faces, err := NewFaceCache()
	if err != nil {
		return nil, err
	}

	var loader assets.Loader = Loader{}
	if placeholders {
		loader = PlaceholderLoader{TileSize: int(cfg.TileSize)}
	}
	manager := assets.NewManager(cfg.Assets, loader, logger)

	surface := NewSurface(faces, logger)
	r, err := render.New(surface, manager, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return &Game{
		cfg:     cfg,
		source:  source,
		logger:  logger,
		assets:  manager,
		surface: surface,
		view: &scene.View{
			Surface:  surface,
			Renderer: r,
			Camera:   scene.NewCamera(),
			Width:    float64(cfg.Window.Width),
			Height:   float64(cfg.Window.Height),
		},
	}, nil
}

// Update advances the clock by one tick.
func (g *Game) Update() error {
	if !g.preloaded {
		g.preloaded = true
		if err := g.assets.Preload(context.Background()); err != nil {
			g.logger.Warn(context.Background(), "some sprites are missing and will not be drawn", "error", err.Error())
		}
	}

	tick := time.Second / time.Duration(ebiten.TPS())
	g.elapsed += tick
	g.pending += tick
	return nil
}

// Draw renders the current frame onto screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.surface.SetTarget(screen)
	g.view.Draw(g.source.Frame(g.elapsed), g.pending.Seconds())
	g.pending = 0
}

// Layout keeps the configured logical size regardless of the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Run opens a window and shows frames from source until it is closed.
func Run(cfg *config.RenderConfig, source scene.Source, logger *logging.Logger, placeholders bool) error {
	game, err := NewGame(cfg, source, logger, placeholders)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}

var _ ebiten.Game = (*Game)(nil)
