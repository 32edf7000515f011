// pkg/render/engo/scene.go
package engo

import (
	"context"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tanks/pkg/assets"
	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/logging"
	"github.com/opd-ai/go-tanks/pkg/render"
	"github.com/opd-ai/go-tanks/pkg/scene"
)

// GameScene shows frames from a source through the engo render system.
type GameScene struct {
	world *ecs.World

	cfg          *config.RenderConfig
	source       scene.Source
	logger       *logging.Logger
	placeholders bool

	fonts   *FontCache
	surface *Surface
	view    *scene.View
}

// NewGameScene creates a new game scene. With placeholders set, sprites are
// generated instead of read from the asset directory.
func NewGameScene(cfg *config.RenderConfig, source scene.Source, logger *logging.Logger, placeholders bool) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{
		world:        &ecs.World{},
		cfg:          cfg,
		source:       source,
		logger:       logger,
		placeholders: placeholders,
		fonts:        NewFontCache(),
	}
}

// Type returns the scene type (required by Engo)
func (gs *GameScene) Type() string {
	return "GameScene"
}

// Preload registers the bundled font (required by Engo)
func (gs *GameScene) Preload() {
	if err := gs.fonts.Register(); err != nil {
		gs.logger.Warn(context.Background(), "font registration failed", "error", err.Error())
	}
}

// loader picks the sprite source for this scene.
func (gs *GameScene) loader() assets.Loader {
	if gs.placeholders {
		return PlaceholderLoader{TileSize: int(gs.cfg.TileSize)}
	}
	return Loader{}
}

// Setup is called when the scene starts (required by Engo)
func (gs *GameScene) Setup(u engo.Updater) {
	ctx := context.Background()
	w, _ := u.(*ecs.World)
	gs.world = w

	renderSystem := &common.RenderSystem{}
	w.AddSystem(renderSystem)
	gs.surface = NewSurface(renderSystem, gs.fonts, gs.logger)

	manager := assets.NewManager(gs.cfg.Assets, gs.loader(), gs.logger)
	if err := manager.Preload(ctx); err != nil {
		gs.logger.Warn(ctx, "some sprites are missing and will not be drawn", "error", err.Error())
	}

	r, err := render.New(gs.surface, manager, gs.cfg)
	if err != nil {
		gs.logger.Error(ctx, "failed to create renderer", err)
		engo.Exit()
		return
	}

	gs.view = &scene.View{
		Surface:  gs.surface,
		Renderer: r,
		Camera:   scene.NewCamera(),
		Width:    float64(engo.GameWidth()),
		Height:   float64(engo.GameHeight()),
	}
	w.AddSystem(&frameSystem{scene: gs})
}

// Exit is called when the scene is exiting (required by Engo)
func (gs *GameScene) Exit() {
	if gs.surface != nil {
		gs.surface.Clear()
	}
}

// frameSystem redraws the whole scene once per engo update.
type frameSystem struct {
	scene   *GameScene
	elapsed time.Duration
}

// Update rebuilds the frame's entities.
func (fs *frameSystem) Update(dt float32) {
	gs := fs.scene
	fs.elapsed += time.Duration(float64(dt) * float64(time.Second))

	gs.surface.Clear()
	gs.view.Draw(gs.source.Frame(fs.elapsed), float64(dt))
}

// Remove satisfies the ecs.System interface
func (fs *frameSystem) Remove(ecs.BasicEntity) {}

// Run opens a window and shows frames from source until it is closed.
func Run(cfg *config.RenderConfig, source scene.Source, logger *logging.Logger, placeholders bool) {
	opts := engo.RunOptions{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		AssetsRoot: ".",
	}
	engo.Run(opts, NewGameScene(cfg, source, logger, placeholders))
}
