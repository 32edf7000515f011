// pkg/render/engo/scene_test.go
package engo

import (
	"image"
	"testing"

	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/scene"
)

func TestNewGameScene(t *testing.T) {
	cfg := config.DefaultConfig()
	demo := scene.NewDemo("player", cfg.Assets.Powerups)

	gs := NewGameScene(cfg, demo, nil, false)

	if gs == nil {
		t.Fatal("NewGameScene() returned nil")
	}
	if gs.cfg != cfg {
		t.Error("Expected config to be set correctly")
	}
	if gs.source != demo {
		t.Error("Expected source to be set correctly")
	}
	if gs.logger == nil {
		t.Error("Expected a discard logger when none is given")
	}
	if gs.world == nil {
		t.Error("Expected world to be initialized")
	}
	if gs.fonts == nil {
		t.Error("Expected font cache to be initialized")
	}
}

func TestGameScene_Type(t *testing.T) {
	gs := NewGameScene(config.DefaultConfig(), scene.NewDemo("p", nil), nil, false)

	if got := gs.Type(); got != "GameScene" {
		t.Errorf("Expected Type() to return %q, got %q", "GameScene", got)
	}
}

func TestGameScene_Loader(t *testing.T) {
	cfg := config.DefaultConfig()

	if _, ok := NewGameScene(cfg, nil, nil, false).loader().(Loader); !ok {
		t.Error("Expected the file loader by default")
	}

	l, ok := NewGameScene(cfg, nil, nil, true).loader().(PlaceholderLoader)
	if !ok {
		t.Fatal("Expected the placeholder loader")
	}
	if l.TileSize != int(cfg.TileSize) {
		t.Errorf("TileSize = %d, want %d", l.TileSize, int(cfg.TileSize))
	}
}

func TestSprite_Bounds(t *testing.T) {
	var nilSprite *Sprite
	if b := nilSprite.Bounds(); b != (image.Rectangle{}) {
		t.Errorf("nil sprite bounds = %v, want empty", b)
	}
	if b := (&Sprite{}).Bounds(); b != (image.Rectangle{}) {
		t.Errorf("empty sprite bounds = %v, want empty", b)
	}
}

func TestNewFontCache(t *testing.T) {
	c := NewFontCache()
	if c.fonts == nil || len(c.fonts) != 0 {
		t.Error("fonts map should be empty initially")
	}
	if c.registered {
		t.Error("font should not be registered before use")
	}
}
