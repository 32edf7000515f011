// Package assets resolves the client's logical sprite names to images. Every
// sprite is requested from the backend loader at most once; later lookups are
// table reads.
package assets

import (
	"context"
	"errors"
	"strings"

	"github.com/opd-ai/go-tanks/pkg/canvas"
	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/logging"
)

// Logical sprite names.
const (
	SelfTank    = "self_tank"
	SelfTurret  = "self_turret"
	OtherTank   = "other_tank"
	OtherTurret = "other_turret"
	Bullet      = "bullet"
	Tile        = "tile"

	powerupPrefix = "powerup/"
)

// Loader turns a sprite into a backend image. name is the logical sprite
// name and path the resource it resolves to; file loaders read path, while
// generated sprites are chosen by name.
type Loader interface {
	Load(name, path string) (canvas.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(name, path string) (canvas.Image, error)

// Load implements Loader.
func (f LoaderFunc) Load(name, path string) (canvas.Image, error) {
	return f(name, path)
}

// Manager is the asset table. It is not safe for concurrent use.
type Manager struct {
	cfg    config.AssetConfig
	loader Loader
	logger *logging.Logger

	// images maps logical names to loaded sprites. A nil value records a
	// failed load so it is not retried.
	images map[string]canvas.Image
}

// NewManager creates an empty asset table. Nothing is loaded until Preload or
// the first lookup.
func NewManager(cfg config.AssetConfig, loader Loader, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{
		cfg:    cfg,
		loader: loader,
		logger: logger,
		images: make(map[string]canvas.Image),
	}
}

// PowerupName returns the logical name of the named powerup sprite.
func PowerupName(name string) string {
	return powerupPrefix + name
}

// SplitPowerup returns the powerup a logical name refers to, if any.
func SplitPowerup(name string) (string, bool) {
	powerup, ok := strings.CutPrefix(name, powerupPrefix)
	return powerup, ok && powerup != ""
}

// Path returns the resource path for a logical name.
func (m *Manager) Path(name string) string {
	switch name {
	case SelfTank:
		return m.cfg.Path(m.cfg.SelfTank)
	case SelfTurret:
		return m.cfg.Path(m.cfg.SelfTurret)
	case OtherTank:
		return m.cfg.Path(m.cfg.OtherTank)
	case OtherTurret:
		return m.cfg.Path(m.cfg.OtherTurret)
	case Bullet:
		return m.cfg.Path(m.cfg.Bullet)
	case Tile:
		return m.cfg.Path(m.cfg.Tile)
	}
	if powerup, ok := SplitPowerup(name); ok {
		return m.cfg.PowerupPath(powerup)
	}
	return ""
}

// Names returns the logical names Preload loads, fixed sprites first.
func (m *Manager) Names() []string {
	names := []string{SelfTank, SelfTurret, OtherTank, OtherTurret, Bullet, Tile}
	for _, p := range m.cfg.Powerups {
		names = append(names, PowerupName(p))
	}
	return names
}

// Preload loads every fixed sprite and configured powerup. Failed loads are
// logged, remembered as missing and returned joined; the table stays usable.
func (m *Manager) Preload(ctx context.Context) error {
	var errs []error
	loaded := 0
	for _, name := range m.Names() {
		if _, done := m.images[name]; done {
			continue
		}
		if err := m.load(ctx, name); err != nil {
			errs = append(errs, err)
			continue
		}
		loaded++
	}
	m.logger.Info(ctx, "assets preloaded", "loaded", loaded, "failed", len(errs))
	return errors.Join(errs...)
}

func (m *Manager) load(ctx context.Context, name string) error {
	path := m.Path(name)
	img, err := m.loader.Load(name, path)
	if err != nil {
		m.images[name] = nil
		m.logger.Warn(ctx, "asset load failed", "asset", name, "path", path, "error", err.Error())
		return logging.WrapError(err, "load %s from %s", name, path)
	}
	m.images[name] = img
	m.logger.Debug(ctx, "asset loaded", "asset", name, "path", path)
	return nil
}

// Image returns the sprite for a logical name, loading it on first use. It
// returns nil when the sprite could not be loaded.
func (m *Manager) Image(name string) canvas.Image {
	if img, done := m.images[name]; done {
		return img
	}
	if m.Path(name) == "" {
		m.images[name] = nil
		return nil
	}
	_ = m.load(context.Background(), name)
	return m.images[name]
}

// Tank returns the tank body sprite for the local player or for others.
func (m *Manager) Tank(isSelf bool) canvas.Image {
	if isSelf {
		return m.Image(SelfTank)
	}
	return m.Image(OtherTank)
}

// Turret returns the turret sprite for the local player or for others.
func (m *Manager) Turret(isSelf bool) canvas.Image {
	if isSelf {
		return m.Image(SelfTurret)
	}
	return m.Image(OtherTurret)
}

// Bullet returns the bullet sprite.
func (m *Manager) Bullet() canvas.Image {
	return m.Image(Bullet)
}

// Tile returns the background tile sprite.
func (m *Manager) Tile() canvas.Image {
	return m.Image(Tile)
}

// Powerup returns the sprite for the named powerup.
func (m *Manager) Powerup(name string) canvas.Image {
	return m.Image(PowerupName(name))
}
