// Package entity defines the transient descriptors the client hands to a
// renderer each frame. Descriptors carry no identity and are never retained.
package entity

import (
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// MaxHealth is the number of health-bar segments a tank shows.
const MaxHealth = 10

// Entity is anything that can draw itself through a Renderer.
type Entity interface {
	Render(r Renderer)
}

// Tank describes one player's tank for a single frame.
type Tank struct {
	IsSelf      bool
	Position    physics.Vector2D
	Orientation float64
	TurretAngle float64
	Name        string
	// Health is expected in 0..MaxHealth. Values outside the range are not
	// clamped.
	Health int
}

// Render implements Entity.
func (t *Tank) Render(r Renderer) {
	r.RenderTank(t)
}

// Bullet describes one bullet in flight.
type Bullet struct {
	Position  physics.Vector2D
	Direction float64
}

// Render implements Entity.
func (b *Bullet) Render(r Renderer) {
	r.RenderBullet(b)
}

// Powerup describes a pickup lying on the map. Name selects its sprite.
type Powerup struct {
	Position physics.Vector2D
	Name     string
}

// Render implements Entity.
func (p *Powerup) Render(r Renderer) {
	r.RenderPowerup(p)
}

// TileRegion is the rectangle a background is tiled over. Min is the top-left
// corner; Max is an exclusive bottom-right bound.
type TileRegion struct {
	Min physics.Vector2D
	Max physics.Vector2D
}

// Render implements Entity.
func (t *TileRegion) Render(r Renderer) {
	r.RenderTiles(t)
}
