// pkg/render/renderer.go
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/opd-ai/go-tanks/pkg/assets"
	"github.com/opd-ai/go-tanks/pkg/canvas"
	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// Sprite geometry, in surface pixels relative to the entity's position.
const (
	NameOffsetY = -50

	HealthSegments      = entity.MaxHealth
	HealthBarX          = -25
	HealthBarY          = -42
	HealthSegmentWidth  = 5
	HealthSegmentHeight = 4

	// Tank bodies and turrets are 50x60 with the pivot 25px from the left
	// and 30px from the top.
	TankOriginX = -25
	TankOriginY = -30

	// Bullets and powerups are nominally 30x30 and drawn centered.
	SpriteHalfSize = 15

	// MaxTilesPerAxis bounds a single DrawTiles call. Tiles past it are not
	// drawn.
	MaxTilesPerAxis = 4096
)

// Style is the resolved, immutable form of the visual configuration.
type Style struct {
	NameFont           canvas.Font
	NameColor          color.Color
	HealthColor        color.Color
	HealthMissingColor color.Color
	TileSize           float64
}

// NewStyle resolves colors and font from cfg.
func NewStyle(cfg *config.RenderConfig) (Style, error) {
	nameColor, err := config.ParseColor(cfg.NameColor)
	if err != nil {
		return Style{}, fmt.Errorf("name color: %w", err)
	}
	healthColor, err := config.ParseColor(cfg.HealthColor)
	if err != nil {
		return Style{}, fmt.Errorf("health color: %w", err)
	}
	missingColor, err := config.ParseColor(cfg.HealthMissingColor)
	if err != nil {
		return Style{}, fmt.Errorf("health missing color: %w", err)
	}
	if !(cfg.TileSize >= 1) || math.IsInf(cfg.TileSize, 0) {
		return Style{}, fmt.Errorf("tile size must be a finite number of at least 1, got %v", cfg.TileSize)
	}

	return Style{
		NameFont:           canvas.Font{Family: cfg.NameFont.Family, Size: cfg.NameFont.Size},
		NameColor:          nameColor,
		HealthColor:        healthColor,
		HealthMissingColor: missingColor,
		TileSize:           cfg.TileSize,
	}, nil
}

// Renderer paints game entities onto a borrowed surface. Every draw call
// brackets its state changes in Save/Restore, so the surface's transform and
// style are unchanged afterwards. Drawing never fails: sprites that did not
// load are skipped and non-finite coordinates simply produce nothing visible.
type Renderer struct {
	surface canvas.Surface
	assets  *assets.Manager
	style   Style
}

// New creates a Renderer drawing onto surface with sprites from assets.
func New(surface canvas.Surface, assets *assets.Manager, cfg *config.RenderConfig) (*Renderer, error) {
	style, err := NewStyle(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve render style: %w", err)
	}
	return &Renderer{
		surface: surface,
		assets:  assets,
		style:   style,
	}, nil
}

// Style returns the resolved style.
func (r *Renderer) Style() Style {
	return r.style
}

// DrawTank draws a tank centered at coords: the player name above it, a
// ten-segment health bar, the body rotated by orientation and the turret
// rotated by turretAngle. isSelf selects the local player's sprites.
func (r *Renderer) DrawTank(isSelf bool, coords physics.Vector2D, orientation, turretAngle float64, name string, health int) {
	s := r.surface

	s.Save()
	s.Translate(coords.X, coords.Y)
	s.SetTextAlign(canvas.AlignCenter)
	s.SetFont(r.style.NameFont)
	s.SetFillStyle(r.style.NameColor)
	s.FillText(name, 0, NameOffsetY)
	s.Restore()

	s.Save()
	s.Translate(coords.X, coords.Y)
	for i := 0; i < HealthSegments; i++ {
		if i < health {
			s.SetFillStyle(r.style.HealthColor)
		} else {
			s.SetFillStyle(r.style.HealthMissingColor)
		}
		s.FillRect(HealthBarX+HealthSegmentWidth*float64(i), HealthBarY, HealthSegmentWidth, HealthSegmentHeight)
	}
	s.Restore()

	r.drawRotated(r.assets.Tank(isSelf), coords, orientation, TankOriginX, TankOriginY)
	r.drawRotated(r.assets.Turret(isSelf), coords, turretAngle, TankOriginX, TankOriginY)
}

// DrawBullet draws a bullet centered at coords, rotated by direction.
func (r *Renderer) DrawBullet(coords physics.Vector2D, direction float64) {
	r.drawRotated(r.assets.Bullet(), coords, direction, -SpriteHalfSize, -SpriteHalfSize)
}

// DrawPowerup draws the sprite of the named powerup centered at coords.
func (r *Renderer) DrawPowerup(coords physics.Vector2D, name string) {
	s := r.surface
	s.Save()
	s.Translate(coords.X, coords.Y)
	if img := r.assets.Powerup(name); img != nil {
		s.DrawImage(img, -SpriteHalfSize, -SpriteHalfSize)
	}
	s.Restore()
}

// DrawTiles tiles the background sprite from coords towards edges in
// TileSize steps. Both bounds are exclusive: a tile starts only strictly
// before edges, and a region that is not a whole number of tiles is left
// uncovered by up to one tile on the right and bottom. Non-finite bounds
// draw nothing, and at most MaxTilesPerAxis tiles are drawn along each axis.
func (r *Renderer) DrawTiles(coords, edges physics.Vector2D) {
	s := r.surface
	s.Save()
	if tile := r.assets.Tile(); tile != nil && coords.IsFinite() && edges.IsFinite() {
		step := r.style.TileSize
		nx := tileCount(coords.X, edges.X, step)
		ny := tileCount(coords.Y, edges.Y, step)
		// Positions are computed from the index, so the loop ends even when
		// step is below the float spacing at the coordinates.
		for i := 0; i < nx; i++ {
			x := coords.X + float64(i)*step
			for j := 0; j < ny; j++ {
				s.DrawImage(tile, x, coords.Y+float64(j)*step)
			}
		}
	}
	s.Restore()
}

// tileCount is the number of step-sized tiles starting before end, capped at
// MaxTilesPerAxis.
func tileCount(start, end, step float64) int {
	n := math.Ceil((end - start) / step)
	switch {
	case !(n > 0):
		return 0
	case n > MaxTilesPerAxis:
		return MaxTilesPerAxis
	default:
		return int(n)
	}
}

func (r *Renderer) drawRotated(img canvas.Image, coords physics.Vector2D, angle, x, y float64) {
	s := r.surface
	s.Save()
	s.Translate(coords.X, coords.Y)
	s.Rotate(angle)
	if img != nil {
		s.DrawImage(img, x, y)
	}
	s.Restore()
}

// RenderTank implements entity.Renderer.
func (r *Renderer) RenderTank(tank *entity.Tank) {
	if tank == nil {
		return
	}
	r.DrawTank(tank.IsSelf, tank.Position, tank.Orientation, tank.TurretAngle, tank.Name, tank.Health)
}

// RenderBullet implements entity.Renderer.
func (r *Renderer) RenderBullet(bullet *entity.Bullet) {
	if bullet == nil {
		return
	}
	r.DrawBullet(bullet.Position, bullet.Direction)
}

// RenderPowerup implements entity.Renderer.
func (r *Renderer) RenderPowerup(powerup *entity.Powerup) {
	if powerup == nil {
		return
	}
	r.DrawPowerup(powerup.Position, powerup.Name)
}

// RenderTiles implements entity.Renderer.
func (r *Renderer) RenderTiles(region *entity.TileRegion) {
	if region == nil {
		return
	}
	r.DrawTiles(region.Min, region.Max)
}

var _ entity.Renderer = (*Renderer)(nil)
