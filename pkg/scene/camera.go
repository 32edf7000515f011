// pkg/scene/camera.go
package scene

import (
	"math"

	"github.com/opd-ai/go-tanks/pkg/canvas"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// DefaultFollowSpeed is the fraction of the remaining distance the camera
// closes per second while smoothing.
const DefaultFollowSpeed = 2.0

// Camera follows a target point, usually the local player's tank.
type Camera struct {
	target    physics.Vector2D
	targetSet bool
	placed    bool

	followSpeed float64
	smoothing   bool

	currentPos physics.Vector2D
}

// NewCamera creates a smoothing camera at the origin.
func NewCamera() *Camera {
	return &Camera{
		followSpeed: DefaultFollowSpeed,
		smoothing:   true,
	}
}

// Update moves the camera dt seconds towards its target.
func (c *Camera) Update(dt float64) {
	if !c.targetSet {
		return
	}
	if !c.smoothing {
		c.currentPos = c.target
		return
	}

	step := math.Min(c.followSpeed*dt, 1)
	if step <= 0 || math.IsNaN(step) {
		return
	}
	c.currentPos = c.currentPos.Add(c.target.Sub(c.currentPos).Scale(step))
}

// SetTarget sets the point to follow. The first target is adopted
// immediately; later ones are approached by Update.
func (c *Camera) SetTarget(target physics.Vector2D) {
	if !target.IsFinite() {
		return
	}
	c.target = target
	c.targetSet = true

	if !c.smoothing || !c.placed {
		c.currentPos = target
		c.placed = true
	}
}

// ClearTarget stops following. The camera stays where it is.
func (c *Camera) ClearTarget() {
	c.targetSet = false
}

// SetFollowSpeed sets the smoothing rate.
func (c *Camera) SetFollowSpeed(speed float64) {
	c.followSpeed = speed
}

// FollowSpeed returns the smoothing rate.
func (c *Camera) FollowSpeed() float64 {
	return c.followSpeed
}

// EnableSmoothing enables or disables smoothing.
func (c *Camera) EnableSmoothing(enabled bool) {
	c.smoothing = enabled
}

// IsSmoothing reports whether smoothing is enabled.
func (c *Camera) IsSmoothing() bool {
	return c.smoothing
}

// Position returns the point currently shown at the screen center.
func (c *Camera) Position() physics.Vector2D {
	return c.currentPos
}

// Apply translates s so that the camera position lands in the middle of a
// width x height screen. Callers bracket it with Save and Restore.
func (c *Camera) Apply(s canvas.Surface, width, height float64) {
	s.Translate(width/2-c.currentPos.X, height/2-c.currentPos.Y)
}

// WorldToScreen converts a world point to screen coordinates.
func (c *Camera) WorldToScreen(world physics.Vector2D, width, height float64) physics.Vector2D {
	return physics.Vector2D{
		X: world.X - c.currentPos.X + width/2,
		Y: world.Y - c.currentPos.Y + height/2,
	}
}

// ScreenToWorld converts a screen point to world coordinates.
func (c *Camera) ScreenToWorld(screen physics.Vector2D, width, height float64) physics.Vector2D {
	return physics.Vector2D{
		X: screen.X - width/2 + c.currentPos.X,
		Y: screen.Y - height/2 + c.currentPos.Y,
	}
}
