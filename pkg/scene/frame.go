// Package scene assembles a frame of entity descriptors and draws it in
// painter's order through an entity.Renderer.
package scene

import (
	"time"

	"github.com/opd-ai/go-tanks/pkg/canvas"
	"github.com/opd-ai/go-tanks/pkg/entity"
)

// Source supplies the frame to show a given time after start.
type Source interface {
	Frame(elapsed time.Duration) *Frame
}

// Frame is everything visible in one frame.
type Frame struct {
	Viewport entity.TileRegion
	Tanks    []entity.Tank
	Bullets  []entity.Bullet
	Powerups []entity.Powerup
}

// Self returns the local player's tank, or nil when it is not in the frame.
func (f *Frame) Self() *entity.Tank {
	for i := range f.Tanks {
		if f.Tanks[i].IsSelf {
			return &f.Tanks[i]
		}
	}
	return nil
}

// Compose draws f back to front: background tiles, powerups, bullets, other
// players' tanks, then the local player's tank on top.
func Compose(r entity.Renderer, f *Frame) {
	if f == nil {
		return
	}

	f.Viewport.Render(r)
	for i := range f.Powerups {
		f.Powerups[i].Render(r)
	}
	for i := range f.Bullets {
		f.Bullets[i].Render(r)
	}
	for i := range f.Tanks {
		if !f.Tanks[i].IsSelf {
			f.Tanks[i].Render(r)
		}
	}
	for i := range f.Tanks {
		if f.Tanks[i].IsSelf {
			f.Tanks[i].Render(r)
		}
	}
}

// View binds a renderer to the surface it draws on and an optional camera.
type View struct {
	Surface  canvas.Surface
	Renderer entity.Renderer
	Camera   *Camera
	Width    float64
	Height   float64
}

// Draw advances the camera by dt seconds towards the local player's tank and
// composes f under the camera translation.
func (v *View) Draw(f *Frame, dt float64) {
	if f == nil {
		return
	}

	v.Surface.Save()
	if v.Camera != nil {
		if self := f.Self(); self != nil {
			v.Camera.SetTarget(self.Position)
		}
		v.Camera.Update(dt)
		v.Camera.Apply(v.Surface, v.Width, v.Height)
	}
	Compose(v.Renderer, f)
	v.Surface.Restore()
}
