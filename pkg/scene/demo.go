// pkg/scene/demo.go
package scene

import (
	"math"
	"time"

	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// Demo arena dimensions.
const (
	ArenaWidth  = 1600
	ArenaHeight = 1200

	bulletSpeed = 400
	bulletRange = 500
)

var opponentNames = []string{"alpha", "bravo", "charlie"}

// Demo produces a deterministic arena for running a backend without a game
// server: the local tank circles the middle, opponents orbit around it and
// every tank keeps firing along its turret.
type Demo struct {
	PlayerName string
	Powerups   []string
}

// NewDemo creates a demo arena for the named local player and powerup kinds.
func NewDemo(playerName string, powerups []string) *Demo {
	return &Demo{PlayerName: playerName, Powerups: powerups}
}

// Arena returns the tiled play area.
func (d *Demo) Arena() entity.TileRegion {
	return entity.TileRegion{
		Min: physics.Vector2D{},
		Max: physics.Vector2D{X: ArenaWidth, Y: ArenaHeight},
	}
}

func arenaCenter() physics.Vector2D {
	return physics.Vector2D{X: ArenaWidth / 2, Y: ArenaHeight / 2}
}

// orbit places a tank on a circle around the arena center, facing along its
// direction of travel.
func orbit(radius, phase, speed, t float64) (physics.Vector2D, float64) {
	angle := phase + speed*t
	pos := arenaCenter().Add(physics.FromAngle(angle, radius))
	heading := angle + math.Copysign(math.Pi/2, speed)
	return pos, heading
}

// Frame returns the arena as it looks elapsed time into the demo.
func (d *Demo) Frame(elapsed time.Duration) *Frame {
	t := elapsed.Seconds()
	f := &Frame{Viewport: d.Arena()}

	pos, heading := orbit(300, 0, 0.5, t)
	f.Tanks = append(f.Tanks, entity.Tank{
		IsSelf:      true,
		Position:    pos,
		Orientation: heading,
		TurretAngle: 1.3 * t,
		Name:        d.PlayerName,
		Health:      entity.MaxHealth - int(t)%(entity.MaxHealth+1),
	})

	for i, name := range opponentNames {
		n := float64(i)
		pos, heading := orbit(150+150*n, 2*math.Pi*n/3, -0.3-0.1*n, t)
		f.Tanks = append(f.Tanks, entity.Tank{
			Position:    pos,
			Orientation: heading,
			TurretAngle: heading - math.Pi/2,
			Name:        name,
			Health:      4 + 3*i,
		})
	}

	dist := math.Mod(t*bulletSpeed, bulletRange)
	for _, tank := range f.Tanks {
		f.Bullets = append(f.Bullets, entity.Bullet{
			Position:  tank.Position.Add(physics.FromAngle(tank.TurretAngle, dist)),
			Direction: tank.TurretAngle,
		})
	}

	for k, name := range d.Powerups {
		angle := 2 * math.Pi * float64(k) / float64(len(d.Powerups))
		f.Powerups = append(f.Powerups, entity.Powerup{
			Position: arenaCenter().Add(physics.FromAngle(angle, 450)),
			Name:     name,
		})
	}

	return f
}

var _ Source = (*Demo)(nil)
