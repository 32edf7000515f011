package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/opd-ai/go-tanks/pkg/assets"
	"github.com/opd-ai/go-tanks/pkg/canvas"
	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

const epsilon = 1e-9

// testSprite remembers which path it was loaded from.
type testSprite struct {
	path string
	size int
}

func (s *testSprite) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.size, s.size)
}

func newTestRenderer(t *testing.T, missing ...string) (*Renderer, *canvas.Recorder) {
	t.Helper()
	cfg := config.DefaultConfig()
	skip := make(map[string]bool)
	for _, m := range missing {
		skip[m] = true
	}
	loader := assets.LoaderFunc(func(_, path string) (canvas.Image, error) {
		if skip[path] {
			return nil, errors.New("not found")
		}
		return &testSprite{path: path, size: 30}, nil
	})
	rec := canvas.NewRecorder(nil)
	r, err := New(rec, assets.NewManager(cfg.Assets, loader, nil), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r, rec
}

func spritePath(t *testing.T, op canvas.Op) string {
	t.Helper()
	s, ok := op.Image.(*testSprite)
	if !ok {
		t.Fatalf("expected *testSprite, got %T", op.Image)
	}
	return s.path
}

func opsOfKind(rec *canvas.Recorder, kind canvas.OpKind) []canvas.Op {
	var out []canvas.Op
	for _, op := range rec.Ops() {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func surfacePoint(op canvas.Op) (float64, float64) {
	return op.State.Transform.Apply(op.X, op.Y)
}

func TestNew_RejectsBadStyle(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.RenderConfig)
		want   string
	}{
		{"name color", func(c *config.RenderConfig) { c.NameColor = "blurple" }, "name color"},
		{"health color", func(c *config.RenderConfig) { c.HealthColor = "#12" }, "health color"},
		{"missing color", func(c *config.RenderConfig) { c.HealthMissingColor = "" }, "health missing color"},
		{"tile size", func(c *config.RenderConfig) { c.TileSize = 0 }, "tile size"},
		{"nan tile size", func(c *config.RenderConfig) { c.TileSize = math.NaN() }, "tile size"},
		{"infinite tile size", func(c *config.RenderConfig) { c.TileSize = math.Inf(1) }, "tile size"},
		{"sub-pixel tile size", func(c *config.RenderConfig) { c.TileSize = 1e-300 }, "tile size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			_, err := New(canvas.NewRecorder(nil), nil, cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDrawTank_HealthBar(t *testing.T) {
	green := color.RGBA{0, 128, 0, 255}
	red := color.RGBA{255, 0, 0, 255}

	for _, health := range []int{0, 1, 5, 9, 10, -3, 15} {
		t.Run(fmt.Sprintf("health_%d", health), func(t *testing.T) {
			r, rec := newTestRenderer(t)
			r.DrawTank(false, physics.Vector2D{X: 200, Y: 300}, 0, 0, "other", health)

			rects := opsOfKind(rec, canvas.OpFillRect)
			if len(rects) != HealthSegments {
				t.Fatalf("expected %d segments, got %d", HealthSegments, len(rects))
			}

			for i, op := range rects {
				want := color.Color(red)
				if i < health {
					want = green
				}
				if op.State.FillStyle != want {
					t.Errorf("segment %d: fill %v, want %v", i, op.State.FillStyle, want)
				}
				if op.W != 5 || op.H != 4 {
					t.Errorf("segment %d: size %vx%v, want 5x4", i, op.W, op.H)
				}
				x, y := surfacePoint(op)
				if math.Abs(x-(200-25+5*float64(i))) > epsilon || math.Abs(y-(300-42)) > epsilon {
					t.Errorf("segment %d at (%v, %v)", i, x, y)
				}
			}
		})
	}
}

func TestDrawTank_NameLabel(t *testing.T) {
	r, rec := newTestRenderer(t)
	r.DrawTank(true, physics.Vector2D{X: 50, Y: 60}, 1, 2, "kenneth", 10)

	texts := opsOfKind(rec, canvas.OpFillText)
	if len(texts) != 1 {
		t.Fatalf("expected 1 text op, got %d", len(texts))
	}
	op := texts[0]
	if op.Text != "kenneth" {
		t.Errorf("text = %q, want kenneth", op.Text)
	}
	if op.State.TextAlign != canvas.AlignCenter {
		t.Errorf("align = %v, want center", op.State.TextAlign)
	}
	if op.State.Font != (canvas.Font{Family: "Helvetica", Size: 14}) {
		t.Errorf("font = %v", op.State.Font)
	}
	if op.State.FillStyle != color.Color(color.RGBA{0, 0, 0, 255}) {
		t.Errorf("fill = %v, want black", op.State.FillStyle)
	}
	x, y := surfacePoint(op)
	if x != 50 || y != 10 {
		t.Errorf("label at (%v, %v), want (50, 10)", x, y)
	}
}

func TestDrawTank_BodyAndTurretRotation(t *testing.T) {
	r, rec := newTestRenderer(t)
	r.DrawTank(true, physics.Vector2D{X: 400, Y: 400}, 0.5, 2.0, "me", 10)

	images := opsOfKind(rec, canvas.OpDrawImage)
	if len(images) != 2 {
		t.Fatalf("expected body and turret, got %d images", len(images))
	}

	tests := []struct {
		name  string
		op    canvas.Op
		angle float64
		path  string
	}{
		{"body", images[0], 0.5, "../data/self_tank.png"},
		{"turret", images[1], 2.0, "../data/self_turret.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spritePath(t, tt.op); got != tt.path {
				t.Errorf("sprite %q, want %q", got, tt.path)
			}
			if math.Abs(tt.op.State.Transform.Angle()-tt.angle) > epsilon {
				t.Errorf("rotation %v, want %v", tt.op.State.Transform.Angle(), tt.angle)
			}
			if tt.op.X != TankOriginX || tt.op.Y != TankOriginY {
				t.Errorf("local origin (%v, %v), want (-25, -30)", tt.op.X, tt.op.Y)
			}
			ox, oy := tt.op.State.Transform.Apply(0, 0)
			if math.Abs(ox-400) > epsilon || math.Abs(oy-400) > epsilon {
				t.Errorf("pivot at (%v, %v), want (400, 400)", ox, oy)
			}
		})
	}
}

func TestDrawTank_SelfAndOtherUseDisjointSprites(t *testing.T) {
	r, rec := newTestRenderer(t)
	r.DrawTank(true, physics.Vector2D{}, 0, 0, "me", 10)
	selfOps := opsOfKind(rec, canvas.OpDrawImage)
	rec.Reset()
	r.DrawTank(false, physics.Vector2D{}, 0, 0, "them", 10)
	otherOps := opsOfKind(rec, canvas.OpDrawImage)

	if len(selfOps) != 2 || len(otherOps) != 2 {
		t.Fatalf("expected 2 images each, got %d and %d", len(selfOps), len(otherOps))
	}
	selfPaths := map[string]bool{spritePath(t, selfOps[0]): true, spritePath(t, selfOps[1]): true}
	for _, op := range otherOps {
		if selfPaths[spritePath(t, op)] {
			t.Errorf("sprite %q used for both self and other", spritePath(t, op))
		}
	}
}

func TestDrawBullet_CenteredAndRotated(t *testing.T) {
	r, rec := newTestRenderer(t)
	r.DrawBullet(physics.Vector2D{X: 120, Y: 80}, math.Pi/2)

	images := opsOfKind(rec, canvas.OpDrawImage)
	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
	op := images[0]
	if op.X != -15 || op.Y != -15 {
		t.Errorf("local origin (%v, %v), want (-15, -15)", op.X, op.Y)
	}
	if got := spritePath(t, op); got != "../data/bullet.png" {
		t.Errorf("sprite %q", got)
	}
	// A 30x30 sprite drawn at (-15, -15) is centered on the pivot.
	cx, cy := op.State.Transform.Apply(op.X+op.W/2, op.Y+op.H/2)
	if math.Abs(cx-120) > epsilon || math.Abs(cy-80) > epsilon {
		t.Errorf("sprite center at (%v, %v), want (120, 80)", cx, cy)
	}
	if math.Abs(op.State.Transform.Angle()-math.Pi/2) > epsilon {
		t.Errorf("rotation %v, want pi/2", op.State.Transform.Angle())
	}
}

func TestDrawPowerup_SelectsSpriteByName(t *testing.T) {
	r, rec := newTestRenderer(t)
	r.DrawPowerup(physics.Vector2D{X: 10, Y: 20}, "health")
	r.DrawPowerup(physics.Vector2D{X: 10, Y: 20}, "shotgun")

	images := opsOfKind(rec, canvas.OpDrawImage)
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	health := spritePath(t, images[0])
	if !strings.Contains(health, "health") {
		t.Errorf("health powerup path %q does not contain 'health'", health)
	}
	if health == spritePath(t, images[1]) {
		t.Error("different powerups resolved to the same sprite")
	}
	x, y := surfacePoint(images[0])
	if x != -5 || y != 5 {
		t.Errorf("powerup origin (%v, %v), want (-5, 5)", x, y)
	}
	if images[0].State.Transform.Angle() != 0 {
		t.Error("powerups are never rotated")
	}
}

func TestDrawTiles_ExclusiveBounds(t *testing.T) {
	r, rec := newTestRenderer(t)
	r.DrawTiles(physics.Vector2D{X: 0, Y: 0}, physics.Vector2D{X: 250, Y: 250})

	images := opsOfKind(rec, canvas.OpDrawImage)
	if len(images) != 9 {
		t.Fatalf("expected 9 tiles, got %d", len(images))
	}

	seen := make(map[[2]float64]bool)
	for _, op := range images {
		x, y := surfacePoint(op)
		if x >= 250 || y >= 250 {
			t.Errorf("tile drawn at (%v, %v), beyond the edge", x, y)
		}
		seen[[2]float64{x, y}] = true
	}
	for _, x := range []float64{0, 100, 200} {
		for _, y := range []float64{0, 100, 200} {
			if !seen[[2]float64{x, y}] {
				t.Errorf("missing tile at (%v, %v)", x, y)
			}
		}
	}
}

func TestDrawTiles_RegionShapes(t *testing.T) {
	tests := []struct {
		name  string
		min   physics.Vector2D
		max   physics.Vector2D
		tiles int
	}{
		{"exact multiple", physics.Vector2D{}, physics.Vector2D{X: 300, Y: 200}, 6},
		{"offset start", physics.Vector2D{X: -50, Y: -50}, physics.Vector2D{X: 50, Y: 50}, 1},
		{"empty region", physics.Vector2D{X: 100, Y: 100}, physics.Vector2D{X: 100, Y: 300}, 0},
		{"inverted region", physics.Vector2D{X: 300, Y: 300}, physics.Vector2D{}, 0},
		{"nan start", physics.Vector2D{X: math.NaN()}, physics.Vector2D{X: 300, Y: 300}, 0},
		{"infinite edge", physics.Vector2D{}, physics.Vector2D{X: math.Inf(1), Y: 100}, 0},
		{"far from origin", physics.Vector2D{X: 1e19}, physics.Vector2D{X: 1e19 + 102400, Y: 100}, 1024},
		{"extent overflows", physics.Vector2D{X: -math.MaxFloat64}, physics.Vector2D{X: math.MaxFloat64, Y: 100}, MaxTilesPerAxis},
		{"capped row", physics.Vector2D{}, physics.Vector2D{X: 1e9, Y: 100}, MaxTilesPerAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rec := newTestRenderer(t)
			r.DrawTiles(tt.min, tt.max)
			if got := rec.Count(canvas.OpDrawImage); got != tt.tiles {
				t.Errorf("expected %d tiles, got %d", tt.tiles, got)
			}
		})
	}
}

func TestTileCount(t *testing.T) {
	tests := []struct {
		name             string
		start, end, step float64
		want             int
	}{
		{"whole tiles", 0, 300, 100, 3},
		{"partial tile", 0, 250, 100, 3},
		{"empty", 50, 50, 100, 0},
		{"inverted", 100, 0, 100, 0},
		{"tiny step", 0, 1e6, 1, MaxTilesPerAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tileCount(tt.start, tt.end, tt.step); got != tt.want {
				t.Errorf("tileCount(%v, %v, %v) = %d, want %d", tt.start, tt.end, tt.step, got, tt.want)
			}
		})
	}
}

func TestDrawCalls_LeaveSurfaceStateUnchanged(t *testing.T) {
	calls := []struct {
		name string
		draw func(r *Renderer)
	}{
		{"tank", func(r *Renderer) { r.DrawTank(true, physics.Vector2D{X: 5, Y: 6}, 1, 2, "a", 4) }},
		{"bullet", func(r *Renderer) { r.DrawBullet(physics.Vector2D{X: 5, Y: 6}, 3) }},
		{"powerup", func(r *Renderer) { r.DrawPowerup(physics.Vector2D{X: 5, Y: 6}, "shield") }},
		{"tiles", func(r *Renderer) { r.DrawTiles(physics.Vector2D{}, physics.Vector2D{X: 300, Y: 300}) }},
		{"tank at nan", func(r *Renderer) { r.DrawTank(false, physics.Vector2D{X: math.NaN()}, 0, 0, "", 0) }},
	}

	for _, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			r, rec := newTestRenderer(t)
			rec.Translate(7, 9)
			rec.Rotate(0.3)
			rec.SetFillStyle(color.White)
			rec.SetTextAlign(canvas.AlignEnd)
			rec.SetFont(canvas.Font{Family: "Courier", Size: 9})
			before := rec.State()
			depth := rec.Depth()

			tt.draw(r)

			if rec.State() != before {
				t.Errorf("state changed: before %+v, after %+v", before, rec.State())
			}
			if rec.Depth() != depth {
				t.Errorf("stack depth %d, want %d", rec.Depth(), depth)
			}
			if len(rec.Ops()) == 0 {
				t.Error("expected at least one primitive")
			}
		})
	}
}

func TestMissingSpritesAreSkipped(t *testing.T) {
	r, rec := newTestRenderer(t, "../data/other_tank.png", "../data/tile.png", "../data/health.png")

	r.DrawTank(false, physics.Vector2D{}, 0, 0, "ghost", 3)
	if got := rec.Count(canvas.OpDrawImage); got != 1 {
		t.Errorf("expected only the turret, got %d images", got)
	}
	if got := rec.Count(canvas.OpFillRect); got != HealthSegments {
		t.Errorf("health bar should still draw, got %d rects", got)
	}

	rec.Reset()
	r.DrawTiles(physics.Vector2D{}, physics.Vector2D{X: 500, Y: 500})
	r.DrawPowerup(physics.Vector2D{}, "health")
	if len(rec.Ops()) != 0 {
		t.Errorf("missing sprites should draw nothing, got %d ops", len(rec.Ops()))
	}
	if rec.Depth() != 0 {
		t.Errorf("unbalanced save/restore, depth %d", rec.Depth())
	}
}

func TestEntityRendererDelegates(t *testing.T) {
	r, rec := newTestRenderer(t)

	r.RenderTank(&entity.Tank{Position: physics.Vector2D{X: 1, Y: 1}, Name: "x", Health: 2})
	r.RenderBullet(&entity.Bullet{Position: physics.Vector2D{X: 2, Y: 2}})
	r.RenderPowerup(&entity.Powerup{Position: physics.Vector2D{X: 3, Y: 3}, Name: "health"})
	r.RenderTiles(&entity.TileRegion{Max: physics.Vector2D{X: 100, Y: 100}})

	// tank: 1 text + 10 rects + 2 images; bullet 1; powerup 1; tiles 1
	if got := len(rec.Ops()); got != 16 {
		t.Errorf("expected 16 primitives, got %d", got)
	}

	rec.Reset()
	r.RenderTank(nil)
	r.RenderBullet(nil)
	r.RenderPowerup(nil)
	r.RenderTiles(nil)
	if len(rec.Ops()) != 0 {
		t.Error("nil descriptors should draw nothing")
	}
}
