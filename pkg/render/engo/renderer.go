// pkg/render/engo/renderer.go
package engo

import (
	"context"
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tanks/pkg/canvas"
	"github.com/opd-ai/go-tanks/pkg/logging"
)

// primitive is one drawn shape, sprite or text run.
type primitive struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// Surface implements canvas.Surface on top of engo's render system. Every
// primitive becomes an entity z-ordered by issue order; Clear removes them
// all before the next frame is drawn.
type Surface struct {
	canvas.StateStack

	renderSystem *common.RenderSystem
	fonts        *FontCache
	logger       *logging.Logger

	primitives []*primitive
	z          float32
}

// NewSurface creates a surface adding entities to renderSystem. A nil system
// keeps the primitives without handing them to engo.
func NewSurface(renderSystem *common.RenderSystem, fonts *FontCache, logger *logging.Logger) *Surface {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Surface{
		renderSystem: renderSystem,
		fonts:        fonts,
		logger:       logger,
	}
}

// Len returns the number of primitives drawn since the last Clear.
func (s *Surface) Len() int {
	return len(s.primitives)
}

// Clear removes every primitive and resets the drawing state.
func (s *Surface) Clear() {
	if s.renderSystem != nil {
		for _, p := range s.primitives {
			s.renderSystem.Remove(p.BasicEntity)
		}
	}
	s.primitives = s.primitives[:0]
	s.z = 0
	s.ResetState()
}

// placement converts a local point under t to an engo position and a
// clockwise rotation in degrees. engo rotates around the top-left corner, so
// the local origin of a primitive maps directly.
func placement(t canvas.Transform, x, y float64) (engo.Point, float32) {
	px, py := t.Apply(x, y)
	deg := t.Angle() * 180 / math.Pi
	return engo.Point{X: float32(px), Y: float32(py)}, float32(deg)
}

func (s *Surface) add(drawable common.Drawable, c color.Color, x, y, w, h float64) *primitive {
	pos, rot := placement(s.State().Transform, x, y)
	p := &primitive{BasicEntity: ecs.NewBasic()}
	p.RenderComponent = common.RenderComponent{
		Drawable: drawable,
		Color:    c,
	}
	p.RenderComponent.SetZIndex(s.z)
	p.SpaceComponent = common.SpaceComponent{
		Position: pos,
		Width:    float32(w),
		Height:   float32(h),
		Rotation: rot,
	}
	s.z++

	if s.renderSystem != nil {
		s.renderSystem.Add(&p.BasicEntity, &p.RenderComponent, &p.SpaceComponent)
	}
	s.primitives = append(s.primitives, p)
	return p
}

// FillRect implements canvas.Surface.
func (s *Surface) FillRect(x, y, w, h float64) {
	s.add(common.Rectangle{}, s.State().FillStyle, x, y, w, h)
}

// DrawImage implements canvas.Surface. Only sprites from Loader can be drawn.
func (s *Surface) DrawImage(img canvas.Image, x, y float64) {
	sprite, ok := img.(*Sprite)
	if !ok || sprite == nil || sprite.Texture == nil {
		return
	}
	s.add(sprite.Texture, color.White, x, y, float64(sprite.Width()), float64(sprite.Height()))
}

// FillText implements canvas.Surface. The font's size is taken as the
// ascent when moving from the baseline to the top-left corner.
func (s *Surface) FillText(text string, x, y float64) {
	if text == "" || s.fonts == nil {
		return
	}
	st := s.State()
	font, err := s.fonts.Font(st.Font.Size)
	if err != nil {
		s.logger.Debug(context.Background(), "font unavailable", "font", st.Font.String(), "error", err.Error())
		return
	}

	width, height, _ := font.TextDimensions(text)
	x -= alignOffset(st.TextAlign, float64(width))
	y -= st.Font.Size
	s.add(common.Text{Font: font, Text: text}, st.FillStyle, x, y, float64(width), float64(height))
}

// alignOffset is how far left of the anchor a run of the given width starts.
func alignOffset(a canvas.TextAlign, width float64) float64 {
	switch a {
	case canvas.AlignCenter:
		return width / 2
	case canvas.AlignEnd:
		return width
	default:
		return 0
	}
}

var _ canvas.Surface = (*Surface)(nil)
