// Package ebiten draws on ebiten images. The surface is retargeted to the
// screen at the start of every Draw.
package ebiten

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/opd-ai/go-tanks/pkg/canvas"
	"github.com/opd-ai/go-tanks/pkg/logging"
)

// Surface implements canvas.Surface over an *ebiten.Image.
type Surface struct {
	canvas.StateStack

	target  *ebiten.Image
	faces   *FaceCache
	logger  *logging.Logger
	fillImg *ebiten.Image
}

// NewSurface creates a surface without a target. Primitives are dropped
// until SetTarget is called.
func NewSurface(faces *FaceCache, logger *logging.Logger) *Surface {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Surface{faces: faces, logger: logger}
}

// SetTarget directs drawing to dst and resets the drawing state.
func (s *Surface) SetTarget(dst *ebiten.Image) {
	s.target = dst
	s.ResetState()
}

// toGeoM converts a canvas transform to ebiten's matrix layout.
func toGeoM(t canvas.Transform) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, t.A)
	g.SetElement(0, 1, t.C)
	g.SetElement(0, 2, t.E)
	g.SetElement(1, 0, t.B)
	g.SetElement(1, 1, t.D)
	g.SetElement(1, 2, t.F)
	return g
}

// local builds draw options placing a primitive at local (x, y).
func (s *Surface) local(x, y float64) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(toGeoM(s.State().Transform))
	op.Filter = ebiten.FilterLinear
	return op
}

func (s *Surface) pixel() *ebiten.Image {
	if s.fillImg == nil {
		s.fillImg = ebiten.NewImage(1, 1)
		s.fillImg.Fill(color.White)
	}
	return s.fillImg
}

// FillRect implements canvas.Surface.
func (s *Surface) FillRect(x, y, w, h float64) {
	if s.target == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(toGeoM(s.State().Transform))
	op.ColorScale.ScaleWithColor(s.State().FillStyle)
	s.target.DrawImage(s.pixel(), op)
}

// DrawImage implements canvas.Surface. Only *ebiten.Image sources are drawn.
func (s *Surface) DrawImage(img canvas.Image, x, y float64) {
	src, ok := img.(*ebiten.Image)
	if !ok || src == nil || s.target == nil {
		return
	}
	s.target.DrawImage(src, s.local(x, y))
}

// FillText implements canvas.Surface.
func (s *Surface) FillText(str string, x, y float64) {
	if s.target == nil || s.faces == nil || str == "" {
		return
	}
	st := s.State()
	face, err := s.faces.TextFace(st.Font.Size)
	if err != nil {
		s.logger.Debug(context.Background(), "font unavailable", "font", st.Font.String(), "error", err.Error())
		return
	}

	// text.Draw places the top of the line box at the origin; lift it so
	// (x, y) is on the baseline.
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.GeoM.Concat(toGeoM(st.Transform))
	op.ColorScale.ScaleWithColor(st.FillStyle)
	op.Filter = ebiten.FilterLinear
	op.PrimaryAlign = primaryAlign(st.TextAlign)
	text.Draw(s.target, str, face, op)
}

// primaryAlign maps a canvas text alignment to ebiten's.
func primaryAlign(a canvas.TextAlign) text.Align {
	switch a {
	case canvas.AlignCenter:
		return text.AlignCenter
	case canvas.AlignEnd:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

var _ canvas.Surface = (*Surface)(nil)
