// Package raster draws frames into an in-memory image with gg, for headless
// snapshots. Transforms and saved states are kept by gg's own context.
package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/opd-ai/go-tanks/pkg/canvas"
	"github.com/opd-ai/go-tanks/pkg/logging"
	"github.com/opd-ai/go-tanks/pkg/render/fonts"
)

// Surface implements canvas.Surface over a gg.Context. The embedded
// StateStack tracks fill style, font and alignment; every Save, Restore,
// Translate and Rotate is mirrored onto the context, whose matrix places
// the primitives.
type Surface struct {
	canvas.StateStack

	dc     *gg.Context
	fonts  *fonts.Cache
	logger *logging.Logger
}

// NewSurface creates a width x height surface. Text is skipped when fonts is
// nil.
func NewSurface(width, height int, fc *fonts.Cache, logger *logging.Logger) *Surface {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Surface{
		dc:     gg.NewContext(width, height),
		fonts:  fc,
		logger: logger,
	}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.dc.Width()
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.dc.Height()
}

// Image returns the drawn frame.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the drawn frame to path.
func (s *Surface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Clear fills the whole surface with bg and drops all saved state.
func (s *Surface) Clear(bg color.Color) {
	for s.Depth() > 0 {
		s.Restore()
	}
	s.ResetState()
	s.dc.Identity()
	s.dc.SetColor(bg)
	s.dc.Clear()
}

// Save implements canvas.Surface.
func (s *Surface) Save() {
	s.StateStack.Save()
	s.dc.Push()
}

// Restore implements canvas.Surface.
func (s *Surface) Restore() {
	if s.Depth() == 0 {
		return
	}
	s.StateStack.Restore()
	s.dc.Pop()
}

// Translate implements canvas.Surface.
func (s *Surface) Translate(x, y float64) {
	s.StateStack.Translate(x, y)
	s.dc.Translate(x, y)
}

// Rotate implements canvas.Surface.
func (s *Surface) Rotate(angle float64) {
	s.StateStack.Rotate(angle)
	s.dc.Rotate(angle)
}

// TransformPoint maps local (x, y) to surface pixels with the context's
// current matrix.
func (s *Surface) TransformPoint(x, y float64) (float64, float64) {
	return s.dc.TransformPoint(x, y)
}

// FillRect implements canvas.Surface.
func (s *Surface) FillRect(x, y, w, h float64) {
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.SetColor(s.State().FillStyle)
	s.dc.Fill()
}

// DrawImage implements canvas.Surface. Only image.Image sources are drawn.
func (s *Surface) DrawImage(img canvas.Image, x, y float64) {
	src, ok := img.(image.Image)
	if !ok || src == nil {
		return
	}
	// gg positions images on whole pixels; fold the fraction into the matrix.
	s.dc.Push()
	s.dc.Translate(x, y)
	s.dc.DrawImage(src, 0, 0)
	s.dc.Pop()
}

// FillText implements canvas.Surface.
func (s *Surface) FillText(str string, x, y float64) {
	if s.fonts == nil || str == "" {
		return
	}
	st := s.State()
	face, err := s.fonts.Face(st.Font.Size)
	if err != nil {
		s.logger.Debug(context.Background(), "font unavailable", "font", st.Font.String(), "error", err.Error())
		return
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(st.FillStyle)
	s.dc.DrawStringAnchored(str, x, y, anchorX(st.TextAlign), 0)
}

// anchorX is the fraction of the text width left of the anchor point.
func anchorX(a canvas.TextAlign) float64 {
	switch a {
	case canvas.AlignCenter:
		return 0.5
	case canvas.AlignEnd:
		return 1
	default:
		return 0
	}
}

var _ canvas.Surface = (*Surface)(nil)
