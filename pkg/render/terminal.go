package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/opd-ai/go-tanks/pkg/assets"
	"github.com/opd-ai/go-tanks/pkg/canvas"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// Glyph is a sprite for TerminalSurface: a single rune standing in for a
// W x H pixel image. Fill glyphs cover their whole area; others are stamped
// once at their anchor, given as a fraction of the image size.
type Glyph struct {
	Rune    rune
	W, H    int
	Fill    bool
	AnchorX float64
	AnchorY float64
}

// Bounds implements canvas.Image.
func (g *Glyph) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.W, g.H)
}

// TerminalLoader maps logical sprite names to glyphs, so the terminal backend
// needs no image files.
type TerminalLoader struct {
	TileSize float64
}

// Load implements assets.Loader.
func (l TerminalLoader) Load(name, _ string) (canvas.Image, error) {
	kind := assets.Classify(name)
	w, h := assets.Size(kind, int(l.TileSize))

	switch kind {
	case assets.KindUnknown:
		return nil, fmt.Errorf("no glyph for sprite %q", name)
	case assets.KindTile:
		return &Glyph{Rune: '.', W: w, H: h, Fill: true}, nil
	case assets.KindTurret:
		// Stamp the barrel tip so the turret direction is visible.
		return &Glyph{Rune: '+', W: w, H: h, AnchorX: 1, AnchorY: 0.5}, nil
	case assets.KindSelfTank:
		return &Glyph{Rune: '@', W: w, H: h, AnchorX: 0.5, AnchorY: 0.5}, nil
	case assets.KindOtherTank:
		return &Glyph{Rune: 'T', W: w, H: h, AnchorX: 0.5, AnchorY: 0.5}, nil
	case assets.KindBullet:
		return &Glyph{Rune: '*', W: w, H: h, AnchorX: 0.5, AnchorY: 0.5}, nil
	default:
		powerup, _ := assets.SplitPowerup(name)
		r, _ := utf8.DecodeRuneInString(powerup)
		return &Glyph{Rune: unicode.ToUpper(r), W: w, H: h, AnchorX: 0.5, AnchorY: 0.5}, nil
	}
}

// TerminalSurface is a canvas.Surface that rasterizes onto a grid of runes,
// one cell per scale x scale surface pixels.
type TerminalSurface struct {
	canvas.StateStack
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos physics.Vector2D
	out       io.Writer
}

// NewTerminalSurface creates a width x height cell surface writing frames to
// stdout.
func NewTerminalSurface(width, height int, scale float64) *TerminalSurface {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	s := &TerminalSurface{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
		out:    os.Stdout,
	}
	s.Clear()
	return s
}

// SetOutput redirects Present.
func (s *TerminalSurface) SetOutput(w io.Writer) {
	s.out = w
}

// SetCenter sets the surface point shown in the middle of the grid.
func (s *TerminalSurface) SetCenter(pos physics.Vector2D) {
	s.centerPos = pos
}

// toCell converts surface coordinates to a cell, flooring so that negative
// positions land outside the grid.
func (s *TerminalSurface) toCell(x, y float64) (int, int) {
	cx := math.Floor((x-s.centerPos.X)/s.scale + float64(s.width)/2)
	cy := math.Floor((y-s.centerPos.Y)/s.scale + float64(s.height)/2)
	if math.IsNaN(cx) || math.IsNaN(cy) || math.IsInf(cx, 0) || math.IsInf(cy, 0) {
		return -1, -1
	}
	return int(cx), int(cy)
}

func (s *TerminalSurface) set(x, y int, r rune) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.buffer[y][x] = r
	}
}

// Clear blanks the grid and resets the drawing state.
func (s *TerminalSurface) Clear() {
	for y := range s.buffer {
		for x := range s.buffer[y] {
			s.buffer[y][x] = ' '
		}
	}
	s.ResetState()
}

// String returns the grid without a border.
func (s *TerminalSurface) String() string {
	var sb strings.Builder
	for _, row := range s.buffer {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Present writes the grid to the output with a border.
func (s *TerminalSurface) Present() error {
	var sb strings.Builder
	sb.WriteString("\033[H\033[2J")
	sb.WriteString("+" + strings.Repeat("-", s.width) + "+\n")
	for _, row := range s.buffer {
		sb.WriteString("|" + string(row) + "|\n")
	}
	sb.WriteString("+" + strings.Repeat("-", s.width) + "+\n")

	if _, err := io.WriteString(s.out, sb.String()); err != nil {
		return fmt.Errorf("failed to present terminal frame: %w", err)
	}
	return nil
}

// shade picks a rune for a fill color: '+' for mostly green, '-' for mostly
// red, '#' otherwise.
func shade(c color.Color) rune {
	if c == nil {
		return '#'
	}
	r, g, b, _ := c.RGBA()
	switch {
	case g > r && g > b:
		return '+'
	case r > g && r > b:
		return '-'
	default:
		return '#'
	}
}

// fillArea marks every cell touched by the transformed local rectangle.
func (s *TerminalSurface) fillArea(x, y, w, h float64, r rune) {
	t := s.State().Transform
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, corner := range [][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}} {
		px, py := t.Apply(corner[0], corner[1])
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
	}

	x0, y0 := s.toCell(minX, minY)
	// The far edge is exclusive.
	x1, y1 := s.toCell(maxX-1e-9, maxY-1e-9)
	if x0 < 0 && x1 < 0 || y0 < 0 && y1 < 0 {
		return
	}
	for cy := max(y0, 0); cy <= min(y1, s.height-1); cy++ {
		for cx := max(x0, 0); cx <= min(x1, s.width-1); cx++ {
			s.buffer[cy][cx] = r
		}
	}
}

// FillText implements canvas.Surface.
func (s *TerminalSurface) FillText(text string, x, y float64) {
	st := s.State()
	cx, cy := s.toCell(st.Transform.Apply(x, y))
	runes := []rune(text)
	switch st.TextAlign {
	case canvas.AlignCenter:
		cx -= len(runes) / 2
	case canvas.AlignEnd:
		cx -= len(runes)
	}
	for i, r := range runes {
		s.set(cx+i, cy, r)
	}
}

// FillRect implements canvas.Surface.
func (s *TerminalSurface) FillRect(x, y, w, h float64) {
	s.fillArea(x, y, w, h, shade(s.State().FillStyle))
}

// DrawImage implements canvas.Surface. Images that are not glyphs are drawn
// as their bounding box.
func (s *TerminalSurface) DrawImage(img canvas.Image, x, y float64) {
	if img == nil {
		return
	}
	g, ok := img.(*Glyph)
	if !ok {
		b := img.Bounds()
		s.fillArea(x, y, float64(b.Dx()), float64(b.Dy()), '#')
		return
	}
	if g.Fill {
		s.fillArea(x, y, float64(g.W), float64(g.H), g.Rune)
		return
	}
	ax := x + g.AnchorX*float64(g.W)
	ay := y + g.AnchorY*float64(g.H)
	cx, cy := s.toCell(s.State().Transform.Apply(ax, ay))
	s.set(cx, cy, g.Rune)
}
