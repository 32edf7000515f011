// Package canvas defines the 2D drawing surface the renderer paints on: an
// immediate-mode context with a save/restore state stack, affine transforms,
// fill styles and image blits, in the manner of an HTML5 canvas context.
package canvas

import (
	"fmt"
	"image"
	"image/color"
)

// Image is a drawable bitmap. *ebiten.Image satisfies it directly; other
// backends wrap their texture types.
type Image interface {
	Bounds() image.Rectangle
}

// TextAlign selects the horizontal anchor of FillText.
type TextAlign int

const (
	AlignStart TextAlign = iota
	AlignCenter
	AlignEnd
)

// String implements fmt.Stringer.
func (a TextAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// Font names a face by family and pixel size.
type Font struct {
	Family string
	Size   float64
}

// String renders the font in CSS shorthand, e.g. "14px Helvetica".
func (f Font) String() string {
	return fmt.Sprintf("%gpx %s", f.Size, f.Family)
}

// Surface is a borrowed 2D drawing context. Implementations are not safe for
// concurrent use.
type Surface interface {
	// Save pushes the current transform and style onto the state stack.
	Save()
	// Restore pops the state stack. It is a no-op when the stack is empty.
	Restore()

	Translate(x, y float64)
	Rotate(angle float64)
	SetFont(f Font)
	SetFillStyle(c color.Color)
	SetTextAlign(a TextAlign)

	// FillText draws text with its baseline at (x, y) in local coordinates.
	FillText(text string, x, y float64)
	FillRect(x, y, w, h float64)
	// DrawImage draws img with its top-left corner at (x, y). A nil img is
	// ignored.
	DrawImage(img Image, x, y float64)
}
