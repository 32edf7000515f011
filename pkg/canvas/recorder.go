package canvas

import (
	"context"

	"github.com/opd-ai/go-tanks/pkg/logging"
)

// OpKind identifies a recorded primitive.
type OpKind int

const (
	OpFillText OpKind = iota
	OpFillRect
	OpDrawImage
)

// String implements fmt.Stringer.
func (k OpKind) String() string {
	switch k {
	case OpFillText:
		return "fillText"
	case OpFillRect:
		return "fillRect"
	case OpDrawImage:
		return "drawImage"
	default:
		return "unknown"
	}
}

// Op is one recorded primitive together with the state it was issued under.
type Op struct {
	Kind  OpKind
	State State
	X, Y  float64
	W, H  float64
	Text  string
	Image Image
}

// Recorder is a Surface that draws nothing and records every primitive. It
// backs headless runs and tests.
type Recorder struct {
	StateStack
	ops    []Op
	logger *logging.Logger
}

// NewRecorder creates an empty Recorder. A nil logger discards output.
func NewRecorder(logger *logging.Logger) *Recorder {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Recorder{logger: logger}
}

// Ops returns the primitives recorded since the last Reset.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Count returns how many primitives of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets recorded primitives. The state stack is left alone.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

func (r *Recorder) record(op Op) {
	op.State = r.State()
	r.ops = append(r.ops, op)
	r.logger.Debug(context.Background(), "surface primitive",
		"op", op.Kind.String(),
		"x", op.X,
		"y", op.Y,
		"depth", r.Depth(),
	)
}

// FillText implements Surface.
func (r *Recorder) FillText(text string, x, y float64) {
	r.record(Op{Kind: OpFillText, X: x, Y: y, Text: text})
}

// FillRect implements Surface.
func (r *Recorder) FillRect(x, y, w, h float64) {
	r.record(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h})
}

// DrawImage implements Surface.
func (r *Recorder) DrawImage(img Image, x, y float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	r.record(Op{
		Kind:  OpDrawImage,
		X:     x,
		Y:     y,
		W:     float64(b.Dx()),
		H:     float64(b.Dy()),
		Image: img,
	})
}
