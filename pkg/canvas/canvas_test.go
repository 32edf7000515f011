package canvas

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/opd-ai/go-tanks/pkg/logging"
)

const epsilon = 1e-9

func assertPoint(t *testing.T, gotX, gotY, wantX, wantY float64) {
	t.Helper()
	if math.Abs(gotX-wantX) > epsilon || math.Abs(gotY-wantY) > epsilon {
		t.Errorf("got (%v, %v), want (%v, %v)", gotX, gotY, wantX, wantY)
	}
}

func TestTransform_Apply(t *testing.T) {
	tests := []struct {
		name         string
		transform    Transform
		x, y         float64
		wantX, wantY float64
	}{
		{"identity", Identity(), 3, 4, 3, 4},
		{"translate", Identity().Translate(100, 50), -25, -30, 75, 20},
		{"quarter turn", Identity().Rotate(math.Pi / 2), 1, 0, 0, 1},
		{"translate then rotate", Identity().Translate(10, 10).Rotate(math.Pi), -15, -15, 25, 25},
		{"rotate then translate is local", Identity().Rotate(math.Pi / 2).Translate(5, 0), 0, 0, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.transform.Apply(tt.x, tt.y)
			assertPoint(t, x, y, tt.wantX, tt.wantY)
		})
	}
}

func TestTransform_Angle(t *testing.T) {
	tr := Identity().Translate(40, 40).Rotate(0.75).Rotate(0.25)
	if math.Abs(tr.Angle()-1.0) > epsilon {
		t.Errorf("Angle() = %v, want 1.0", tr.Angle())
	}
}

func TestStateStack_ZeroValueStartsAtDefault(t *testing.T) {
	var s StateStack
	if s.State() != DefaultState() {
		t.Errorf("zero StateStack state = %+v, want %+v", s.State(), DefaultState())
	}
}

func TestStateStack_SaveRestoreSymmetry(t *testing.T) {
	var s StateStack
	before := s.State()

	s.Save()
	s.Translate(10, 20)
	s.Rotate(1.2)
	s.SetFont(Font{Family: "Helvetica", Size: 14})
	s.SetFillStyle(color.RGBA{R: 255, A: 255})
	s.SetTextAlign(AlignCenter)
	if s.State() == before {
		t.Fatal("state did not change after mutations")
	}
	s.Restore()

	if s.State() != before {
		t.Errorf("state after restore = %+v, want %+v", s.State(), before)
	}
	if s.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", s.Depth())
	}
}

func TestStateStack_RestoreOnEmptyStackIsNoop(t *testing.T) {
	var s StateStack
	s.Translate(5, 5)
	want := s.State()
	s.Restore()
	if s.State() != want {
		t.Errorf("Restore on empty stack changed state to %+v", s.State())
	}
}

func TestStateStack_Nested(t *testing.T) {
	var s StateStack
	s.Translate(1, 1)
	s.Save()
	s.Translate(1, 1)
	outer := s.State()
	s.Save()
	s.Rotate(math.Pi)
	s.Restore()
	if s.State() != outer {
		t.Error("inner restore did not return to outer state")
	}
	s.Restore()
	x, y := s.State().Transform.Apply(0, 0)
	assertPoint(t, x, y, 1, 1)
}

func TestStateStack_ResetState(t *testing.T) {
	var s StateStack
	s.Save()
	s.Save()
	s.SetTextAlign(AlignEnd)
	s.ResetState()
	if s.Depth() != 0 || s.State() != DefaultState() {
		t.Errorf("ResetState left depth %d state %+v", s.Depth(), s.State())
	}
}

func TestRecorder_RecordsPrimitivesWithState(t *testing.T) {
	r := NewRecorder(nil)
	r.Translate(100, 200)
	r.SetFillStyle(color.White)
	r.FillRect(-25, -42, 5, 4)
	r.SetTextAlign(AlignCenter)
	r.FillText("alvin", 0, -50)
	r.DrawImage(image.Rect(0, 0, 30, 30), -15, -15)
	r.DrawImage(nil, 0, 0)

	ops := r.Ops()
	if len(ops) != 3 {
		t.Fatalf("recorded %d ops, want 3", len(ops))
	}
	if ops[0].Kind != OpFillRect || ops[0].W != 5 || ops[0].H != 4 {
		t.Errorf("unexpected rect op %+v", ops[0])
	}
	if ops[0].State.FillStyle != color.White {
		t.Errorf("rect fill = %v, want white", ops[0].State.FillStyle)
	}
	if ops[1].Text != "alvin" || ops[1].State.TextAlign != AlignCenter {
		t.Errorf("unexpected text op %+v", ops[1])
	}
	if ops[2].W != 30 || ops[2].H != 30 {
		t.Errorf("image op size = %vx%v, want 30x30", ops[2].W, ops[2].H)
	}
	x, y := ops[2].State.Transform.Apply(ops[2].X, ops[2].Y)
	assertPoint(t, x, y, 85, 185)

	if r.Count(OpDrawImage) != 1 || r.Count(OpFillText) != 1 {
		t.Errorf("Count mismatch: images=%d text=%d", r.Count(OpDrawImage), r.Count(OpFillText))
	}

	r.Reset()
	if len(r.Ops()) != 0 {
		t.Error("Reset did not clear ops")
	}
}

func TestRecorder_LogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(logging.New(&buf, slog.LevelDebug))
	r.FillRect(0, 0, 1, 1)
	if !strings.Contains(buf.String(), "fillRect") {
		t.Errorf("expected fillRect in log output, got %q", buf.String())
	}
}

func TestFontString(t *testing.T) {
	if got := (Font{Family: "Helvetica", Size: 14}).String(); got != "14px Helvetica" {
		t.Errorf("Font.String() = %q", got)
	}
}
