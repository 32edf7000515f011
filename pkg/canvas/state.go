package canvas

import "image/color"

// DefaultFont is the font of a fresh surface.
var DefaultFont = Font{Family: "sans-serif", Size: 10}

// State is the transform and style a primitive is drawn with.
type State struct {
	Transform Transform
	Font      Font
	FillStyle color.Color
	TextAlign TextAlign
}

// DefaultState returns the state of a fresh surface.
func DefaultState() State {
	return State{
		Transform: Identity(),
		Font:      DefaultFont,
		FillStyle: color.Black,
		TextAlign: AlignStart,
	}
}

// StateStack implements the state half of Surface. Backends embed it and add
// the drawing primitives. The zero value starts at DefaultState.
type StateStack struct {
	current State
	stack   []State
	ready   bool
}

func (s *StateStack) cur() *State {
	if !s.ready {
		s.current = DefaultState()
		s.ready = true
	}
	return &s.current
}

// State returns a copy of the current state.
func (s *StateStack) State() State {
	return *s.cur()
}

// Depth returns the number of saved states.
func (s *StateStack) Depth() int {
	return len(s.stack)
}

// Save implements Surface.
func (s *StateStack) Save() {
	s.stack = append(s.stack, *s.cur())
}

// Restore implements Surface.
func (s *StateStack) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.current = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.ready = true
}

// ResetState drops saved states and returns to DefaultState.
func (s *StateStack) ResetState() {
	s.current = DefaultState()
	s.stack = s.stack[:0]
	s.ready = true
}

// Translate implements Surface.
func (s *StateStack) Translate(x, y float64) {
	c := s.cur()
	c.Transform = c.Transform.Translate(x, y)
}

// Rotate implements Surface.
func (s *StateStack) Rotate(angle float64) {
	c := s.cur()
	c.Transform = c.Transform.Rotate(angle)
}

// SetFont implements Surface.
func (s *StateStack) SetFont(f Font) {
	s.cur().Font = f
}

// SetFillStyle implements Surface.
func (s *StateStack) SetFillStyle(c color.Color) {
	s.cur().FillStyle = c
}

// SetTextAlign implements Surface.
func (s *StateStack) SetTextAlign(a TextAlign) {
	s.cur().TextAlign = a
}
