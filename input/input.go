// Package input turns raw key events into the logical controls the
// simulation consumes. Raw codes are opaque integers so the package stays
// independent of the windowing library; the host binds its own key codes.
package input

import (
	"sync"
	"sync/atomic"
)

// Action is a bit set of logical controls.
type Action uint32

const (
	MoveLeft Action = 1 << iota
	MoveRight
	Jump
	Attack
)

func (a Action) String() string {
	switch a {
	case MoveLeft:
		return "move_left"
	case MoveRight:
		return "move_right"
	case Jump:
		return "jump"
	case Attack:
		return "attack"
	case 0:
		return "none"
	default:
		return "combined"
	}
}

// Controls is one tick's view of the controls: what is held right now and
// what went down since the previous sample.
type Controls struct {
	Held    Action
	Pressed Action
}

func (c Controls) Down(a Action) bool {
	return c.Held&a != 0
}

func (c Controls) JustPressed(a Action) bool {
	return c.Pressed&a != 0
}

// Axis is -1, 0 or +1 for the horizontal controls. Holding both cancels out.
func (c Controls) Axis() float64 {
	x := 0.0
	if c.Down(MoveLeft) {
		x--
	}
	if c.Down(MoveRight) {
		x++
	}
	return x
}

// Sampler tracks held raw codes. KeyDown/KeyUp may be called from any
// goroutine; Sample is read once per tick and never observes a torn state.
type Sampler struct {
	mu       sync.Mutex
	bindings map[int]Action
	down     map[int]struct{}

	held    atomic.Uint32
	pressed atomic.Uint32
}

func NewSampler() *Sampler {
	return &Sampler{
		bindings: make(map[int]Action),
		down:     make(map[int]struct{}),
	}
}

// Bind maps raw codes to an action. A code can only drive one action; the
// last binding wins.
func (s *Sampler) Bind(a Action, codes ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, code := range codes {
		s.bindings[code] = a
	}
}

func (s *Sampler) KeyDown(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bindings[code]; !ok {
		return
	}
	if _, ok := s.down[code]; ok {
		return
	}
	s.down[code] = struct{}{}
	s.publish()
}

func (s *Sampler) KeyUp(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.down[code]; !ok {
		return
	}
	delete(s.down, code)
	s.publish()
}

// SetHeld replaces the held set wholesale, for hosts that poll key state
// each frame instead of receiving events.
func (s *Sampler) SetHeld(codes []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.down)
	for _, code := range codes {
		if _, ok := s.bindings[code]; ok {
			s.down[code] = struct{}{}
		}
	}
	s.publish()
}

// Reset drops every held code and pending press.
func (s *Sampler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.down)
	s.held.Store(0)
	s.pressed.Store(0)
}

// Sample returns the current controls and clears the pending presses.
func (s *Sampler) Sample() Controls {
	return Controls{
		Held:    Action(s.held.Load()),
		Pressed: Action(s.pressed.Swap(0)),
	}
}

// publish recomputes the held mask; caller holds mu.
func (s *Sampler) publish() {
	var mask Action
	for code := range s.down {
		mask |= s.bindings[code]
	}
	prev := Action(s.held.Swap(uint32(mask)))
	if edges := mask &^ prev; edges != 0 {
		s.pressed.Or(uint32(edges))
	}
}
