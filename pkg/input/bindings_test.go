package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type fakeDevice struct {
	down    map[string]bool
	axes    map[string]float32
	touches map[int]mgl32.Vec3
}

func (d *fakeDevice) KeyDown(key string) bool { return d.down[key] }

func (d *fakeDevice) AxisValue(key string) (float32, bool) {
	v, ok := d.axes[key]
	return v, ok
}

func (d *fakeDevice) Touches() map[int]mgl32.Vec3 { return d.touches }

func testBindings() Bindings {
	return Bindings{
		Actions: map[string][]string{
			ActionJump: {"space", "gamepad_a"},
		},
		Axes: map[string][]AxisKey{
			AxisMoveForward: {{Key: "w", Scale: 1}, {Key: "s", Scale: -1}, {Key: "gamepad_left_y", Scale: -1}},
			AxisTurn:        {{Key: "mouse_x", Scale: 0.5}},
		},
	}
}

func TestMapper_Axes(t *testing.T) {
	m := NewMapper(testBindings())
	d := &fakeDevice{
		down: map[string]bool{"w": true},
		axes: map[string]float32{"gamepad_left_y": -0.5, "mouse_x": 8},
	}

	s := m.Poll(d)

	if got := s.Axes[AxisMoveForward]; got != 1.5 {
		t.Fatalf("MoveForward = %v, want 1.5", got)
	}
	if got := s.Axes[AxisTurn]; got != 4 {
		t.Fatalf("Turn = %v, want 4", got)
	}
}

func TestMapper_ActionEdges(t *testing.T) {
	m := NewMapper(testBindings())
	d := &fakeDevice{down: map[string]bool{}}

	steps := []struct {
		down         map[string]bool
		wantPressed  int
		wantReleased int
	}{
		{map[string]bool{"space": true}, 1, 0},
		{map[string]bool{"space": true, "gamepad_a": true}, 0, 0},
		{map[string]bool{"gamepad_a": true}, 0, 0},
		{map[string]bool{}, 0, 1},
		{map[string]bool{}, 0, 0},
	}
	for i, step := range steps {
		d.down = step.down
		s := m.Poll(d)
		if len(s.Pressed) != step.wantPressed || len(s.Released) != step.wantReleased {
			t.Fatalf("step %d: pressed=%v released=%v", i, s.Pressed, s.Released)
		}
	}
}

func TestMapper_Touches(t *testing.T) {
	m := NewMapper(testBindings())
	d := &fakeDevice{touches: map[int]mgl32.Vec3{0: {10, 20, 0}}}

	s := m.Poll(d)
	if len(s.TouchesStarted) != 1 || s.TouchesStarted[0].Finger != 0 {
		t.Fatalf("started = %+v", s.TouchesStarted)
	}

	s = m.Poll(d)
	if len(s.TouchesStarted) != 0 || len(s.TouchesStopped) != 0 {
		t.Fatalf("held touch produced events: %+v", s)
	}

	d.touches = nil
	s = m.Poll(d)
	if len(s.TouchesStopped) != 1 || s.TouchesStopped[0].Location != (mgl32.Vec3{10, 20, 0}) {
		t.Fatalf("stopped = %+v", s.TouchesStopped)
	}
}

func TestMapper_DrivesRouter(t *testing.T) {
	m := NewMapper(testBindings())
	pawn := &mockPawn{}
	r := NewRouter(pawn, nil, 45, 45, nil)

	d := &fakeDevice{down: map[string]bool{"space": true, "s": true}}
	r.Dispatch(m.Poll(d), 1.0/60)
	d.down = map[string]bool{}
	r.Dispatch(m.Poll(d), 1.0/60)

	if pawn.jumps != 1 || pawn.stops != 1 {
		t.Fatalf("jumps=%d stops=%d", pawn.jumps, pawn.stops)
	}
	if len(pawn.moves) != 1 || pawn.moves[0].scale != -1 {
		t.Fatalf("moves = %+v", pawn.moves)
	}
}
