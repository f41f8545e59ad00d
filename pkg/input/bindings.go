package input

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/lo"
)

// AxisKey contributes Scale times the key's value to an axis.
type AxisKey struct {
	Key   string
	Scale float32
}

// Bindings maps binding names to device key names.
type Bindings struct {
	Actions map[string][]string
	Axes    map[string][]AxisKey
}

// Device is a polled input source. Key names are device specific strings
// such as "space", "mouse_x" or "gamepad_left_y".
type Device interface {
	// KeyDown reports whether a digital key or button is held.
	KeyDown(key string) bool
	// AxisValue returns an analog value and whether key names an analog input.
	AxisValue(key string) (float32, bool)
	// Touches returns the active contacts keyed by finger index.
	Touches() map[int]mgl32.Vec3
}

// Mapper turns device state into Samples, detecting press and release edges.
type Mapper struct {
	bindings    Bindings
	actionNames []string
	held        map[string]bool
	touches     map[int]mgl32.Vec3
}

// NewMapper creates a mapper for bindings.
func NewMapper(bindings Bindings) *Mapper {
	names := lo.Keys(bindings.Actions)
	slices.Sort(names)

	return &Mapper{
		bindings:    bindings,
		actionNames: names,
		held:        make(map[string]bool),
		touches:     make(map[int]mgl32.Vec3),
	}
}

// Poll reads the device once.
func (m *Mapper) Poll(d Device) Sample {
	s := Sample{Axes: make(map[string]float32, len(m.bindings.Axes))}

	for name, keys := range m.bindings.Axes {
		var value float32
		for _, k := range keys {
			if v, ok := d.AxisValue(k.Key); ok {
				value += v * k.Scale
			} else if d.KeyDown(k.Key) {
				value += k.Scale
			}
		}
		s.Axes[name] = value
	}

	for _, name := range m.actionNames {
		down := false
		for _, key := range m.bindings.Actions[name] {
			if d.KeyDown(key) {
				down = true
				break
			}
		}
		switch {
		case down && !m.held[name]:
			s.Pressed = append(s.Pressed, name)
		case !down && m.held[name]:
			s.Released = append(s.Released, name)
		}
		m.held[name] = down
	}

	current := d.Touches()
	for finger, loc := range current {
		if _, ok := m.touches[finger]; !ok {
			s.TouchesStarted = append(s.TouchesStarted, Touch{Finger: finger, Location: loc})
		}
	}
	for finger, loc := range m.touches {
		if _, ok := current[finger]; !ok {
			s.TouchesStopped = append(s.TouchesStopped, Touch{Finger: finger, Location: loc})
		}
	}
	m.touches = make(map[int]mgl32.Vec3, len(current))
	for finger, loc := range current {
		m.touches[finger] = loc
	}

	return s
}
