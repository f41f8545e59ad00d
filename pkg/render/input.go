package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-footik/internal/config"
	"github.com/leterax/go-footik/internal/openglhelper"
)

// GLFWDevice reads keyboard, mouse and the first gamepad from a window. Call
// BeginFrame once per frame before the state is polled.
type GLFWDevice struct {
	window *openglhelper.Window
	cfg    config.InputConfig

	lastX, lastY float64
	firstMouse   bool
	mouseDX      float32
	mouseDY      float32
	gamepad      *glfw.GamepadState
	touches      map[int]mgl32.Vec3
}

// NewGLFWDevice creates a device bound to window.
func NewGLFWDevice(window *openglhelper.Window, cfg config.InputConfig) *GLFWDevice {
	return &GLFWDevice{
		window:     window,
		cfg:        cfg,
		firstMouse: true,
		touches:    make(map[int]mgl32.Vec3),
	}
}

// BeginFrame snapshots the cursor movement and gamepad state for this frame.
func (d *GLFWDevice) BeginFrame() {
	x, y := d.window.CursorPos()
	if d.firstMouse || !d.window.IsMouseCaptured() {
		d.lastX, d.lastY = x, y
		d.firstMouse = false
	}
	d.mouseDX = float32(x-d.lastX) * d.cfg.MouseSensitivity
	d.mouseDY = float32(y-d.lastY) * d.cfg.MouseSensitivity
	d.lastX, d.lastY = x, y

	d.gamepad = nil
	if glfw.Joystick1.IsGamepad() {
		d.gamepad = glfw.Joystick1.GetGamepadState()
	}

	clear(d.touches)
	if d.cfg.MouseAsTouch && d.window.GetMouseButtonState(glfw.MouseButtonLeft) == glfw.Press {
		d.touches[0] = mgl32.Vec3{float32(x), float32(y), 0}
	}
}

// ResetMouseState drops the pending cursor delta, used after capture toggles.
func (d *GLFWDevice) ResetMouseState() {
	d.firstMouse = true
	d.mouseDX, d.mouseDY = 0, 0
}

// KeyDown implements input.Device.
func (d *GLFWDevice) KeyDown(key string) bool {
	if k, ok := keyNames[key]; ok {
		return d.window.GetKeyState(k) == glfw.Press
	}
	if b, ok := mouseButtons[key]; ok {
		return d.window.GetMouseButtonState(b) == glfw.Press
	}
	if b, ok := gamepadButtons[key]; ok && d.gamepad != nil {
		return d.gamepad.Buttons[b] == glfw.Press
	}
	return false
}

// AxisValue implements input.Device. Digital keys are not analog inputs and
// report false so the mapper reads them through KeyDown.
func (d *GLFWDevice) AxisValue(key string) (float32, bool) {
	switch key {
	case "mouse_x":
		return d.mouseDX, true
	case "mouse_y":
		return d.mouseDY, true
	}
	a, ok := gamepadAxes[key]
	if !ok {
		return 0, false
	}
	if d.gamepad == nil {
		return 0, true
	}
	return applyDeadzone(d.gamepad.Axes[a], d.cfg.GamepadDeadzone), true
}

// Touches implements input.Device.
func (d *GLFWDevice) Touches() map[int]mgl32.Vec3 {
	return d.touches
}

// applyDeadzone zeroes values inside the deadzone and rescales the rest so
// the output still spans the full range.
func applyDeadzone(v, deadzone float32) float32 {
	if deadzone <= 0 {
		return v
	}
	if deadzone >= 1 {
		return 0
	}
	mag := v
	if mag < 0 {
		mag = -mag
	}
	if mag <= deadzone {
		return 0
	}
	scaled := (mag - deadzone) / (1 - deadzone)
	if v < 0 {
		return -scaled
	}
	return scaled
}
