package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Keys handled by the window rather than the bindings
const (
	KeyQuit         = glfw.KeyEscape
	KeyToggleCursor = glfw.KeyTab
	KeyRespawn      = glfw.KeyF5
)

// Frame and scene constants
const (
	// MaxFrameDelta caps the step after a stall so movement stays stable.
	MaxFrameDelta = 0.1

	FogDistance = 120.0
)

var (
	SkyColor = mgl32.Vec4{0.53, 0.71, 0.88, 1.0}
	LightDir = mgl32.Vec3{-0.4, -1.0, -0.3}
)

// keyNames maps binding key names to keyboard keys. Letters and digits are
// added by init.
var keyNames = map[string]glfw.Key{
	"space":       glfw.KeySpace,
	"enter":       glfw.KeyEnter,
	"tab":         glfw.KeyTab,
	"backspace":   glfw.KeyBackspace,
	"left_shift":  glfw.KeyLeftShift,
	"right_shift": glfw.KeyRightShift,
	"left_ctrl":   glfw.KeyLeftControl,
	"right_ctrl":  glfw.KeyRightControl,
	"left_alt":    glfw.KeyLeftAlt,
	"up":          glfw.KeyUp,
	"down":        glfw.KeyDown,
	"left":        glfw.KeyLeft,
	"right":       glfw.KeyRight,
}

var mouseButtons = map[string]glfw.MouseButton{
	"mouse_left":   glfw.MouseButtonLeft,
	"mouse_right":  glfw.MouseButtonRight,
	"mouse_middle": glfw.MouseButtonMiddle,
}

var gamepadButtons = map[string]glfw.GamepadButton{
	"gamepad_a":            glfw.ButtonA,
	"gamepad_b":            glfw.ButtonB,
	"gamepad_x":            glfw.ButtonX,
	"gamepad_y":            glfw.ButtonY,
	"gamepad_left_bumper":  glfw.ButtonLeftBumper,
	"gamepad_right_bumper": glfw.ButtonRightBumper,
	"gamepad_back":         glfw.ButtonBack,
	"gamepad_start":        glfw.ButtonStart,
	"gamepad_dpad_up":      glfw.ButtonDpadUp,
	"gamepad_dpad_down":    glfw.ButtonDpadDown,
	"gamepad_dpad_left":    glfw.ButtonDpadLeft,
	"gamepad_dpad_right":   glfw.ButtonDpadRight,
}

var gamepadAxes = map[string]glfw.GamepadAxis{
	"gamepad_left_x":        glfw.AxisLeftX,
	"gamepad_left_y":        glfw.AxisLeftY,
	"gamepad_right_x":       glfw.AxisRightX,
	"gamepad_right_y":       glfw.AxisRightY,
	"gamepad_left_trigger":  glfw.AxisLeftTrigger,
	"gamepad_right_trigger": glfw.AxisRightTrigger,
}

func init() {
	for i := 0; i < 26; i++ {
		keyNames[string(rune('a'+i))] = glfw.KeyA + glfw.Key(i)
	}
	for i := 0; i < 10; i++ {
		keyNames[string(rune('0'+i))] = glfw.Key0 + glfw.Key(i)
	}
}

// KnownKey reports whether name is a key name this device understands.
func KnownKey(name string) bool {
	if _, ok := keyNames[name]; ok {
		return true
	}
	if _, ok := mouseButtons[name]; ok {
		return true
	}
	if _, ok := gamepadButtons[name]; ok {
		return true
	}
	if _, ok := gamepadAxes[name]; ok {
		return true
	}
	return name == "mouse_x" || name == "mouse_y"
}
