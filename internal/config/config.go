package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

// World units are blocks. The default character is a 42x96 cm capsule at
// 40 cm per block, so every length below is the centimetre value / 40.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	World     WorldConfig     `yaml:"world"`
	Character CharacterConfig `yaml:"character"`
	FootIK    FootIKConfig    `yaml:"foot_ik"`
	Camera    CameraConfig    `yaml:"camera"`
	Input     InputConfig     `yaml:"input"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type WorldConfig struct {
	Level     string `yaml:"level"`
	ChunkSize int    `yaml:"chunk_size"`
	Watch     bool   `yaml:"watch"`
}

type CharacterConfig struct {
	CapsuleRadius     float32 `yaml:"capsule_radius"`
	CapsuleHalfHeight float32 `yaml:"capsule_half_height"`
	// Degrees per second at full axis deflection.
	BaseTurnRate   float32 `yaml:"base_turn_rate"`
	BaseLookUpRate float32 `yaml:"base_look_up_rate"`
	// Yaw degrees per second when orienting to movement.
	RotationRate  float32 `yaml:"rotation_rate"`
	JumpVelocity  float32 `yaml:"jump_velocity"`
	AirControl    float32 `yaml:"air_control"`
	MaxWalkSpeed  float32 `yaml:"max_walk_speed"`
	Gravity       float32 `yaml:"gravity"`
	MaxStepHeight float32 `yaml:"max_step_height"`
	// Socket offsets in character space: x right, y up, z forward.
	Sockets map[string][3]float32 `yaml:"sockets"`
}

type FootIKConfig struct {
	LeftFootSocket  string  `yaml:"left_foot_socket"`
	RightFootSocket string  `yaml:"right_foot_socket"`
	InterpSpeed     float32 `yaml:"interp_speed"`
	// Zero derives the distance from half the capsule half-height.
	TraceDistance float32 `yaml:"trace_distance"`
	Debug         bool    `yaml:"debug"`
}

type CameraConfig struct {
	BoomLength  float32 `yaml:"boom_length"`
	ProbeMargin float32 `yaml:"probe_margin"`
	// Boom pivot height above the actor location.
	PivotHeight float32 `yaml:"pivot_height"`
	FOV         float32 `yaml:"fov"`
	MinPitch    float32 `yaml:"min_pitch"`
	MaxPitch    float32 `yaml:"max_pitch"`
}

type AxisKey struct {
	Key   string  `yaml:"key"`
	Scale float32 `yaml:"scale"`
}

type InputConfig struct {
	MouseSensitivity float32              `yaml:"mouse_sensitivity"`
	GamepadDeadzone  float32              `yaml:"gamepad_deadzone"`
	MouseAsTouch     bool                 `yaml:"mouse_as_touch"`
	Actions          map[string][]string  `yaml:"actions"`
	Axes             map[string][]AxisKey `yaml:"axes"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Go Foot IK",
			VSync:  true,
		},
		World: WorldConfig{
			Level:     "levels/steps.yaml",
			ChunkSize: 16,
		},
		Character: CharacterConfig{
			CapsuleRadius:     1.05,
			CapsuleHalfHeight: 2.4,
			BaseTurnRate:      45,
			BaseLookUpRate:    45,
			RotationRate:      540,
			JumpVelocity:      15,
			AirControl:        0.2,
			MaxWalkSpeed:      15,
			Gravity:           24.5,
			MaxStepHeight:     1.125,
			Sockets: map[string][3]float32{
				"foot_l": {-0.35, -2.2, 0.1},
				"foot_r": {0.35, -2.2, 0.1},
			},
		},
		FootIK: FootIKConfig{
			LeftFootSocket:  "foot_l",
			RightFootSocket: "foot_r",
			InterpSpeed:     15,
		},
		Camera: CameraConfig{
			BoomLength:  7.5,
			ProbeMargin: 0.3,
			PivotHeight: 1.6,
			FOV:         60,
			MinPitch:    -80,
			MaxPitch:    60,
		},
		Input: InputConfig{
			MouseSensitivity: 0.07,
			GamepadDeadzone:  0.15,
			MouseAsTouch:     false,
			Actions: map[string][]string{
				"Jump":    {"space", "gamepad_a"},
				"ResetVR": {"r"},
			},
			Axes: map[string][]AxisKey{
				"MoveForward": {{Key: "w", Scale: 1}, {Key: "s", Scale: -1}, {Key: "up", Scale: 1}, {Key: "down", Scale: -1}, {Key: "gamepad_left_y", Scale: -1}},
				"MoveRight":   {{Key: "d", Scale: 1}, {Key: "a", Scale: -1}, {Key: "gamepad_left_x", Scale: 1}},
				"Turn":        {{Key: "mouse_x", Scale: 1}},
				"TurnRate":    {{Key: "left", Scale: -1}, {Key: "right", Scale: 1}, {Key: "gamepad_right_x", Scale: 1}},
				"LookUp":      {{Key: "mouse_y", Scale: -1}},
				"LookUpRate":  {{Key: "gamepad_right_y", Scale: -1}},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// mapFields records which map-valued settings a file sets.
type mapFields struct {
	Character struct {
		Sockets map[string][3]float32 `yaml:"sockets"`
	} `yaml:"character"`
	Input struct {
		Actions map[string][]string  `yaml:"actions"`
		Axes    map[string][]AxisKey `yaml:"axes"`
	} `yaml:"input"`
}

// Load reads a YAML file over the defaults. Fields absent from the file keep
// their default values. Sockets, actions and axes are replaced as a whole
// when the file sets them, so a file listing only Jump has no other actions.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var set mapFields
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	// yaml.v3 merges into non-nil maps
	if set.Character.Sockets != nil {
		cfg.Character.Sockets = nil
	}
	if set.Input.Actions != nil {
		cfg.Input.Actions = nil
	}
	if set.Input.Axes != nil {
		cfg.Input.Axes = nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a character.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Character.CapsuleHalfHeight <= 0 || c.Character.CapsuleRadius <= 0 {
		return fmt.Errorf("%w: capsule %.2fx%.2f", ErrInvalid, c.Character.CapsuleRadius, c.Character.CapsuleHalfHeight)
	}
	if c.Character.CapsuleRadius > c.Character.CapsuleHalfHeight {
		return fmt.Errorf("%w: capsule radius %.2f exceeds half-height %.2f", ErrInvalid, c.Character.CapsuleRadius, c.Character.CapsuleHalfHeight)
	}
	if c.FootIK.InterpSpeed < 0 {
		return fmt.Errorf("%w: foot_ik.interp_speed %.2f", ErrInvalid, c.FootIK.InterpSpeed)
	}
	if c.FootIK.TraceDistance < 0 {
		return fmt.Errorf("%w: foot_ik.trace_distance %.2f", ErrInvalid, c.FootIK.TraceDistance)
	}
	for _, name := range []string{c.FootIK.LeftFootSocket, c.FootIK.RightFootSocket} {
		if _, ok := c.Character.Sockets[name]; !ok {
			return fmt.Errorf("%w: foot socket %q not in character.sockets", ErrInvalid, name)
		}
	}
	if c.Camera.MinPitch >= c.Camera.MaxPitch {
		return fmt.Errorf("%w: camera pitch range [%.1f, %.1f]", ErrInvalid, c.Camera.MinPitch, c.Camera.MaxPitch)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}

// TraceDistance resolves the foot probe length.
func (c *Config) TraceDistance() float32 {
	if c.FootIK.TraceDistance > 0 {
		return c.FootIK.TraceDistance
	}
	return c.Character.CapsuleHalfHeight / 2
}
