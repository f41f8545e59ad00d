package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "footik.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := cfg.TraceDistance(); got != 1.2 {
		t.Fatalf("TraceDistance() = %v, want half of half-height 1.2", got)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  error
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name: "partial file keeps defaults",
			content: `character:
  capsule_half_height: 3.0
foot_ik:
  interp_speed: 8
  trace_distance: 0.75
logging:
  level: debug
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Character.CapsuleHalfHeight != 3.0 {
					t.Errorf("CapsuleHalfHeight = %v, want 3.0", cfg.Character.CapsuleHalfHeight)
				}
				if cfg.Character.CapsuleRadius != 1.05 {
					t.Errorf("CapsuleRadius = %v, want default 1.05", cfg.Character.CapsuleRadius)
				}
				if cfg.FootIK.InterpSpeed != 8 {
					t.Errorf("InterpSpeed = %v, want 8", cfg.FootIK.InterpSpeed)
				}
				if cfg.TraceDistance() != 0.75 {
					t.Errorf("TraceDistance() = %v, want 0.75", cfg.TraceDistance())
				}
				if cfg.Logging.Level != "debug" {
					t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
				}
				if len(cfg.Input.Axes["MoveForward"]) == 0 {
					t.Errorf("default axis bindings lost")
				}
			},
		},
		{
			name: "bindings replace defaults",
			content: `input:
  actions:
    Jump: [j]
  axes:
    Turn:
      - key: mouse_x
        scale: 2
`,
			validate: func(t *testing.T, cfg *Config) {
				if got := cfg.Input.Actions["Jump"]; len(got) != 1 || got[0] != "j" {
					t.Errorf("Jump = %v, want [j]", got)
				}
				if _, ok := cfg.Input.Actions["ResetVR"]; ok {
					t.Errorf("default ResetVR binding kept, want actions replaced")
				}
				if got := cfg.Input.Axes["Turn"]; len(got) != 1 || got[0].Scale != 2 {
					t.Errorf("Turn = %+v", got)
				}
				if len(cfg.Input.Axes) != 1 {
					t.Errorf("Axes = %v, want only Turn", cfg.Input.Axes)
				}
				if len(cfg.Character.Sockets) != 2 {
					t.Errorf("Sockets = %v, want defaults when unset", cfg.Character.Sockets)
				}
			},
		},
		{
			name: "sockets replace defaults",
			content: `character:
  sockets:
    foot_l: [-0.5, -2.2, 0]
    foot_r: [0.5, -2.2, 0]
    hand_r: [1, 0, 0]
`,
			validate: func(t *testing.T, cfg *Config) {
				if got := cfg.Character.Sockets["foot_l"]; got != [3]float32{-0.5, -2.2, 0} {
					t.Errorf("foot_l = %v", got)
				}
				if len(cfg.Character.Sockets) != 3 {
					t.Errorf("Sockets = %v, want 3 entries", cfg.Character.Sockets)
				}
				if _, ok := cfg.Input.Actions["ResetVR"]; !ok {
					t.Errorf("actions lost when only sockets are set")
				}
			},
		},
		{
			name: "sockets without a foot",
			content: `character:
  sockets:
    foot_l: [-0.5, -2.2, 0]
`,
			wantErr: ErrInvalid,
		},
		{
			name: "unknown foot socket",
			content: `foot_ik:
  left_foot_socket: ankle_l
`,
			wantErr: ErrInvalid,
		},
		{
			name: "negative interp speed",
			content: `foot_ik:
  interp_speed: -1
`,
			wantErr: ErrInvalid,
		},
		{
			name: "bad log level",
			content: `logging:
  level: verbose
`,
			wantErr: ErrInvalid,
		},
		{
			name: "radius wider than capsule",
			content: `character:
  capsule_radius: 5
`,
			wantErr: ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load() err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() err = %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load(missing) err = nil")
	}
	if _, err := Load(writeConfig(t, "window: [1, 2")); err == nil {
		t.Fatalf("Load(malformed) err = nil")
	}
}
