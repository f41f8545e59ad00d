package game

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-footik/internal/config"
	"github.com/leterax/go-footik/pkg/footik"
	"github.com/leterax/go-footik/pkg/voxel"
)

type keyDevice struct {
	down map[string]bool
}

func (d *keyDevice) KeyDown(key string) bool              { return d.down[key] }
func (d *keyDevice) AxisValue(key string) (float32, bool) { return 0, false }
func (d *keyDevice) Touches() map[int]mgl32.Vec3          { return nil }

// stepLevel is flat at height 1 with a one block ledge covering rows z < 5.
func stepLevel(t *testing.T) *Level {
	rows := append(repeatRow("2 2 2 2 2 2 2 2 2 2", 5), repeatRow("1 1 1 1 1 1 1 1 1 1", 5)...)
	lvl := mustLevel(t, rows...)
	lvl.Spawn = [2]float32{4.5, 8.5}
	return lvl
}

func TestWorldTracer(t *testing.T) {
	world := voxel.NewWorld(8)
	world.SetBlock(0, 0, 0, voxel.Stone)
	tracer := WorldTracer{World: world}

	start, end := mgl32.Vec3{0.5, 1.25, 0.5}, mgl32.Vec3{0.5, 0, 0.5}

	hit := tracer.LineTrace(start, end, footik.WorldStatic)
	if !hit.Blocking {
		t.Fatal("expected a blocking hit")
	}
	approxEqual(t, hit.Distance, 0.25, 1e-5, "distance")
	approxEqual(t, hit.Location.Y(), 1, 1e-5, "location.y")

	if hit := tracer.LineTrace(start, end, footik.Pawn); hit.Blocking {
		t.Fatal("pawn-only trace hit static geometry")
	}
	if hit := tracer.LineTrace(start, mgl32.Vec3{0.5, 1.1, 0.5}, footik.WorldStatic); hit.Blocking {
		t.Fatal("short trace should miss")
	}
	if hit := (WorldTracer{}).LineTrace(start, end, footik.WorldStatic); hit.Blocking {
		t.Fatal("nil world should miss")
	}
}

func TestGame_FootOffsetsOnLedge(t *testing.T) {
	cfg := config.Default()
	g := New(cfg, stepLevel(t), nil)

	// Straddle the ledge: facing +X the left foot is toward -Z.
	g.Character().Teleport(mgl32.Vec3{4.5, 6, 5})

	var pose footik.Pose
	for i := 0; i < 300; i++ {
		pose = g.Step(frame, nil)
	}

	c := g.Character()
	if !c.Grounded() {
		t.Fatal("character not grounded")
	}
	approxEqual(t, bottom(c), 2, 1e-3, "capsule bottom")

	approxEqual(t, pose.LeftFootOffset, 1, 1e-3, "left")
	approxEqual(t, pose.RightFootOffset, 0, 1e-3, "right")
	approxEqual(t, pose.MeshOffset, 1, 1e-3, "mesh")
	approxEqual(t, pose.CapsuleHalfHeight, cfg.Character.CapsuleHalfHeight-0.5, 1e-3, "capsule")
	approxEqual(t, c.CapsuleHalfHeight(), pose.CapsuleHalfHeight, 1e-6, "applied capsule")
}

func TestGame_FlatGroundRestsAtRestHeight(t *testing.T) {
	cfg := config.Default()
	g := New(cfg, stepLevel(t), nil)

	var pose footik.Pose
	for i := 0; i < 120; i++ {
		pose = g.Step(frame, nil)
	}

	approxEqual(t, pose.LeftFootOffset, 0, 1e-4, "left")
	approxEqual(t, pose.RightFootOffset, 0, 1e-4, "right")
	approxEqual(t, pose.MeshOffset, 0, 1e-4, "mesh")
	approxEqual(t, pose.CapsuleHalfHeight, cfg.Character.CapsuleHalfHeight, 1e-4, "capsule")
}

func TestGame_InputMovesCharacter(t *testing.T) {
	g := New(config.Default(), stepLevel(t), nil)
	for i := 0; i < 60; i++ {
		g.Step(frame, nil)
	}
	startX := g.Character().ActorLocation().X()

	dev := &keyDevice{down: map[string]bool{"w": true}}
	for i := 0; i < 10; i++ {
		g.Step(frame, dev)
	}
	if x := g.Character().ActorLocation().X(); x <= startX+1 {
		t.Fatalf("x = %v, want forward of %v", x, startX)
	}

	dev.down = map[string]bool{"space": true}
	g.Step(frame, dev)
	if g.Character().Grounded() {
		t.Fatal("space did not jump")
	}
}

func TestGame_RespawnBelowKillHeight(t *testing.T) {
	g := New(config.Default(), stepLevel(t), nil)
	spawn := g.Chunks().Level().SpawnPoint(g.Chunks().World(), g.Character().CapsuleHalfHeight())

	g.Character().Teleport(mgl32.Vec3{0, defaultKillY - 10, 0})
	g.Step(frame, nil)

	got := g.Character().ActorLocation()
	if got.Sub(spawn).Len() > 1 {
		t.Fatalf("location = %v, want near spawn %v", got, spawn)
	}
}

func TestGame_ReloadLevel(t *testing.T) {
	g := New(config.Default(), stepLevel(t), nil)
	g.Chunks().HaveChunksChanged()

	g.ReloadLevel(mustLevel(t, repeatRow("3 3 3 3", 4)...))

	if !g.Chunks().HaveChunksChanged() {
		t.Fatal("reload did not mark chunks changed")
	}
	if !g.Chunks().World().IsSolid(0, 2, 0) {
		t.Fatal("new level not built")
	}
	if g.Chunks().World().IsSolid(9, 0, 9) {
		t.Fatal("old level not cleared")
	}
}

func TestGame_DebugProbeLogging(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := config.Default()
	cfg.FootIK.Debug = true
	g := New(cfg, stepLevel(t), log)
	g.Step(frame, nil)

	out := buf.String()
	for _, want := range []string{"ground probe", "socket=foot_l", "socket=foot_r", "component=footik"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLevelWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.yaml")
	if err := os.WriteFile(path, []byte("heights: [\"1\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewLevelWatcher(path)
	if err != nil {
		t.Fatalf("NewLevelWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("heights: [\"2\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if !SameFile(name, path) {
			t.Fatalf("event for %q, want %q", name, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for level write")
	}
}
