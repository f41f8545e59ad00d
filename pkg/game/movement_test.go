package game

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-footik/internal/config"
	"github.com/leterax/go-footik/pkg/voxel"
)

const frame = float32(1.0 / 60)

func repeatRow(row string, n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = row
	}
	return rows
}

func buildWorld(t *testing.T, rows ...string) *voxel.World {
	t.Helper()
	world := voxel.NewWorld(8)
	mustLevel(t, rows...).Build(world)
	return world
}

func newTestCharacter(at mgl32.Vec3) *Character {
	cfg := config.Default()
	return NewCharacter(cfg.Character, at, cfg.Camera.MinPitch, cfg.Camera.MaxPitch)
}

func bottom(c *Character) float32 {
	return c.ActorLocation().Y() - c.CapsuleHalfHeight()
}

func settle(t *testing.T, c *Character, world *voxel.World) {
	t.Helper()
	for i := 0; i < 240 && !c.Grounded(); i++ {
		c.Step(frame, world)
	}
	if !c.Grounded() {
		t.Fatalf("character never landed, at %v", c.ActorLocation())
	}
}

func TestCharacter_FallsAndLands(t *testing.T) {
	world := buildWorld(t, repeatRow("1 1 1 1 1 1 1 1", 8)...)
	c := newTestCharacter(mgl32.Vec3{4, 6, 4})

	settle(t, c, world)

	approxEqual(t, bottom(c), 1, 1e-3, "bottom")
	if c.Velocity().Y() != 0 {
		t.Fatalf("vertical velocity = %v after landing", c.Velocity().Y())
	}

	for i := 0; i < 30; i++ {
		c.Step(frame, world)
	}
	approxEqual(t, bottom(c), 1, 1e-3, "bottom at rest")
}

func TestCharacter_Jump(t *testing.T) {
	world := buildWorld(t, repeatRow("1 1 1 1 1 1 1 1", 8)...)
	c := newTestCharacter(mgl32.Vec3{4, 4, 4})
	settle(t, c, world)

	c.Jump()
	c.Step(frame, world)
	if c.Grounded() || c.Velocity().Y() <= 0 {
		t.Fatalf("jump did not leave the ground: grounded=%v vel=%v", c.Grounded(), c.Velocity())
	}

	peak := bottom(c)
	for i := 0; i < 240 && !c.Grounded(); i++ {
		c.Step(frame, world)
		peak = max(peak, bottom(c))
	}
	if !c.Grounded() {
		t.Fatal("character never came down")
	}
	if peak < 4 {
		t.Fatalf("jump peak = %v, want above 4", peak)
	}

	// Holding the button does not chain jumps once consumed.
	c.Step(frame, world)
	if !c.Grounded() {
		t.Fatal("character jumped again without a new press")
	}
}

func TestCharacter_StopJumpingCancelsPendingJump(t *testing.T) {
	world := buildWorld(t, repeatRow("1 1 1 1 1 1 1 1", 8)...)
	c := newTestCharacter(mgl32.Vec3{4, 4, 4})
	settle(t, c, world)

	c.Jump()
	c.StopJumping()
	c.Step(frame, world)
	if !c.Grounded() {
		t.Fatal("released jump still fired")
	}
}

func TestCharacter_WallStopsMovement(t *testing.T) {
	world := buildWorld(t, repeatRow("1 1 1 1 1 1 1 6 1 1 1 1", 8)...)
	c := newTestCharacter(mgl32.Vec3{3, 4, 4})
	settle(t, c, world)

	for i := 0; i < 60; i++ {
		c.AddMovementInput(mgl32.Vec3{1, 0, 0}, 1)
		c.Step(frame, world)
	}

	limit := 7 - c.CapsuleRadius()
	if x := c.ActorLocation().X(); x > limit+1e-3 {
		t.Fatalf("x = %v, passed wall at %v", x, limit)
	}
	approxEqual(t, c.ActorLocation().X(), limit, 1e-2, "x against wall")
}

func TestCharacter_StepsUpAndDown(t *testing.T) {
	row := "1 1 1 1 1 1 1 2 2 2 2 2 1 1 1 1 1 1 1 1 1 1 1 1"
	world := buildWorld(t, repeatRow(row, 8)...)
	c := newTestCharacter(mgl32.Vec3{3, 4, 4})
	settle(t, c, world)

	reachedTop := false
	for i := 0; i < 50; i++ {
		c.AddMovementInput(mgl32.Vec3{1, 0, 0}, 1)
		c.Step(frame, world)
		if !c.Grounded() {
			t.Fatalf("frame %d: lost the ground at %v", i, c.ActorLocation())
		}
		if bottom(c) > 1.9 {
			reachedTop = true
		}
	}

	if !reachedTop {
		t.Fatal("never climbed the step")
	}
	if x := c.ActorLocation().X(); x < 14 {
		t.Fatalf("x = %v, want past the raised section", x)
	}
	approxEqual(t, bottom(c), 1, 1e-3, "bottom after stepping down")
}

func TestCharacter_WalksOffLedge(t *testing.T) {
	row := "4 4 4 4 4 4" + strings.Repeat(" 1", 18)
	world := buildWorld(t, repeatRow(row, 8)...)
	c := newTestCharacter(mgl32.Vec3{2, 8, 4})
	settle(t, c, world)

	fell := false
	for i := 0; i < 30; i++ {
		c.AddMovementInput(mgl32.Vec3{1, 0, 0}, 1)
		c.Step(frame, world)
		if !c.Grounded() {
			fell = true
		}
	}
	if !fell {
		t.Fatal("character never left the ground off a 3 block drop")
	}
	settle(t, c, world)
	approxEqual(t, bottom(c), 1, 1e-3, "bottom")
}

func TestCharacter_OrientsToMovement(t *testing.T) {
	world := buildWorld(t, repeatRow("1 1 1 1 1 1 1 1", 8)...)
	c := newTestCharacter(mgl32.Vec3{4, 4, 1})
	settle(t, c, world)

	c.AddMovementInput(mgl32.Vec3{0, 0, 1}, 1)
	c.Step(frame, world)
	approxEqual(t, c.Yaw(), 9, 1e-3, "yaw after one frame")

	for i := 0; i < 20; i++ {
		c.AddMovementInput(mgl32.Vec3{0, 0, 1}, 1)
		c.Step(frame, world)
	}
	approxEqual(t, c.Yaw(), 90, 1e-3, "yaw")
}

func TestCharacter_SocketLocation(t *testing.T) {
	c := newTestCharacter(mgl32.Vec3{10, 5, 20})

	got := c.SocketLocation("foot_r")
	want := mgl32.Vec3{10.1, 5 - 2.2, 20.35}
	for i := 0; i < 3; i++ {
		approxEqual(t, got[i], want[i], 1e-5, "yaw 0 foot_r")
	}

	c.yaw = 90
	got = c.SocketLocation("foot_r")
	want = mgl32.Vec3{10 - 0.35, 5 - 2.2, 20.1}
	for i := 0; i < 3; i++ {
		approxEqual(t, got[i], want[i], 1e-5, "yaw 90 foot_r")
	}

	if got := c.SocketLocation("hand_l"); got != (mgl32.Vec3{}) {
		t.Fatalf("unknown socket = %v, want zero vector", got)
	}
}

func TestCharacter_CapsuleResizeKeepsFeetOnFloor(t *testing.T) {
	world := buildWorld(t, repeatRow("1 1 1 1 1 1 1 1", 8)...)
	c := newTestCharacter(mgl32.Vec3{4, 4, 4})
	settle(t, c, world)

	c.SetCapsuleHalfHeight(1.9)
	approxEqual(t, bottom(c), 1, 1e-3, "bottom while grounded")

	air := newTestCharacter(mgl32.Vec3{0, 10, 0})
	air.SetCapsuleHalfHeight(1.9)
	approxEqual(t, air.ActorLocation().Y(), 10, 1e-6, "center while airborne")
}

func TestCharacter_ControlRotation(t *testing.T) {
	c := newTestCharacter(mgl32.Vec3{})

	c.AddControllerYawInput(-30)
	c.AddControllerPitchInput(100)
	yaw, pitch := c.ControlRotation()
	approxEqual(t, yaw, 330, 1e-4, "yaw")
	approxEqual(t, pitch, 60, 1e-4, "pitch")

	c.AddControllerPitchInput(-500)
	_, pitch = c.ControlRotation()
	approxEqual(t, pitch, -80, 1e-4, "pitch min")

	c.yaw = 45
	c.ResetOrientationAndPosition()
	yaw, pitch = c.ControlRotation()
	if yaw != 45 || pitch != 0 {
		t.Fatalf("after reset = (%v, %v), want (45, 0)", yaw, pitch)
	}
}

func TestDeltaDegrees(t *testing.T) {
	tests := []struct{ a, b, want float32 }{
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{90, 90, 0},
	}
	for _, tt := range tests {
		approxEqual(t, deltaDegrees(tt.a, tt.b), tt.want, 1e-4, "delta")
	}
}
