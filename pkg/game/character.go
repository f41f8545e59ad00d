package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-footik/internal/config"
	"github.com/leterax/go-footik/pkg/footik"
	"github.com/leterax/go-footik/pkg/input"
)

// Character is a capsule controlled through input.Pawn and read by the foot
// estimator through footik.Body. The actor location is the capsule center.
type Character struct {
	cfg config.CharacterConfig

	location   mgl32.Vec3
	yaw        float32
	halfHeight float32
	sockets    map[string]mgl32.Vec3

	controlYaw   float32
	controlPitch float32
	minPitch     float32
	maxPitch     float32

	velocity     mgl32.Vec3
	pendingInput mgl32.Vec3
	jumpPressed  bool
	grounded     bool
}

var (
	_ footik.Body           = (*Character)(nil)
	_ input.Pawn            = (*Character)(nil)
	_ input.HeadsetResetter = (*Character)(nil)
)

// NewCharacter creates a character at location facing +X. Control pitch is
// kept within [minPitch, maxPitch] degrees.
func NewCharacter(cfg config.CharacterConfig, location mgl32.Vec3, minPitch, maxPitch float32) *Character {
	sockets := make(map[string]mgl32.Vec3, len(cfg.Sockets))
	for name, off := range cfg.Sockets {
		sockets[name] = mgl32.Vec3{off[0], off[1], off[2]}
	}
	return &Character{
		cfg:        cfg,
		location:   location,
		halfHeight: cfg.CapsuleHalfHeight,
		sockets:    sockets,
		minPitch:   minPitch,
		maxPitch:   maxPitch,
	}
}

// Teleport moves the character and clears its motion state.
func (c *Character) Teleport(location mgl32.Vec3) {
	c.location = location
	c.velocity = mgl32.Vec3{}
	c.pendingInput = mgl32.Vec3{}
	c.jumpPressed = false
	c.grounded = false
}

func (c *Character) Yaw() float32 {
	return c.yaw
}

func (c *Character) Velocity() mgl32.Vec3 {
	return c.velocity
}

func (c *Character) Grounded() bool {
	return c.grounded
}

func (c *Character) CapsuleRadius() float32 {
	return c.cfg.CapsuleRadius
}

// Sockets returns the names of all configured sockets.
func (c *Character) Sockets() []string {
	names := make([]string, 0, len(c.sockets))
	for name := range c.sockets {
		names = append(names, name)
	}
	return names
}

// SocketLocation rotates the socket offset by the actor yaw. Offsets are in
// character space: x right, y up, z forward.
func (c *Character) SocketLocation(name string) mgl32.Vec3 {
	off, ok := c.sockets[name]
	if !ok {
		return mgl32.Vec3{}
	}
	right := input.YawRight(c.yaw).Mul(off.X())
	up := mgl32.Vec3{0, off.Y(), 0}
	forward := input.YawForward(c.yaw).Mul(off.Z())
	return c.location.Add(right).Add(up).Add(forward)
}

func (c *Character) ActorLocation() mgl32.Vec3 {
	return c.location
}

func (c *Character) CapsuleHalfHeight() float32 {
	return c.halfHeight
}

// SetCapsuleHalfHeight resizes the capsule. While walking the bottom stays on
// the floor, otherwise the capsule resizes about its center.
func (c *Character) SetCapsuleHalfHeight(halfHeight float32) {
	if c.grounded {
		c.location[1] += halfHeight - c.halfHeight
	}
	c.halfHeight = halfHeight
}

func (c *Character) ControlRotation() (yaw, pitch float32) {
	return c.controlYaw, c.controlPitch
}

func (c *Character) AddControllerYawInput(degrees float32) {
	c.controlYaw = wrapDegrees(c.controlYaw + degrees)
}

func (c *Character) AddControllerPitchInput(degrees float32) {
	c.controlPitch = mgl32.Clamp(c.controlPitch+degrees, c.minPitch, c.maxPitch)
}

// AddMovementInput accumulates a request consumed by the next Step.
func (c *Character) AddMovementInput(direction mgl32.Vec3, scale float32) {
	c.pendingInput = c.pendingInput.Add(direction.Mul(scale))
}

func (c *Character) Jump() {
	c.jumpPressed = true
}

func (c *Character) StopJumping() {
	c.jumpPressed = false
}

// ResetOrientationAndPosition recenters the view behind the character.
func (c *Character) ResetOrientationAndPosition() {
	c.controlYaw = c.yaw
	c.controlPitch = mgl32.Clamp(0, c.minPitch, c.maxPitch)
}

// wrapDegrees maps an angle to [0, 360).
func wrapDegrees(deg float32) float32 {
	d := float32(math.Mod(float64(deg), 360))
	if d < 0 {
		d += 360
	}
	return d
}

// deltaDegrees returns the shortest signed rotation from a to b, in (-180, 180].
func deltaDegrees(a, b float32) float32 {
	d := wrapDegrees(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}
