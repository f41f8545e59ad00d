package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-footik/internal/config"
	"github.com/leterax/go-footik/pkg/footik"
)

const (
	nearPlane = 0.1
	farPlane  = 1000.0
)

// FollowCamera sits on a spring arm behind the control rotation. The arm is
// shortened when static geometry lies between the pivot and the camera.
type FollowCamera struct {
	cfg config.CameraConfig

	// Position and orientation
	pivot    mgl32.Vec3
	position mgl32.Vec3
	worldUp  mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3

	armLength float32

	projection mgl32.Mat4
	width      int
	height     int
}

// NewFollowCamera creates a camera with a fully extended arm.
func NewFollowCamera(cfg config.CameraConfig) *FollowCamera {
	camera := &FollowCamera{
		cfg:       cfg,
		worldUp:   mgl32.Vec3{0, 1, 0},
		armLength: cfg.BoomLength,
		width:     800,
		height:    600,
	}
	camera.updateCameraVectors(0, 0)
	camera.updateProjectionMatrix()
	return camera
}

// updateCameraVectors recalculates camera vectors from angles in degrees.
func (c *FollowCamera) updateCameraVectors(yaw, pitch float32) {
	y := float64(mgl32.DegToRad(yaw))
	p := float64(mgl32.DegToRad(pitch))
	front := mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func (c *FollowCamera) updateProjectionMatrix() {
	aspect := float32(c.width) / float32(c.height)
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.cfg.FOV), aspect, nearPlane, farPlane)
}

// UpdateProjectionMatrix updates the projection for a new framebuffer size.
func (c *FollowCamera) UpdateProjectionMatrix(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width = width
	c.height = height
	c.updateProjectionMatrix()
}

// Update places the camera behind actorLocation looking along the control
// rotation. A nil tracer leaves the arm fully extended.
func (c *FollowCamera) Update(actorLocation mgl32.Vec3, yaw, pitch float32, tracer footik.Tracer) {
	c.updateCameraVectors(yaw, pitch)
	c.pivot = actorLocation.Add(mgl32.Vec3{0, c.cfg.PivotHeight, 0})

	c.armLength = c.cfg.BoomLength
	if tracer != nil {
		desired := c.pivot.Sub(c.front.Mul(c.cfg.BoomLength))
		if hit := tracer.LineTrace(c.pivot, desired, footik.WorldStatic); hit.Blocking {
			c.armLength = max(hit.Distance-c.cfg.ProbeMargin, 0)
		}
	}
	c.position = c.pivot.Sub(c.front.Mul(c.armLength))
}

// ViewMatrix returns the current view matrix
func (c *FollowCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix returns the current projection matrix
func (c *FollowCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// Position returns the current camera position
func (c *FollowCamera) Position() mgl32.Vec3 {
	return c.position
}

// ArmLength returns the arm length after the last collision test.
func (c *FollowCamera) ArmLength() float32 {
	return c.armLength
}

