// Package input turns polled device state into third-person character intents.
package input

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Binding names understood by the router.
const (
	ActionJump    = "Jump"
	ActionResetVR = "ResetVR"

	AxisMoveForward = "MoveForward"
	AxisMoveRight   = "MoveRight"
	AxisTurn        = "Turn"
	AxisTurnRate    = "TurnRate"
	AxisLookUp      = "LookUp"
	AxisLookUpRate  = "LookUpRate"
)

// Default base rates in degrees per second.
const (
	DefaultBaseTurnRate   = 45.0
	DefaultBaseLookUpRate = 45.0
)

// Pawn is the controllable character as seen by the router. Angles are in
// degrees; yaw 0 faces +X and increases toward +Z.
type Pawn interface {
	ControlRotation() (yaw, pitch float32)
	AddControllerYawInput(degrees float32)
	AddControllerPitchInput(degrees float32)
	AddMovementInput(direction mgl32.Vec3, scale float32)
	Jump()
	StopJumping()
}

// HeadsetResetter recenters a head-mounted display.
type HeadsetResetter interface {
	ResetOrientationAndPosition()
}

// Touch is a single finger contact.
type Touch struct {
	Finger   int
	Location mgl32.Vec3
}

// Sample is one frame of mapped input.
type Sample struct {
	Axes           map[string]float32
	Pressed        []string
	Released       []string
	TouchesStarted []Touch
	TouchesStopped []Touch
}

// YawForward returns the horizontal unit vector for a yaw in degrees.
func YawForward(yaw float32) mgl32.Vec3 {
	rad := float64(mgl32.DegToRad(yaw))
	return mgl32.Vec3{float32(math.Cos(rad)), 0, float32(math.Sin(rad))}
}

// YawRight returns the horizontal unit vector to the right of YawForward.
func YawRight(yaw float32) mgl32.Vec3 {
	return YawForward(yaw).Cross(mgl32.Vec3{0, 1, 0})
}

// Router forwards input callbacks to a Pawn.
type Router struct {
	pawn    Pawn
	headset HeadsetResetter
	log     *slog.Logger

	baseTurnRate   float32
	baseLookUpRate float32
}

// NewRouter creates a router for pawn. headset may be nil.
func NewRouter(pawn Pawn, headset HeadsetResetter, baseTurnRate, baseLookUpRate float32, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		pawn:           pawn,
		headset:        headset,
		log:            log,
		baseTurnRate:   baseTurnRate,
		baseLookUpRate: baseLookUpRate,
	}
}

func (r *Router) MoveForward(value float32) {
	if r.pawn == nil || value == 0 {
		return
	}
	yaw, _ := r.pawn.ControlRotation()
	r.pawn.AddMovementInput(YawForward(yaw), value)
}

func (r *Router) MoveRight(value float32) {
	if r.pawn == nil || value == 0 {
		return
	}
	yaw, _ := r.pawn.ControlRotation()
	r.pawn.AddMovementInput(YawRight(yaw), value)
}

// Turn applies an absolute yaw delta, as produced by a mouse.
func (r *Router) Turn(value float32) {
	if r.pawn == nil || value == 0 {
		return
	}
	r.pawn.AddControllerYawInput(value)
}

// LookUp applies an absolute pitch delta.
func (r *Router) LookUp(value float32) {
	if r.pawn == nil || value == 0 {
		return
	}
	r.pawn.AddControllerPitchInput(value)
}

// TurnAtRate treats rate as a normalized turn speed, as from a stick.
func (r *Router) TurnAtRate(rate, dt float32) {
	r.Turn(rate * r.baseTurnRate * dt)
}

// LookUpAtRate treats rate as a normalized pitch speed.
func (r *Router) LookUpAtRate(rate, dt float32) {
	r.LookUp(rate * r.baseLookUpRate * dt)
}

func (r *Router) JumpPressed() {
	if r.pawn != nil {
		r.pawn.Jump()
	}
}

func (r *Router) JumpReleased() {
	if r.pawn != nil {
		r.pawn.StopJumping()
	}
}

func (r *Router) TouchStarted(touch Touch) {
	r.JumpPressed()
}

func (r *Router) TouchStopped(touch Touch) {
	r.JumpReleased()
}

func (r *Router) ResetVR() {
	if r.headset == nil {
		r.log.Debug("headset reset ignored, no headset")
		return
	}
	r.headset.ResetOrientationAndPosition()
}

// Dispatch routes one frame of mapped input. Actions run before axes.
func (r *Router) Dispatch(s Sample, dt float32) {
	for _, name := range s.Pressed {
		switch name {
		case ActionJump:
			r.JumpPressed()
		case ActionResetVR:
			r.ResetVR()
		}
	}
	for _, name := range s.Released {
		if name == ActionJump {
			r.JumpReleased()
		}
	}
	for _, t := range s.TouchesStarted {
		r.TouchStarted(t)
	}
	for _, t := range s.TouchesStopped {
		r.TouchStopped(t)
	}

	r.MoveForward(s.Axes[AxisMoveForward])
	r.MoveRight(s.Axes[AxisMoveRight])
	r.Turn(s.Axes[AxisTurn])
	r.TurnAtRate(s.Axes[AxisTurnRate], dt)
	r.LookUp(s.Axes[AxisLookUp])
	r.LookUpAtRate(s.Axes[AxisLookUpRate], dt)
}
