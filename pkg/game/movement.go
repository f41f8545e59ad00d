package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-footik/pkg/voxel"
)

const (
	// collisionTolerance keeps touching faces from counting as overlap.
	collisionTolerance = 1e-4
	// airControlRate is how fast velocity follows input in the air at
	// AirControl 1, per second.
	airControlRate = 8
)

// aabb is the collision box standing in for the capsule.
type aabb struct {
	Min, Max mgl32.Vec3
}

func (b aabb) offset(d mgl32.Vec3) aabb {
	return aabb{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

func (b aabb) center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (c *Character) bounds() aabb {
	ext := mgl32.Vec3{c.cfg.CapsuleRadius, c.halfHeight, c.cfg.CapsuleRadius}
	return aabb{Min: c.location.Sub(ext), Max: c.location.Add(ext)}
}

func floorForMin(v float32) int {
	return int(math.Floor(float64(v + collisionTolerance)))
}

func floorForMax(v float32) int {
	return int(math.Floor(float64(v - collisionTolerance)))
}

// collides reports whether any solid block overlaps box.
func collides(box aabb, world *voxel.World) bool {
	for x := floorForMin(box.Min[0]); x <= floorForMax(box.Max[0]); x++ {
		for y := floorForMin(box.Min[1]); y <= floorForMax(box.Max[1]); y++ {
			for z := floorForMin(box.Min[2]); z <= floorForMax(box.Max[2]); z++ {
				if world.IsSolid(x, y, z) {
					return true
				}
			}
		}
	}
	return false
}

// sweepAxis returns how far box can move along axis, up to delta, before a
// solid block stops it.
func sweepAxis(box aabb, axis int, delta float32, world *voxel.World) float32 {
	if world == nil || delta == 0 {
		return delta
	}

	a, b := (axis+1)%3, (axis+2)%3
	minA, maxA := floorForMin(box.Min[a]), floorForMax(box.Max[a])
	minB, maxB := floorForMin(box.Min[b]), floorForMax(box.Max[b])

	solid := func(i, j, k int) bool {
		var cell [3]int
		cell[axis], cell[a], cell[b] = i, j, k
		return world.IsSolid(cell[0], cell[1], cell[2])
	}

	allowed := delta
	if delta > 0 {
		start := int(math.Ceil(float64(box.Max[axis] - collisionTolerance)))
		end := floorForMax(box.Max[axis] + delta)
		for i := start; i <= end; i++ {
			for j := minA; j <= maxA; j++ {
				for k := minB; k <= maxB; k++ {
					if solid(i, j, k) {
						if d := float32(i) - box.Max[axis]; d < allowed {
							allowed = d
						}
					}
				}
			}
		}
	} else {
		start := floorForMin(box.Min[axis]) - 1
		end := floorForMin(box.Min[axis] + delta)
		for i := start; i >= end; i-- {
			for j := minA; j <= maxA; j++ {
				for k := minB; k <= maxB; k++ {
					if solid(i, j, k) {
						if d := float32(i+1) - box.Min[axis]; d > allowed {
							allowed = d
						}
					}
				}
			}
		}
	}
	return allowed
}

// slide moves box horizontally, X then Z, stopping at walls.
func slide(box aabb, dx, dz float32, world *voxel.World) aabb {
	box = box.offset(mgl32.Vec3{sweepAxis(box, 0, dx, world), 0, 0})
	return box.offset(mgl32.Vec3{0, 0, sweepAxis(box, 2, dz, world)})
}

// Step advances the character by dt against world, consuming the movement
// and jump input gathered since the last step.
func (c *Character) Step(dt float32, world *voxel.World) {
	if dt <= 0 {
		return
	}

	move := mgl32.Vec3{c.pendingInput.X(), 0, c.pendingInput.Z()}
	c.pendingInput = mgl32.Vec3{}
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}
	c.orientToMovement(move, dt)

	desired := move.Mul(c.cfg.MaxWalkSpeed)
	if c.grounded {
		c.velocity[0], c.velocity[2] = desired.X(), desired.Z()
		c.velocity[1] = 0
		if c.jumpPressed {
			c.velocity[1] = c.cfg.JumpVelocity
			c.jumpPressed = false
			c.grounded = false
		}
	} else {
		blend := mgl32.Clamp(c.cfg.AirControl*airControlRate*dt, 0, 1)
		c.velocity[0] += (desired.X() - c.velocity.X()) * blend
		c.velocity[2] += (desired.Z() - c.velocity.Z()) * blend
	}
	if !c.grounded {
		c.velocity[1] -= c.cfg.Gravity * dt
	}

	c.move(c.velocity.Mul(dt), world)
}

func (c *Character) move(delta mgl32.Vec3, world *voxel.World) {
	box := c.bounds()

	if dy := delta.Y(); dy != 0 {
		allowed := sweepAxis(box, 1, dy, world)
		box = box.offset(mgl32.Vec3{0, allowed, 0})
		if allowed != dy {
			if dy < 0 {
				c.grounded = true
			}
			c.velocity[1] = 0
		}
	}

	dx, dz := delta.X(), delta.Z()
	moved := slide(box, dx, dz, world)
	if c.grounded && c.cfg.MaxStepHeight > 0 && blocked(box, moved, dx, dz) {
		up := sweepAxis(box, 1, c.cfg.MaxStepHeight, world)
		stepped := slide(box.offset(mgl32.Vec3{0, up, 0}), dx, dz, world)
		if travel(box, stepped) > travel(box, moved)+collisionTolerance {
			down := sweepAxis(stepped, 1, -up, world)
			moved = stepped.offset(mgl32.Vec3{0, down, 0})
		}
	}
	box = moved

	// Follow the floor down steps while walking.
	if c.grounded && c.velocity.Y() <= 0 {
		snap := c.cfg.MaxStepHeight + collisionTolerance
		down := sweepAxis(box, 1, -snap, world)
		if down > -snap {
			box = box.offset(mgl32.Vec3{0, down, 0})
		} else {
			c.grounded = false
		}
	}

	c.location = box.center()
}

func blocked(from, to aabb, dx, dz float32) bool {
	d := to.Min.Sub(from.Min)
	return abs(d.X()-dx) > collisionTolerance || abs(d.Z()-dz) > collisionTolerance
}

func travel(from, to aabb) float32 {
	d := to.Min.Sub(from.Min)
	return mgl32.Vec2{d.X(), d.Z()}.Len()
}

// orientToMovement turns the actor toward the movement direction at the
// configured yaw rate.
func (c *Character) orientToMovement(move mgl32.Vec3, dt float32) {
	if move.Len() < 1e-4 || c.cfg.RotationRate <= 0 {
		return
	}
	target := mgl32.RadToDeg(float32(math.Atan2(float64(move.Z()), float64(move.X()))))
	diff := deltaDegrees(c.yaw, target)
	limit := c.cfg.RotationRate * dt
	c.yaw = wrapDegrees(c.yaw + mgl32.Clamp(diff, -limit, limit))
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
