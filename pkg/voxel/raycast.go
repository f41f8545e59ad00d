package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RayHit is the first solid block crossed by a ray
type RayHit struct {
	// Distance from the ray start to the entry point
	Distance float32
	Location mgl32.Vec3
	Block    BlockPos
	// Normal of the face the ray entered through, zero if it started inside
	Normal mgl32.Vec3
}

// Raycast walks the voxel grid from start to end and returns the first solid
// block crossed. A ray that starts inside a solid block hits at distance 0.
func (w *World) Raycast(start, end mgl32.Vec3) (RayHit, bool) {
	pos := BlockPosAt(start)
	if w.IsSolid(pos.X, pos.Y, pos.Z) {
		return RayHit{Location: start, Block: pos}, true
	}

	delta := end.Sub(start)
	length := float64(delta.Len())
	if length == 0 {
		return RayHit{}, false
	}
	dir := [3]float64{
		float64(delta.X()) / length,
		float64(delta.Y()) / length,
		float64(delta.Z()) / length,
	}
	origin := [3]float64{float64(start.X()), float64(start.Y()), float64(start.Z())}
	cell := [3]int{pos.X, pos.Y, pos.Z}

	var step [3]int
	var tMax, tDelta [3]float64
	for i := 0; i < 3; i++ {
		switch {
		case dir[i] > 0:
			step[i] = 1
			tMax[i] = (math.Floor(origin[i]) + 1 - origin[i]) / dir[i]
			tDelta[i] = 1 / dir[i]
		case dir[i] < 0:
			step[i] = -1
			tMax[i] = (origin[i] - math.Floor(origin[i])) / -dir[i]
			tDelta[i] = -1 / dir[i]
		default:
			tMax[i] = math.Inf(1)
			tDelta[i] = math.Inf(1)
		}
	}

	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}

		t := tMax[axis]
		if t > length {
			return RayHit{}, false
		}

		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]

		if !w.IsSolid(cell[0], cell[1], cell[2]) {
			continue
		}

		var normal mgl32.Vec3
		normal[axis] = float32(-step[axis])
		return RayHit{
			Distance: float32(t),
			Location: start.Add(mgl32.Vec3{float32(dir[0] * t), float32(dir[1] * t), float32(dir[2] * t)}),
			Block:    BlockPos{X: cell[0], Y: cell[1], Z: cell[2]},
			Normal:   normal,
		}, true
	}
}
