package footik

import "math"

// snapDistance is the remaining gap below which Interp lands on the target.
const snapDistance = 1e-4

// Interp moves current toward target with frame-rate independent exponential
// smoothing. A non-positive speed jumps straight to the target.
func Interp(current, target, dt, speed float32) float32 {
	if speed <= 0 {
		return target
	}
	if dt <= 0 {
		return current
	}

	dist := target - current
	if abs32(dist) < snapDistance {
		return target
	}

	alpha := 1 - float32(math.Exp(float64(-speed*dt)))
	return current + dist*alpha
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
