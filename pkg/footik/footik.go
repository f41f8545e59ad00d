// Package footik computes per-frame foot placement offsets for a capsule
// character standing on uneven ground.
//
// Two downward line traces, one under each foot socket, drive three smoothed
// outputs: a vertical offset per foot and a vertical offset for the visual
// mesh. The capsule half-height is lowered by half the mesh offset so the
// lower foot can still reach the ground. Displacing leg bones from these
// values is left to the animation layer.
package footik

import (
	"github.com/go-gl/mathgl/mgl32"
)

// NoHit is the distance reported by a probe that found no surface in range.
const NoHit float32 = -1

// ProbeResult is the outcome of a single ground probe.
type ProbeResult struct {
	// Distance from the probe start to the hit point along the ray, or NoHit.
	Distance float32
}

// Miss returns a probe result that found nothing.
func Miss() ProbeResult {
	return ProbeResult{Distance: NoHit}
}

// Hit returns whether the probe found a surface.
func (r ProbeResult) Hit() bool {
	return r.Distance >= 0
}

// ObjectFilter selects which kinds of geometry a trace may hit.
type ObjectFilter uint8

const (
	WorldStatic ObjectFilter = 1 << iota
	WorldDynamic
	Pawn
)

// Has reports whether f includes every bit of other.
func (f ObjectFilter) Has(other ObjectFilter) bool {
	return f&other == other
}

// TraceHit describes the first blocking intersection of a line trace.
type TraceHit struct {
	Blocking bool
	Distance float32
	Location mgl32.Vec3
}

// Tracer answers line traces against world geometry.
type Tracer interface {
	LineTrace(start, end mgl32.Vec3, filter ObjectFilter) TraceHit
}

// Body is the character capability the estimator reads and writes.
type Body interface {
	// SocketLocation returns the world position of a named mesh socket.
	// Unknown names resolve to the zero vector.
	SocketLocation(name string) mgl32.Vec3
	ActorLocation() mgl32.Vec3
	CapsuleHalfHeight() float32
	SetCapsuleHalfHeight(halfHeight float32)
}

// Frame carries the per-update context.
type Frame struct {
	DeltaSeconds float32
	World        Tracer
}

// Pose is the estimator's smoothed output, read by animation and rendering.
type Pose struct {
	LeftFootOffset    float32
	RightFootOffset   float32
	MeshOffset        float32
	CapsuleHalfHeight float32
}
