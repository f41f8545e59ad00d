package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-footik/pkg/footik"
	"github.com/leterax/go-footik/pkg/voxel"
)

// WorldTracer answers foot probes against the static block world.
type WorldTracer struct {
	World *voxel.World
}

var _ footik.Tracer = WorldTracer{}

// LineTrace only sees blocks, so filters without WorldStatic never hit.
func (t WorldTracer) LineTrace(start, end mgl32.Vec3, filter footik.ObjectFilter) footik.TraceHit {
	if t.World == nil || !filter.Has(footik.WorldStatic) {
		return footik.TraceHit{}
	}
	hit, ok := t.World.Raycast(start, end)
	if !ok {
		return footik.TraceHit{}
	}
	return footik.TraceHit{
		Blocking: true,
		Distance: hit.Distance,
		Location: hit.Location,
	}
}
