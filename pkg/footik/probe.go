package footik

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ProbeObserver receives every probe result. It exists for diagnostics only;
// the estimator never reads anything back from it.
type ProbeObserver interface {
	ObserveProbe(socket string, result ProbeResult)
}

// ProbeObserverFunc adapts a function to ProbeObserver.
type ProbeObserverFunc func(socket string, result ProbeResult)

func (f ProbeObserverFunc) ObserveProbe(socket string, result ProbeResult) {
	f(socket, result)
}

// GroundProbe traces straight down from the capsule bottom under a socket.
type GroundProbe struct {
	body          Body
	traceDistance float32
	observer      ProbeObserver
}

// NewGroundProbe creates a probe for body. traceDistance must be positive.
func NewGroundProbe(body Body, traceDistance float32, observer ProbeObserver) *GroundProbe {
	return &GroundProbe{
		body:          body,
		traceDistance: traceDistance,
		observer:      observer,
	}
}

// TraceDistance returns how far below the capsule bottom the probe reaches.
func (p *GroundProbe) TraceDistance() float32 {
	return p.traceDistance
}

// Segment returns the start and end points of the trace under socket.
func (p *GroundProbe) Segment(socket string) (start, end mgl32.Vec3) {
	loc := p.body.SocketLocation(socket)
	footY := p.body.ActorLocation().Y() - p.body.CapsuleHalfHeight()

	start = mgl32.Vec3{loc.X(), footY, loc.Z()}
	end = mgl32.Vec3{loc.X(), footY - p.traceDistance, loc.Z()}
	return start, end
}

// Probe casts the ray under socket against static world geometry.
func (p *GroundProbe) Probe(frame Frame, socket string) ProbeResult {
	result := Miss()

	if frame.World != nil {
		start, end := p.Segment(socket)
		hit := frame.World.LineTrace(start, end, WorldStatic)
		if hit.Blocking {
			result.Distance = mgl32.Clamp(hit.Distance, 0, p.traceDistance)
		}
	}

	if p.observer != nil {
		p.observer.ObserveProbe(socket, result)
	}
	return result
}
