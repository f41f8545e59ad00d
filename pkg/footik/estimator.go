package footik

// Default socket names on the character skeleton.
const (
	DefaultLeftFootSocket  = "foot_l"
	DefaultRightFootSocket = "foot_r"
)

// DefaultInterpSpeed is the smoothing speed used when Settings leaves it unset.
const DefaultInterpSpeed = 15.0

// Settings configures an Estimator. Values are fixed after construction.
type Settings struct {
	LeftFootSocket  string
	RightFootSocket string
	// InterpSpeed is shared by all three smoothed values.
	InterpSpeed float32
	// TraceDistance defaults to half of RestHalfHeight when zero.
	TraceDistance float32
	// RestHalfHeight is the capsule half-height with both feet level.
	RestHalfHeight float32
}

func (s Settings) withDefaults() Settings {
	if s.LeftFootSocket == "" {
		s.LeftFootSocket = DefaultLeftFootSocket
	}
	if s.RightFootSocket == "" {
		s.RightFootSocket = DefaultRightFootSocket
	}
	if s.InterpSpeed == 0 {
		s.InterpSpeed = DefaultInterpSpeed
	}
	if s.TraceDistance <= 0 {
		s.TraceDistance = s.RestHalfHeight / 2
	}
	return s
}

// Targets are the values the smoothed pose is pulled toward in one frame.
type Targets struct {
	LeftFoot          float32
	RightFoot         float32
	Mesh              float32
	CapsuleHalfHeight float32
}

// ComputeTargets derives this frame's targets from the two probe results.
//
// The foot over higher ground (the shorter hit) is raised by the difference
// between the two distances and the other foot stays flat. Ties resolve to
// the right foot, which is the same as leaving both flat. If either probe
// misses, both feet relax to zero.
//
// The mesh target is the larger of the valid distances, or zero when neither
// probe hit, so the NoHit sentinel never leaks into the capsule height.
func ComputeTargets(left, right ProbeResult, restHalfHeight float32) Targets {
	var t Targets

	if left.Hit() && right.Hit() {
		diff := abs32(left.Distance - right.Distance)
		if left.Distance < right.Distance {
			t.LeftFoot = diff
		} else {
			t.RightFoot = diff
		}
	}

	if left.Hit() {
		t.Mesh = left.Distance
	}
	if right.Hit() && right.Distance > t.Mesh {
		t.Mesh = right.Distance
	}

	t.CapsuleHalfHeight = restHalfHeight - t.Mesh/2
	return t
}

// Estimator owns the smoothed foot pose of one character.
type Estimator struct {
	settings Settings
	body     Body
	probe    *GroundProbe

	pose    Pose
	targets Targets
}

// NewEstimator creates an estimator at rest for body. The initial capsule
// half-height is read from body.
func NewEstimator(body Body, settings Settings, observer ProbeObserver) *Estimator {
	settings = settings.withDefaults()
	if settings.RestHalfHeight <= 0 {
		settings.RestHalfHeight = body.CapsuleHalfHeight()
		if settings.TraceDistance <= 0 {
			settings.TraceDistance = settings.RestHalfHeight / 2
		}
	}

	return &Estimator{
		settings: settings,
		body:     body,
		probe:    NewGroundProbe(body, settings.TraceDistance, observer),
		pose: Pose{
			CapsuleHalfHeight: body.CapsuleHalfHeight(),
		},
		targets: Targets{
			CapsuleHalfHeight: settings.RestHalfHeight,
		},
	}
}

// Settings returns the resolved settings.
func (e *Estimator) Settings() Settings {
	return e.settings
}

// Pose returns the output of the most recent Update.
func (e *Estimator) Pose() Pose {
	return e.pose
}

// Targets returns the targets used by the most recent Update.
func (e *Estimator) Targets() Targets {
	return e.targets
}

// Probe exposes the ground probe, mainly for debug drawing.
func (e *Estimator) Probe() *GroundProbe {
	return e.probe
}

// Update probes both feet, blends the pose toward the new targets and applies
// the capsule half-height to the body.
func (e *Estimator) Update(frame Frame) Pose {
	left := e.probe.Probe(frame, e.settings.LeftFootSocket)
	right := e.probe.Probe(frame, e.settings.RightFootSocket)

	e.targets = ComputeTargets(left, right, e.settings.RestHalfHeight)

	dt := frame.DeltaSeconds
	speed := e.settings.InterpSpeed

	e.pose.LeftFootOffset = Interp(e.pose.LeftFootOffset, e.targets.LeftFoot, dt, speed)
	e.pose.RightFootOffset = Interp(e.pose.RightFootOffset, e.targets.RightFoot, dt, speed)
	e.pose.MeshOffset = Interp(e.pose.MeshOffset, e.targets.Mesh, dt, speed)

	current := e.body.CapsuleHalfHeight()
	e.pose.CapsuleHalfHeight = Interp(current, e.targets.CapsuleHalfHeight, dt, speed)
	e.body.SetCapsuleHalfHeight(e.pose.CapsuleHalfHeight)

	return e.pose
}

// Reset returns the pose to rest and restores the capsule.
func (e *Estimator) Reset() {
	e.pose = Pose{CapsuleHalfHeight: e.settings.RestHalfHeight}
	e.targets = Targets{CapsuleHalfHeight: e.settings.RestHalfHeight}
	e.body.SetCapsuleHalfHeight(e.settings.RestHalfHeight)
}
