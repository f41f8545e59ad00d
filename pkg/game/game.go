// Package game runs the playable character: level terrain, movement, input
// routing and foot placement, stepped once per frame.
package game

import (
	"log/slog"

	"github.com/leterax/go-footik/internal/config"
	"github.com/leterax/go-footik/pkg/footik"
	"github.com/leterax/go-footik/pkg/input"
)

// Game holds everything advanced by a frame step. It is not safe for
// concurrent use.
type Game struct {
	cfg *config.Config
	log *slog.Logger

	chunks    *ChunkManager
	tracer    WorldTracer
	character *Character
	estimator *footik.Estimator
	router    *input.Router
	mapper    *input.Mapper
	camera    *FollowCamera
}

// New builds lvl and spawns the character on it.
func New(cfg *config.Config, lvl *Level, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}

	chunks := NewChunkManager(cfg.World.ChunkSize, log.With("component", "terrain"))
	chunks.Load(lvl)

	spawn := lvl.SpawnPoint(chunks.World(), cfg.Character.CapsuleHalfHeight)
	character := NewCharacter(cfg.Character, spawn, cfg.Camera.MinPitch, cfg.Camera.MaxPitch)

	var observer footik.ProbeObserver
	if cfg.FootIK.Debug {
		observer = probeLogger(log.With("component", "footik"))
	}
	estimator := footik.NewEstimator(character, footik.Settings{
		LeftFootSocket:  cfg.FootIK.LeftFootSocket,
		RightFootSocket: cfg.FootIK.RightFootSocket,
		InterpSpeed:     cfg.FootIK.InterpSpeed,
		TraceDistance:   cfg.TraceDistance(),
		RestHalfHeight:  cfg.Character.CapsuleHalfHeight,
	}, observer)

	router := input.NewRouter(character, character,
		cfg.Character.BaseTurnRate, cfg.Character.BaseLookUpRate,
		log.With("component", "input"))

	g := &Game{
		cfg:       cfg,
		log:       log,
		chunks:    chunks,
		tracer:    WorldTracer{World: chunks.World()},
		character: character,
		estimator: estimator,
		router:    router,
		mapper:    input.NewMapper(Bindings(cfg.Input)),
		camera:    NewFollowCamera(cfg.Camera),
	}
	g.updateCamera()
	return g
}

// Bindings converts configured bindings to the mapper's form.
func Bindings(cfg config.InputConfig) input.Bindings {
	b := input.Bindings{
		Actions: make(map[string][]string, len(cfg.Actions)),
		Axes:    make(map[string][]input.AxisKey, len(cfg.Axes)),
	}
	for name, keys := range cfg.Actions {
		b.Actions[name] = append([]string(nil), keys...)
	}
	for name, keys := range cfg.Axes {
		for _, k := range keys {
			b.Axes[name] = append(b.Axes[name], input.AxisKey{Key: k.Key, Scale: k.Scale})
		}
	}
	return b
}

func probeLogger(log *slog.Logger) footik.ProbeObserver {
	return footik.ProbeObserverFunc(func(socket string, r footik.ProbeResult) {
		log.Debug("ground probe", "socket", socket, "hit", r.Hit(), "distance", r.Distance)
	})
}

func (g *Game) Character() *Character {
	return g.character
}

func (g *Game) Estimator() *footik.Estimator {
	return g.estimator
}

func (g *Game) Chunks() *ChunkManager {
	return g.chunks
}

func (g *Game) Camera() *FollowCamera {
	return g.camera
}

// Step polls device, moves the character, updates the foot pose and then
// the camera. A nil device skips input for the frame.
func (g *Game) Step(dt float32, device input.Device) footik.Pose {
	if device != nil {
		g.router.Dispatch(g.mapper.Poll(device), dt)
	}

	g.character.Step(dt, g.chunks.World())

	if lvl := g.chunks.Level(); lvl != nil && g.character.ActorLocation().Y() < lvl.KillHeight() {
		g.log.Info("character fell out of the world, respawning")
		g.Respawn()
	}

	pose := g.estimator.Update(footik.Frame{
		DeltaSeconds: dt,
		World:        g.tracer,
	})
	g.updateCamera()
	return pose
}

func (g *Game) updateCamera() {
	yaw, pitch := g.character.ControlRotation()
	g.camera.Update(g.character.ActorLocation(), yaw, pitch, g.tracer)
}

// Respawn puts the character back on the level spawn at rest.
func (g *Game) Respawn() {
	g.estimator.Reset()
	spawn := g.chunks.Level().SpawnPoint(g.chunks.World(), g.character.CapsuleHalfHeight())
	g.character.Teleport(spawn)
}

// ReloadLevel swaps in a new level and respawns the character.
func (g *Game) ReloadLevel(lvl *Level) {
	g.chunks.Load(lvl)
	g.Respawn()
}
