// Package render draws the level and the character with OpenGL and drives
// the frame loop.
package render

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-footik/internal/config"
	"github.com/leterax/go-footik/internal/openglhelper"
	"github.com/leterax/go-footik/pkg/footik"
	"github.com/leterax/go-footik/pkg/game"
	"github.com/leterax/go-footik/pkg/input"
	"github.com/leterax/go-footik/pkg/voxel"
)

var (
	//go:embed shaders/cube.vert
	cubeVertexShader string
	//go:embed shaders/cube.frag
	cubeFragmentShader string
)

var (
	bodyColor  = mgl32.Vec3{0.25, 0.45, 0.85}
	legColor   = mgl32.Vec3{0.2, 0.25, 0.4}
	footColor  = mgl32.Vec3{0.9, 0.55, 0.2}
	headColor  = mgl32.Vec3{0.95, 0.8, 0.65}
	probeColor = mgl32.Vec3{1, 0.1, 0.1}
)

// Renderer handles rendering logic and game loop
type Renderer struct {
	window *openglhelper.Window
	device *GLFWDevice
	log    *slog.Logger
	debug  bool
	title  string

	cubeShader *openglhelper.Shader
	terrain    *openglhelper.InstancedMesh
	actors     *openglhelper.InstancedMesh

	// Timing
	lastFrameTime float64
	fpsTimer      float64
	frames        int

	terrainScratch []openglhelper.Instance
	actorScratch   []openglhelper.Instance
}

// NewRenderer opens the window and prepares the cube meshes and shader.
// debug also draws the ground probe segments.
func NewRenderer(cfg config.WindowConfig, inputCfg config.InputConfig, debug bool, log *slog.Logger) (*Renderer, error) {
	if log == nil {
		log = slog.Default()
	}

	window, err := openglhelper.NewWindow(cfg.Width, cfg.Height, cfg.Title, cfg.VSync, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	shader, err := openglhelper.NewShader(cubeVertexShader, cubeFragmentShader)
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("failed to build cube shader: %w", err)
	}

	r := &Renderer{
		window:     window,
		device:     NewGLFWDevice(window, inputCfg),
		log:        log,
		debug:      debug,
		title:      cfg.Title,
		cubeShader: shader,
		terrain:    openglhelper.NewCube(openglhelper.StaticDraw),
		actors:     openglhelper.NewCube(openglhelper.DynamicDraw),
	}
	window.SetMouseCaptured(true)
	return r, nil
}

// Run steps g and draws it until the window closes. beforeStep, when not
// nil, runs at the start of every frame.
func (r *Renderer) Run(g *game.Game, beforeStep func()) {
	camera := g.Camera()
	camera.UpdateProjectionMatrix(r.window.Size())
	r.window.OnResizeFunc(camera.UpdateProjectionMatrix)

	r.window.SetKeyCallback(func(key glfw.Key, action glfw.Action) {
		if action != glfw.Press {
			return
		}
		switch key {
		case KeyQuit:
			r.window.SetShouldClose()
		case KeyToggleCursor:
			r.window.ToggleMouseCaptured()
			r.device.ResetMouseState()
		case KeyRespawn:
			g.Respawn()
		}
	})

	r.lastFrameTime = r.window.Time()
	for !r.window.ShouldClose() {
		now := r.window.Time()
		dt := float32(now - r.lastFrameTime)
		r.lastFrameTime = now
		if dt > MaxFrameDelta {
			dt = MaxFrameDelta
		}

		r.window.PollEvents()
		if beforeStep != nil {
			beforeStep()
		}

		r.device.BeginFrame()
		pose := g.Step(dt, r.device)

		r.render(g, pose)
		r.window.SwapBuffers()
		r.countFrame(dt, g.Character(), pose)
	}
}

func (r *Renderer) countFrame(dt float32, c *game.Character, pose footik.Pose) {
	r.frames++
	r.fpsTimer += float64(dt)
	if r.fpsTimer < 1 {
		return
	}
	fps := float64(r.frames) / r.fpsTimer
	r.window.SetTitle(fmt.Sprintf("%s | %.0f fps", r.title, fps))
	r.log.Debug("frame stats",
		"fps", fps,
		"left_foot", pose.LeftFootOffset,
		"right_foot", pose.RightFootOffset,
		"mesh", pose.MeshOffset,
		"half_height", pose.CapsuleHalfHeight,
		"grounded", c.Grounded(),
		"speed", c.Velocity().Len())
	r.frames = 0
	r.fpsTimer = 0
}

func (r *Renderer) render(g *game.Game, pose footik.Pose) {
	chunks := g.Chunks()
	if chunks.HaveChunksChanged() {
		r.rebuildTerrain(chunks)
	}

	r.window.Clear(SkyColor)

	camera := g.Camera()
	r.cubeShader.Use()
	r.cubeShader.SetMat4("view", camera.ViewMatrix())
	r.cubeShader.SetMat4("projection", camera.ProjectionMatrix())
	r.cubeShader.SetVec3("viewPos", camera.Position())
	r.cubeShader.SetVec3("lightDir", LightDir)
	r.cubeShader.SetVec3("fogColor", SkyColor.Vec3())
	r.cubeShader.SetFloat("fogDistance", FogDistance)

	r.terrain.Draw()

	r.actorScratch = r.characterInstances(r.actorScratch[:0], g, pose)
	r.actors.SetInstances(r.actorScratch)
	r.actors.Draw()

	gl.UseProgram(0)
}

// rebuildTerrain uploads one cube per block with at least one open face.
func (r *Renderer) rebuildTerrain(chunks *game.ChunkManager) {
	world := chunks.World()
	r.terrainScratch = r.terrainScratch[:0]
	for _, chunk := range chunks.GetChunks() {
		chunk.ForEachBlock(func(pos voxel.BlockPos, b voxel.BlockType) {
			if enclosed(world, pos) {
				return
			}
			r.terrainScratch = append(r.terrainScratch, openglhelper.Instance{
				Offset: pos.Center(),
				Scale:  mgl32.Vec3{1, 1, 1},
				Color:  b.Color(),
			})
		})
	}
	r.terrain.SetInstances(r.terrainScratch)
	r.log.Debug("terrain uploaded", "cubes", len(r.terrainScratch))
}

func enclosed(w *voxel.World, p voxel.BlockPos) bool {
	return w.IsSolid(p.X+1, p.Y, p.Z) && w.IsSolid(p.X-1, p.Y, p.Z) &&
		w.IsSolid(p.X, p.Y+1, p.Z) && w.IsSolid(p.X, p.Y-1, p.Z) &&
		w.IsSolid(p.X, p.Y, p.Z+1) && w.IsSolid(p.X, p.Y, p.Z-1)
}

// characterInstances builds a blocky figure from the pose. The mesh is
// lowered by the mesh offset and each foot raised by its own offset, with the
// legs stretched between foot and hip.
func (r *Renderer) characterInstances(dst []openglhelper.Instance, g *game.Game, pose footik.Pose) []openglhelper.Instance {
	c := g.Character()
	settings := g.Estimator().Settings()
	rest := settings.RestHalfHeight

	loc := c.ActorLocation()
	meshBase := loc.Y() - c.CapsuleHalfHeight() - pose.MeshOffset
	hip := meshBase + rest*0.9
	top := meshBase + rest*2

	dst = append(dst, box(loc.X(), loc.Z(), hip, top-rest*0.35, 1.2, bodyColor))
	dst = append(dst, box(loc.X(), loc.Z(), top-rest*0.35, top, 0.8, headColor))

	nose := loc.Add(input.YawForward(c.Yaw()).Mul(0.45))
	dst = append(dst, box(nose.X(), nose.Z(), top-rest*0.22, top-rest*0.12, 0.2, footColor))

	feet := []struct {
		socket string
		offset float32
	}{
		{settings.LeftFootSocket, pose.LeftFootOffset},
		{settings.RightFootSocket, pose.RightFootOffset},
	}
	for _, f := range feet {
		s := c.SocketLocation(f.socket)
		footY := meshBase + f.offset
		dst = append(dst, box(s.X(), s.Z(), footY+0.2, hip, 0.3, legColor))
		dst = append(dst, box(s.X(), s.Z(), footY, footY+0.2, 0.5, footColor))

		if r.debug {
			start, end := g.Estimator().Probe().Segment(f.socket)
			dst = append(dst, box(start.X(), start.Z(), end.Y(), start.Y(), 0.06, probeColor))
		}
	}
	return dst
}

// box returns a square column spanning bottom to top around (x, z).
func box(x, z, bottom, top, width float32, color mgl32.Vec3) openglhelper.Instance {
	if top < bottom {
		bottom, top = top, bottom
	}
	return openglhelper.Instance{
		Offset: mgl32.Vec3{x, (bottom + top) / 2, z},
		Scale:  mgl32.Vec3{width, top - bottom, width},
		Color:  color,
	}
}

// Cleanup releases GPU resources and closes the window.
func (r *Renderer) Cleanup() {
	r.terrain.Delete()
	r.actors.Delete()
	r.cubeShader.Delete()
	r.window.Close()
}
