package testbed

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/midnight/engine"
	"github.com/spaghettifunk/midnight/engine/config"
	"github.com/spaghettifunk/midnight/engine/core"
	"github.com/spaghettifunk/midnight/engine/math"
	"github.com/spaghettifunk/midnight/engine/renderer"
	"github.com/spaghettifunk/midnight/engine/renderer/buffers"
	"github.com/spaghettifunk/midnight/engine/renderer/components"
	"github.com/spaghettifunk/midnight/engine/renderer/driver"
)

const (
	moveSpeed   float32 = 2.5
	turnSpeed   float32 = 1.2
	spinSpeed   float32 = 0.5
	worldCamera         = "world"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	DeltaTime   float64
	WorldCamera *components.Camera

	width  uint32
	height uint32

	ctx     *engine.Context
	program driver.ProgramHandle
	quad    *buffers.VertexBuffer[math.Vertex3D]
	angle   float32
}

// Two triangles forming a unit quad.
var quadVertices = []math.Vertex3D{
	{Position: [3]float32{-0.5, -0.5, 0}, Colour: [4]float32{1, 0, 0, 1}},
	{Position: [3]float32{0.5, -0.5, 0}, Colour: [4]float32{0, 1, 0, 1}},
	{Position: [3]float32{0.5, 0.5, 0}, Colour: [4]float32{0, 0, 1, 1}},
	{Position: [3]float32{0.5, 0.5, 0}, Colour: [4]float32{0, 0, 1, 1}},
	{Position: [3]float32{-0.5, 0.5, 0}, Colour: [4]float32{1, 1, 0, 1}},
	{Position: [3]float32{-0.5, -0.5, 0}, Colour: [4]float32{1, 0, 0, 1}},
}

func NewTestGame(appConfig *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: appConfig,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnOnConfig = tg.OnConfig
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize(ctx *engine.Context) error {
	core.LogDebug("TestGame.Initialize() called!")
	state := g.state()
	state.ctx = ctx

	camera, _, err := ctx.Cameras.Acquire(worldCamera)
	if err != nil {
		return err
	}
	camera.SetPosition(math.Vec3(ctx.Config.Camera.Position))
	state.WorldCamera = camera

	program, err := ctx.Backend.CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	state.program = program
	ctx.Backend.UseProgram(program)

	return g.buildQuad(ctx.Config.Buffer)
}

func (g *TestGame) buildQuad(cfg config.BufferConfig) error {
	state := g.state()
	topology := cfg.Topology
	if topology == driver.Quads {
		core.LogWarn("quads cannot be drawn on a core profile, drawing triangles instead")
		topology = driver.Triangles
	}

	quad, err := buffers.NewVertexBuffer(state.ctx.Backend, quadVertices,
		buffers.WithTopology(topology),
		buffers.WithUsage(cfg.Usage))
	if err != nil {
		return err
	}

	var v math.Vertex3D
	stride := int32(unsafe.Sizeof(v))
	if err := quad.AddAttributePointer("position", 3, driver.Float, false, stride, unsafe.Offsetof(v.Position)); err != nil {
		quad.Destroy()
		return err
	}
	if err := quad.AddAttributePointer("colour", 4, driver.Float, false, stride, unsafe.Offsetof(v.Colour)); err != nil {
		quad.Destroy()
		return err
	}

	if state.quad != nil {
		state.quad.Destroy()
	}
	state.quad = quad
	core.LogDebug("quad buffer %s: %d vertices as %d %s", quad.ID(), quad.Len(), quad.VertexCount(), quad.Topology())
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.state()
	state.DeltaTime = deltaTime
	delta := float32(deltaTime)
	state.angle += spinSpeed * delta

	input := state.ctx.Input
	camera := state.WorldCamera
	if input.IsKeyDown(core.KEY_W) || input.IsKeyDown(core.KEY_UP) {
		camera.MoveForward(moveSpeed * delta)
	}
	if input.IsKeyDown(core.KEY_S) || input.IsKeyDown(core.KEY_DOWN) {
		camera.MoveBackward(moveSpeed * delta)
	}
	if input.IsKeyDown(core.KEY_A) {
		camera.MoveLeft(moveSpeed * delta)
	}
	if input.IsKeyDown(core.KEY_D) {
		camera.MoveRight(moveSpeed * delta)
	}
	if input.IsKeyDown(core.KEY_SPACE) {
		camera.MoveUp(moveSpeed * delta)
	}
	if input.IsKeyDown(core.KEY_LEFT) || input.IsKeyDown(core.KEY_Q) {
		camera.Yaw(turnSpeed * delta)
	}
	if input.IsKeyDown(core.KEY_RIGHT) || input.IsKeyDown(core.KEY_E) {
		camera.Yaw(-turnSpeed * delta)
	}
	if input.IsKeyDown(core.KEY_R) {
		camera.Reset()
		camera.SetPosition(math.Vec3(state.ctx.Config.Camera.Position))
	}
	return nil
}

func (g *TestGame) Render(backend renderer.RendererBackend, deltaTime float64) error {
	state := g.state()
	camera := state.WorldCamera

	backend.UseProgram(state.program)
	if err := backend.SetUniformMat4(state.program, "projection", camera.Projection()); err != nil {
		return err
	}
	if err := backend.SetUniformMat4(state.program, "view", camera.View()); err != nil {
		return err
	}
	model := mgl32.HomogRotate3DY(state.angle)
	if err := backend.SetUniformMat4(state.program, "model", model); err != nil {
		return err
	}

	if err := state.quad.Bind(); err != nil {
		return err
	}
	defer state.quad.Unbind()
	return backend.DrawArrays(state.quad.Topology(), 0, int32(state.quad.Len()))
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	if height > 0 {
		state.WorldCamera.SetAspectRatio(float32(width) / float32(height))
	}
	return nil
}

// OnConfig rebuilds the quad when the buffer section changes.
func (g *TestGame) OnConfig(cfg *config.Config) error {
	state := g.state()
	state.ctx.Config = cfg
	state.WorldCamera.SetFieldOfView(cfg.Camera.FieldOfView)
	state.WorldCamera.SetNearClippingPlane(cfg.Camera.Near)
	state.WorldCamera.SetFarClippingPlane(cfg.Camera.Far)
	if cfg.Buffer.Topology == state.quad.Topology() && cfg.Buffer.Usage == state.quad.Usage() {
		return nil
	}
	return g.buildQuad(cfg.Buffer)
}

func (g *TestGame) Shutdown() error {
	state := g.state()
	if state.ctx == nil {
		return nil
	}
	if state.quad != nil {
		state.quad.Destroy()
		state.quad = nil
	}
	if state.program != driver.NoProgram {
		state.ctx.Backend.DeleteProgram(state.program)
		state.program = driver.NoProgram
	}
	state.ctx.Cameras.Release(worldCamera)
	return nil
}
