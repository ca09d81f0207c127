package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/spaghettifunk/hello-triangle/engine/assets"
	"github.com/spaghettifunk/hello-triangle/engine/core"
	"github.com/spaghettifunk/hello-triangle/engine/platform"
	"github.com/spaghettifunk/hello-triangle/engine/renderer"
	"github.com/spaghettifunk/hello-triangle/engine/renderer/opengl"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// Window is what the engine needs from the platform layer.
type Window interface {
	Startup(cfg platform.WindowConfig) error
	PumpMessages() bool
	SwapBuffers()
	RequestClose()
	FramebufferSize() (uint32, uint32)
	Shutdown() error
}

// BackendFactory creates the graphics backend once the window's context is
// current.
type BackendFactory func() (renderer.RendererBackend, error)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	window       Window
	newBackend   BackendFactory
	events       *core.EventBus
	assetManager *assets.AssetManager
	renderer     *renderer.TriangleRenderer
	clock        *core.Clock
	metrics      *core.Metrics
	width        uint32
	height       uint32
	lastTime     float64

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New wires the engine to a glfw window and the OpenGL backend.
func New(g *Game) (*Engine, error) {
	events := core.NewEventBus()
	return NewWithWindow(g, platform.New(events), func() (renderer.RendererBackend, error) {
		return opengl.New()
	}, events)
}

// NewWithWindow lets callers supply the window and backend.
func NewWithWindow(g *Game, w Window, newBackend BackendFactory, events *core.EventBus) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game and application config are required")
	}
	if err := g.ApplicationConfig.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		window:       w,
		newBackend:   newBackend,
		events:       events,
		assetManager: assets.NewAssetManager(),
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}, nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// Initialize opens the window, loads the shaders and builds the triangle
// renderer. A shader compile or link failure is returned as is and leaves the
// engine uninitialized.
func (e *Engine) Initialize() (err error) {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine cannot initialize in stage %s", e.currentStage)
	}
	e.currentStage = EngineStageInitializing
	defer func() {
		if err != nil {
			e.currentStage = EngineStageUninitialized
		}
	}()
	cfg := e.gameInstance.ApplicationConfig
	core.SetLogLevel(cfg.Level())

	e.events.Register(core.EventCodeApplicationQuit, e.onQuit)
	e.events.Register(core.EventCodeKeyPressed, e.onKey)
	e.events.Register(core.EventCodeResized, e.onResized)

	if err := e.window.Startup(platform.WindowConfig{
		Name:   cfg.Name,
		X:      cfg.StartPosX,
		Y:      cfg.StartPosY,
		Width:  cfg.StartWidth,
		Height: cfg.StartHeight,
		VSync:  cfg.VSync,
	}); err != nil {
		return err
	}

	backend, err := e.newBackend()
	if err != nil {
		return err
	}

	watch := cfg.HotReload && cfg.AssetsDir != ""
	if err := e.assetManager.Initialize(cfg.AssetsDir, watch); err != nil {
		return err
	}
	shaderConfig, err := e.assetManager.LoadShaderConfig(cfg.Shader)
	if err != nil {
		return err
	}

	e.renderer = renderer.New(backend, shaderConfig, renderer.WithClearColour(cfg.Colour()))
	if err := e.renderer.Initialize(); err != nil {
		return err
	}

	w, h := e.window.FramebufferSize()
	if w != 0 && h != 0 {
		e.width, e.height = w, h
	}
	e.renderer.Resized(e.width, e.height)

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("engine initialized (%dx%d, shader %q)", e.width, e.height, cfg.Shader)
	return nil
}

// Run drives the triangle renderer until ctx is done, the window is closed or
// the game asks to quit. It must be called from the thread that initialized
// the engine.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine cannot run in stage %s", e.currentStage)
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()

	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	onLoopStart := func() {
		if !e.window.PumpMessages() {
			cancel()
		}
		e.reloadChangedShaders()

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		e.lastTime = currentTime

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed, shutting down: %s", err)
				cancel()
			}
		}
		if e.metrics.Update(delta) {
			fps, ms := e.metrics.Frame()
			core.LogDebug("%.0f fps (%.2f ms/frame)", fps, ms)
		}
	}
	onLoopEnd := func() {
		e.window.SwapBuffers()
	}

	err := e.renderer.DrawTriangle(runCtx, onLoopStart, onLoopEnd)
	e.clock.Stop()
	e.currentStage = EngineStageInitialized
	return err
}

// Stop ends Run after the frame in progress. Safe to call from any goroutine.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

// Shutdown releases the GPU objects and closes the window. It must run on the
// thread owning the graphics context.
func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}
	if e.renderer != nil {
		e.renderer.Release()
	}
	e.events.Shutdown()
	if err := e.assetManager.Shutdown(); err != nil {
		core.LogWarn(err.Error())
	}
	return e.window.Shutdown()
}

// GetFramebufferSize returns the width and height (in this order) of the
// application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

// reloadChangedShaders rebuilds the program when the configured shader changed
// on disk. It never blocks.
func (e *Engine) reloadChangedShaders() {
	name := e.gameInstance.ApplicationConfig.Shader
	changed := false
	for drained := false; !drained; {
		select {
		case n, ok := <-e.assetManager.Changes():
			if !ok {
				drained = true
			}
			changed = changed || (ok && n == name)
		default:
			drained = true
		}
	}
	if changed {
		e.reloadShader()
	}
}

func (e *Engine) reloadShader() {
	if e.renderer == nil {
		return
	}
	name := e.gameInstance.ApplicationConfig.Shader
	cfg, err := e.assetManager.LoadShaderConfig(name)
	if err != nil {
		core.LogError("shader %q not reloaded: %s", name, err)
		return
	}
	if err := e.renderer.ReloadProgram(cfg); err != nil {
		core.LogError("shader %q not reloaded, keeping the previous program: %s", name, err)
	}
}

func (e *Engine) onQuit(ctx core.EventContext) bool {
	core.LogInfo("application quit received, shutting down")
	e.window.RequestClose()
	e.Stop()
	return true
}

func (e *Engine) onKey(ctx core.EventContext) bool {
	ke, ok := ctx.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	switch ke.KeyCode {
	case core.KeyEscape, core.KeyQ:
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EventContext{Type: core.EventCodeApplicationQuit})
		return true
	case core.KeyR:
		e.reloadShader()
		return true
	}
	return false
}

func (e *Engine) onResized(ctx core.EventContext) bool {
	re, ok := ctx.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	if re.Width == e.width && re.Height == e.height {
		return true
	}
	// Minimized windows report 0x0; keep the last size.
	if re.Width == 0 || re.Height == 0 {
		return true
	}
	e.width, e.height = re.Width, re.Height
	core.LogDebug("window resize: %d, %d", e.width, e.height)
	if e.renderer != nil {
		e.renderer.Resized(e.width, e.height)
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			core.LogError(err.Error())
		}
	}
	return true
}
