package testbed

import (
	"github.com/spaghettifunk/hello-triangle/engine"
	"github.com/spaghettifunk/hello-triangle/engine/core"
)

// statusInterval is how often, in seconds, the testbed reports its uptime.
const statusInterval = 5.0

type TestGame struct {
	*engine.Game
}

type gameState struct {
	frames     uint64
	elapsed    float64
	lastStatus float64

	width  uint32
	height uint32
}

func NewTestGame(config *engine.ApplicationConfig) (*TestGame, error) {
	if config == nil {
		config = engine.DefaultApplicationConfig()
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Initialize() error {
	core.LogInfo("testbed initialized, press R to reload the shaders and Escape to quit")
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.frames++
	state.elapsed += deltaTime

	if state.elapsed-state.lastStatus >= statusInterval {
		state.lastStatus = state.elapsed
		core.LogInfo("%d frames drawn in %.1fs", state.frames, state.elapsed)
	}
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)

	state.width = width
	state.height = height

	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	core.LogInfo("testbed shutting down after %d frames", state.frames)
	return nil
}
