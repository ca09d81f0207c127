package testbed

import (
	"testing"

	"github.com/spaghettifunk/hello-triangle/engine"
)

func TestNewTestGameDefaults(t *testing.T) {
	tg, err := NewTestGame(nil)
	if err != nil {
		t.Fatal(err)
	}
	if tg.ApplicationConfig.Name != engine.DefaultApplicationConfig().Name {
		t.Errorf("name = %q", tg.ApplicationConfig.Name)
	}
	if tg.FnInitialize == nil || tg.FnUpdate == nil || tg.FnOnResize == nil || tg.FnShutdown == nil {
		t.Fatal("every hook must be wired")
	}
}

func TestUpdateCountsFrames(t *testing.T) {
	tg, _ := NewTestGame(nil)
	for i := 0; i < 12; i++ {
		if err := tg.Update(0.5); err != nil {
			t.Fatal(err)
		}
	}
	state := tg.State.(*gameState)
	if state.frames != 12 || state.elapsed != 6 {
		t.Fatalf("frames=%d elapsed=%v", state.frames, state.elapsed)
	}
	if state.lastStatus != 5 {
		t.Errorf("lastStatus = %v, want 5", state.lastStatus)
	}
}

func TestOnResize(t *testing.T) {
	tg, _ := NewTestGame(nil)
	if err := tg.OnResize(1024, 768); err != nil {
		t.Fatal(err)
	}
	state := tg.State.(*gameState)
	if state.width != 1024 || state.height != 768 {
		t.Fatalf("size = %dx%d", state.width, state.height)
	}
}
