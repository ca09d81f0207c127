package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/hello-triangle/engine/core"
)

func TestTranslateKey(t *testing.T) {
	if got := TranslateKey(glfw.KeyEscape); got != core.KeyEscape {
		t.Errorf("escape = %#x", got)
	}
	if got := TranslateKey(glfw.KeyF7); got != core.KeyUnknown {
		t.Errorf("F7 = %#x, want unknown", got)
	}
}

func TestSystemEventCodeForAction(t *testing.T) {
	tests := map[glfw.Action]core.SystemEventCode{
		glfw.Press:   core.EventCodeKeyPressed,
		glfw.Release: 0,
		glfw.Repeat:  0,
	}
	for action, want := range tests {
		if got := SystemEventCodeForAction(action); got != want {
			t.Errorf("action %d: got %d, want %d", action, got, want)
		}
	}
}
