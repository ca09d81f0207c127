package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/hello-triangle/engine/core"
)

var keyMap = map[glfw.Key]core.KeyCode{
	glfw.KeyEscape: core.KeyEscape,
	glfw.KeyEnter:  core.KeyEnter,
	glfw.KeySpace:  core.KeySpace,
	glfw.KeyQ:      core.KeyQ,
	glfw.KeyR:      core.KeyR,
}

// TranslateKey maps a glfw key to the engine key code, KeyUnknown when the
// engine has no use for it.
func TranslateKey(key glfw.Key) core.KeyCode {
	if k, ok := keyMap[key]; ok {
		return k
	}
	return core.KeyUnknown
}

// SystemEventCodeForAction returns the event fired for a key action. Only
// presses are reported; releases and repeats map to 0.
func SystemEventCodeForAction(action glfw.Action) core.SystemEventCode {
	if action == glfw.Press {
		return core.EventCodeKeyPressed
	}
	return 0
}
