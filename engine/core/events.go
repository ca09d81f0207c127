package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EventCodeApplicationQuit SystemEventCode = 0x01
	// Keyboard key pressed. Data is a *KeyEvent.
	EventCodeKeyPressed SystemEventCode = 0x02
	// Framebuffer resized. Data is a *ResizeEvent.
	EventCodeResized SystemEventCode = 0x08

	MaxEventCode SystemEventCode = 0xFF
)

type KeyCode uint16

const (
	KeyUnknown KeyCode = 0x00
	KeyEnter   KeyCode = 0x0D
	KeyEscape  KeyCode = 0x1B
	KeySpace   KeyCode = 0x20
	KeyQ       KeyCode = 0x51
	KeyR       KeyCode = 0x52
)

type KeyEvent struct {
	KeyCode KeyCode
}

type ResizeEvent struct {
	Width  uint32
	Height uint32
}

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

// Should return true if handled.
type FnOnEvent func(ctx EventContext) bool

// EventBus dispatches events synchronously to registered listeners, in
// registration order.
type EventBus struct {
	mu         sync.RWMutex
	registered map[SystemEventCode][]FnOnEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[SystemEventCode][]FnOnEvent),
	}
}

// Register adds a listener for code. Codes above MaxEventCode are reserved for
// the application and are accepted as well.
func (b *EventBus) Register(code SystemEventCode, onEvent FnOnEvent) {
	if onEvent == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registered[code] = append(b.registered[code], onEvent)
}

// Unregister drops every listener for code.
func (b *EventBus) Unregister(code SystemEventCode) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.registered[code]) == 0 {
		return false
	}
	delete(b.registered, code)
	return true
}

// Fire sends ctx to the listeners of ctx.Type. If a listener returns true the
// event is considered handled and is not passed on to any more listeners.
func (b *EventBus) Fire(ctx EventContext) bool {
	b.mu.RLock()
	listeners := append([]FnOnEvent(nil), b.registered[ctx.Type]...)
	b.mu.RUnlock()

	for _, l := range listeners {
		if l(ctx) {
			return true
		}
	}
	return false
}

// Shutdown forgets every listener.
func (b *EventBus) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registered = make(map[SystemEventCode][]FnOnEvent)
}
