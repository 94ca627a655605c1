// Package events is the in-process domain event bus. Services emit after a
// successful write; the realtime gateway listens.
package events

import (
	"fmt"
	"log/slog"
	"sync"
)

type Handler func(payload any)

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// On registers a handler for name. Handlers run in registration order.
func (b *Bus) On(name string, h Handler) {
	b.mu.Lock()
	b.handlers[name] = append(b.handlers[name], h)
	b.mu.Unlock()
}

// Emit delivers synchronously to every handler registered for name. A
// panicking handler is logged and does not affect the others or the caller.
func (b *Bus) Emit(name string, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[name]))
	copy(handlers, b.handlers[name])
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(name, h, payload)
	}
}

func (b *Bus) dispatch(name string, h Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked", "event", name, "panic", fmt.Sprint(r))
		}
	}()
	h(payload)
}
