// Package events is a same-process broadcast channel for UI-wide notifications
// such as theme changes.
package events

import (
	"sync"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// Event is any notification published on a Bus.
type Event interface {
	Topic() string
}

// ThemeChanged is published whenever the active theme is set.
type ThemeChanged struct {
	Theme string
}

func (ThemeChanged) Topic() string { return "themechange" }

// Handler receives published events.
type Handler func(Event)

// Bus fans every published event out to all current subscribers.
type Bus struct {
	logger *zap.Logger

	mu     sync.RWMutex
	nextID int
	subs   map[int]Handler
}

func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{logger: logger, subs: map[int]Handler{}}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers ev to every subscriber and returns once all handlers ran.
// A panicking handler is logged and does not affect the others.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	var wg conc.WaitGroup
	for _, fn := range handlers {
		fn := fn
		wg.Go(func() { fn(ev) })
	}
	if recovered := wg.WaitAndRecover(); recovered != nil {
		b.logger.Warn("event handler panicked", zap.String("topic", ev.Topic()), zap.Error(recovered.AsError()))
	}
}

// Len reports the number of subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
