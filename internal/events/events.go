// Package events carries typed change notifications between services.
package events

import (
	"sync"
	"time"
)

// ContentChanged is published after a content block has been persisted.
type ContentChanged struct {
	Page      string
	Section   string
	Language  string
	Content   string
	ChangedAt time.Time
}

// ID identifies the block the way the editor widgets address it.
func (e ContentChanged) ID() string {
	return e.Page + ":" + e.Section
}

type Handler func(ContentChanged)

// Bus delivers events synchronously, in subscription order.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers []subscription
}

type subscription struct {
	id int
	fn Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a func that removes it.
func (b *Bus) Subscribe(fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			for i, s := range b.handlers {
				if s.id == id {
					b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
					return
				}
			}
		})
	}
}

func (b *Bus) Publish(e ContentChanged) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	for i, s := range b.handlers {
		handlers[i] = s.fn
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(e)
	}
}
