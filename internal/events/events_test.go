package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishInOrder(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(func(e ContentChanged) { got = append(got, "first:"+e.Content) })
	bus.Subscribe(func(e ContentChanged) { got = append(got, "second:"+e.Content) })

	bus.Publish(ContentChanged{Page: "home", Section: "hero", Content: "New headline"})

	assert.Equal(t, []string{"first:New headline", "second:New headline"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := bus.Subscribe(func(ContentChanged) { calls++ })
	other := 0
	bus.Subscribe(func(ContentChanged) { other++ })

	bus.Publish(ContentChanged{})
	unsubscribe()
	unsubscribe()
	bus.Publish(ContentChanged{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestBus_HandlerMaySubscribe(t *testing.T) {
	bus := NewBus()

	bus.Subscribe(func(ContentChanged) {
		bus.Subscribe(func(ContentChanged) {})
	})

	assert.NotPanics(t, func() { bus.Publish(ContentChanged{}) })
}

func TestContentChanged_ID(t *testing.T) {
	assert.Equal(t, "home:hero", ContentChanged{Page: "home", Section: "hero"}.ID())
}
