package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()

	bus.Publish("hello")
	select {
	case ev := <-sub:
		assert.Equal(t, "hello", ev)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestFanOut(t *testing.T) {
	bus := New()
	a := bus.Subscribe()
	b := bus.Subscribe()

	bus.Publish(42)
	assert.Equal(t, 42, <-a)
	assert.Equal(t, 42, <-b)
}

func TestNonBlockingDelivery(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()

	// overflow the buffered channel; extra events are dropped silently
	for i := 0; i < 20; i++ {
		bus.Publish(i)
	}
	bus.Close()

	var got []Event
	for ev := range sub {
		got = append(got, ev)
	}
	require.Len(t, got, 8)
	assert.Equal(t, 0, got[0])
	assert.Equal(t, 7, got[7])
}

func TestUnsubscribe(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()
	bus.Unsubscribe(sub)

	_, open := <-sub
	assert.False(t, open)

	// publishing after unsubscribe must not panic
	bus.Publish("ignored")
}

func TestClose(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()
	bus.Close()

	_, open := <-sub
	assert.False(t, open)

	// idempotent close and post-close operations are safe
	bus.Close()
	bus.Publish("ignored")

	late := bus.Subscribe()
	_, open = <-late
	assert.False(t, open)
}
