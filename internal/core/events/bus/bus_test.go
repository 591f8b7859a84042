package bus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New()

	var got []Event
	b.Subscribe("chunk.loaded", func(e Event) { got = append(got, e) })

	b.Publish(NewEvent("chunk.loaded", "test", 42))
	b.Publish(NewEvent("chunk.disposed", "test", nil))

	require.Len(t, got, 1)
	require.Equal(t, "chunk.loaded", got[0].Type)
	require.Equal(t, "test", got[0].Source)
	require.Equal(t, 42, got[0].Data)
	require.False(t, got[0].Timestamp.IsZero())
}

func TestMultipleSubscribersFanOut(t *testing.T) {
	b := New()

	a, c := 0, 0
	b.Subscribe("tick", func(Event) { a++ })
	b.Subscribe("tick", func(Event) { c++ })

	b.Publish(NewEvent("tick", "test", nil))
	require.Equal(t, 1, a)
	require.Equal(t, 1, c)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()

	n := 0
	sub := b.Subscribe("tick", func(Event) { n++ })
	b.Publish(NewEvent("tick", "test", nil))

	sub.Cancel()
	b.Publish(NewEvent("tick", "test", nil))
	require.Equal(t, 1, n)

	// Cancel is idempotent.
	sub.Cancel()
}

func TestPublishWithoutSubscribers(t *testing.T) {
	b := New()
	b.Publish(NewEvent("nobody.listens", "test", nil))
}
