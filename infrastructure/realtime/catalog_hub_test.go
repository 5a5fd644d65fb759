package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastReachesUserSubscribers(t *testing.T) {
	hub := NewCatalogHub()
	ch := make(chan CatalogEvent, 8)
	hub.addSubscriber("alice", ch)
	defer hub.removeSubscriber("alice", ch)

	hub.Broadcast("alice", "videos", nil)

	select {
	case evt := <-ch:
		assert.Equal(t, "collection_changed", evt.Type)
		assert.Equal(t, "videos", evt.Collection)
	default:
		t.Fatal("expected an event")
	}
}

func TestBroadcastIsScopedToUser(t *testing.T) {
	hub := NewCatalogHub()
	ch := make(chan CatalogEvent, 8)
	hub.addSubscriber("alice", ch)
	defer hub.removeSubscriber("alice", ch)

	hub.Broadcast("bob", "videos", nil)
	assert.Empty(t, ch)
}

func TestBroadcastNeverBlocksOnFullSubscriber(t *testing.T) {
	hub := NewCatalogHub()
	ch := make(chan CatalogEvent, 1)
	hub.addSubscriber("alice", ch)
	defer hub.removeSubscriber("alice", ch)

	// Fill the buffer, then broadcast again; the slow subscriber is skipped.
	hub.Broadcast("alice", "videos", nil)
	done := make(chan struct{})
	go func() {
		hub.Broadcast("alice", "playlists", nil)
		close(done)
	}()
	<-done

	evt := <-ch
	require.Equal(t, "videos", evt.Collection)
	assert.Empty(t, ch, "second event dropped rather than blocking")
}

func TestRemoveSubscriberClosesChannel(t *testing.T) {
	hub := NewCatalogHub()
	ch := make(chan CatalogEvent, 1)
	hub.addSubscriber("alice", ch)
	hub.removeSubscriber("alice", ch)

	_, open := <-ch
	assert.False(t, open)

	// Broadcasting after removal must not panic.
	hub.Broadcast("alice", "videos", nil)
}
