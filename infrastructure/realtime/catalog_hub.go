package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// CatalogEvent is an SSE payload announcing that a collection snapshot
// changed. Data carries the fresh snapshot where cheap (user data,
// playlists); list collections send only the name and let the UI refetch.
type CatalogEvent struct {
	Type       string      `json:"type"`
	Collection string      `json:"collection"`
	Data       interface{} `json:"data,omitempty"`
}

// Hub maintains per-user subscribers listening for catalog change events.
type Hub struct {
	mu    sync.RWMutex
	users map[string]map[chan CatalogEvent]struct{}
}

func NewCatalogHub() *Hub {
	return &Hub{users: make(map[string]map[chan CatalogEvent]struct{})}
}

// Serve registers an SSE stream for the user (user_id set by middleware).
func (h *Hub) Serve(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	ch := make(chan CatalogEvent, 8)
	h.addSubscriber(userID, ch)
	defer h.removeSubscriber(userID, ch)

	// Initial comment to keep connection open
	c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	for {
		select {
		case evt := <-ch:
			data, _ := json.Marshal(evt)
			_, _ = c.Writer.Write([]byte("event: catalog\n"))
			_, _ = c.Writer.Write([]byte("data: "))
			_, _ = c.Writer.Write(data)
			_, _ = c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *Hub) addSubscriber(userID string, ch chan CatalogEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[userID] == nil {
		h.users[userID] = make(map[chan CatalogEvent]struct{})
	}
	h.users[userID][ch] = struct{}{}
}

func (h *Hub) removeSubscriber(userID string, ch chan CatalogEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs := h.users[userID]; subs != nil {
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(h.users, userID)
		}
	}
}

// Broadcast sends a collection-change event to all subscribers of the user.
func (h *Hub) Broadcast(userID, collection string, data interface{}) {
	evt := CatalogEvent{
		Type:       "collection_changed",
		Collection: collection,
		Data:       data,
	}
	h.mu.RLock()
	subs := h.users[userID]
	for ch := range subs {
		select { // non-blocking
		case ch <- evt:
		default:
		}
	}
	h.mu.RUnlock()
}
