package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"ride-tracker-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	feedWriteTimeout = 5 * time.Second
	feedQueueSize    = 256
)

var errNotSubscribed = errors.New("connection is not a feed subscriber")

// FeedMessage represents a message pushed to feed subscribers
type FeedMessage struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// FeedHub fans newly saved activities out to websocket subscribers
type FeedHub struct {
	mu sync.RWMutex
	// each connection carries its own write lock; websocket allows one writer at a time
	clients map[*websocket.Conn]*sync.Mutex

	queue     chan FeedMessage
	done      chan struct{}
	closeOnce sync.Once
}

// NewFeedHub creates a feed hub and starts its delivery loop
func NewFeedHub() *FeedHub {
	h := &FeedHub{
		clients: make(map[*websocket.Conn]*sync.Mutex),
		queue:   make(chan FeedMessage, feedQueueSize),
		done:    make(chan struct{}),
	}
	go h.run()
	return h
}

// run delivers queued messages one at a time, in publish order
func (h *FeedHub) run() {
	for {
		select {
		case <-h.done:
			return
		case msg := <-h.queue:
			h.Broadcast(msg)
		}
	}
}

// Register adds a subscriber
func (h *FeedHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	total := len(h.clients)
	h.mu.Unlock()

	log.Info().Str("remote_addr", conn.RemoteAddr().String()).Int("subscribers", total).Msg("Feed subscriber registered")
}

// Unregister closes and removes a subscriber
func (h *FeedHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[conn]; exists {
		conn.Close()
		delete(h.clients, conn)
		log.Info().Str("remote_addr", conn.RemoteAddr().String()).Msg("Feed subscriber unregistered")
	}
}

// Count returns the number of connected subscribers
func (h *FeedHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send writes a message to one registered subscriber
func (h *FeedHub) Send(conn *websocket.Conn, message FeedMessage) error {
	h.mu.RLock()
	writeMu, ok := h.clients[conn]
	h.mu.RUnlock()
	if !ok {
		return errNotSubscribed
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Broadcast sends a message to every subscriber concurrently, dropping the
// ones that fail. It returns once every write has finished.
func (h *FeedHub) Broadcast(message FeedMessage) {
	if message.Timestamp == 0 {
		message.Timestamp = time.Now().UnixMilli()
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	var wg sync.WaitGroup
	for _, conn := range conns {
		wg.Add(1)
		go func(conn *websocket.Conn) {
			defer wg.Done()
			if err := h.Send(conn, message); err != nil && !errors.Is(err, errNotSubscribed) {
				log.Error().Err(err).Str("remote_addr", conn.RemoteAddr().String()).Msg("Failed to push feed message")
				h.Unregister(conn)
			}
		}(conn)
	}
	wg.Wait()
}

// PublishActivity implements ActivityPublisher. Private activities stay off
// the feed. Messages are queued for the delivery loop so the request that
// saved the activity never waits on subscribers; a full queue drops the message.
func (h *FeedHub) PublishActivity(a *models.Activity) {
	if a.Private {
		return
	}
	msg := FeedMessage{
		Type:      "activity_created",
		Timestamp: time.Now().UnixMilli(),
		Data:      a,
	}

	select {
	case <-h.done:
	case h.queue <- msg:
	default:
		log.Warn().Str("activity_id", a.ID).Msg("Feed queue full, activity not pushed")
	}
}

// Close stops the delivery loop and disconnects every subscriber
func (h *FeedHub) Close() {
	h.closeOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(h.clients, conn)
	}
}
