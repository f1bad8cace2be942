package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/game-economy/internal/domain"
	"github.com/game-economy/internal/engine"
)

// Message represents a server-to-client frame
type Message struct {
	Event     string    `json:"event"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Envelope represents a client-to-server frame
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Dispatcher receives inbound events and connection notifications. The
// engine implements it; the hub never touches game state itself.
type Dispatcher interface {
	ClientConnected(clientID string)
	HandleEvent(clientID, event string, data json.RawMessage)
}

var _ engine.Broadcaster = (*Hub)(nil)
var _ Dispatcher = (*engine.Engine)(nil)

// outboundMessage targets one client by id, or every client when the id
// is empty
type outboundMessage struct {
	clientID string
	message  *Message
}

// Hub maintains the set of active clients and routes outbound frames
type Hub struct {
	// Registered clients by connection ID
	clients map[string]*Client

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Outbound frames from the engine
	outbound chan *outboundMessage

	// Inbound event sink, set after construction to break the
	// hub/engine construction cycle
	dispatcher Dispatcher

	// Maximum inbound frame size in bytes
	maxMessageBytes int64

	// Mutex for thread-safe operations
	mu sync.RWMutex

	// Logger
	logger *slog.Logger

	// Context for shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a new Hub
func NewHub(maxMessageBytes int64, logger *slog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:         make(map[string]*Client),
		register:        make(chan *Client),
		unregister:      make(chan *Client),
		outbound:        make(chan *outboundMessage, 256),
		maxMessageBytes: maxMessageBytes,
		logger:          logger,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// SetDispatcher wires the inbound event sink. Must be called before Run.
func (h *Hub) SetDispatcher(d Dispatcher) {
	h.dispatcher = d
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	h.logger.Info("WebSocket hub started")
	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info("WebSocket hub stopping")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()
			h.logger.Debug("client registered", "client_id", client.id)
			// The new client gets one full snapshot before any deltas
			if h.dispatcher != nil {
				h.dispatcher.ClientConnected(client.id)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("client unregistered", "client_id", client.id)

		case out := <-h.outbound:
			h.deliver(out)
		}
	}
}

// Stop stops the hub
func (h *Hub) Stop() {
	h.cancel()
}

// deliver marshals a frame and hands it to the per-client send buffers.
// Delivery is fire-and-forget: a full buffer drops the frame for that
// client without affecting anyone else.
func (h *Hub) deliver(out *outboundMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(out.message)
	if err != nil {
		h.logger.Error("failed to marshal message", "event", out.message.Event, "error", err)
		return
	}

	if out.clientID != "" {
		client, ok := h.clients[out.clientID]
		if !ok {
			return
		}
		select {
		case client.send <- data:
		default:
			h.logger.Warn("client buffer full, skipping", "client_id", client.id)
		}
		return
	}

	for _, client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn("client buffer full, skipping", "client_id", client.id)
		}
	}
}

// enqueue pushes an outbound frame, dropping it when the hub is saturated
func (h *Hub) enqueue(clientID, event string, payload any) {
	out := &outboundMessage{
		clientID: clientID,
		message: &Message{
			Event:     event,
			Data:      payload,
			Timestamp: time.Now(),
		},
	}
	select {
	case h.outbound <- out:
	default:
		h.logger.Warn("outbound channel full, dropping message", "event", event)
	}
}

// BroadcastFull pushes the entire store snapshot to every client
func (h *Hub) BroadcastFull(snapshot domain.Snapshot) {
	h.enqueue("", domain.EventFullSync, snapshot)
}

// BroadcastCollection pushes one changed collection to every client
func (h *Hub) BroadcastCollection(c engine.Collection, payload any) {
	h.enqueue("", c.SyncEvent(), payload)
}

// SendTo addresses a single client
func (h *Hub) SendTo(clientID, event string, payload any) {
	h.enqueue(clientID, event, payload)
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// GetTotalConnections returns the total number of connected clients
func (h *Hub) GetTotalConnections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
