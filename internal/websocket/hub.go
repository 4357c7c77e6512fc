package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"champ-voting-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub fans live view frames out to every connected viewer. Voting is a
// shared-screen experience, so every frame goes to every client; there is
// no per-user routing.
type Hub struct {
	// Registered clients keyed by connection id
	clients map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Identifies this process on the redis channel so its own frames are
	// not replayed back to it.
	instanceID string

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, instanceID string, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]*Client),
		rdb:        rdb,
		instanceID: instanceID,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{
				"client_id": client.ID,
				"user_id":   client.UserID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{
					"client_id": client.ID,
				})
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastFrame sends a typed frame to every connected client on every
// instance.
func (h *Hub) BroadcastFrame(frameType string, data interface{}) {
	payload, err := json.Marshal(map[string]interface{}{
		"type": frameType,
		"data": data,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to serialize frame", map[string]interface{}{
			"type":  frameType,
			"error": err.Error(),
		})
		return
	}

	h.broadcastLocal(payload)

	// Mirror to other instances
	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"origin":  h.instanceID,
			"message": json.RawMessage(payload),
		})
		h.rdb.Publish(context.Background(), "cluster_events", envelope)
	}
}

// BroadcastLocalFrame sends a typed frame to this instance's clients only.
// Used for frames every instance produces on its own, where a redis mirror
// would only duplicate them.
func (h *Hub) BroadcastLocalFrame(frameType string, data interface{}) {
	payload, err := json.Marshal(map[string]interface{}{
		"type": frameType,
		"data": data,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to serialize frame", map[string]interface{}{
			"type":  frameType,
			"error": err.Error(),
		})
		return
	}
	h.broadcastLocal(payload)
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{
				"client_id": client.ID,
			})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var envelope struct {
			Origin  string          `json:"origin"`
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		// Our own frames already went to local clients.
		if envelope.Origin == h.instanceID {
			continue
		}

		h.broadcastLocal(envelope.Message)
	}
}
