package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"learner-account-be/internal/dto"
	"learner-account-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "delete_account_state"

// Hub fans deletion flow snapshots out to every live connection of a user.
// With Redis configured, snapshots produced on one instance reach clients
// connected to any other instance.
type Hub struct {
	// UserId -> clients (multi-device)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	// done is closed once Run returns; nothing reads register or unregister after that
	done     chan struct{}
	doneOnce sync.Once

	mu sync.RWMutex

	rdb *redis.Client
	// id tags redis messages so an instance skips its own publishes
	id string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		id:         uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer h.doneOnce.Do(func() { close(h.done) })

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserId] = append(h.clients[client.UserId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserId})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.UserId]
			for i, c := range clients {
				if c == client {
					h.clients[client.UserId] = append(clients[:i], clients[i+1:]...)
					close(client.Send)
					break
				}
			}
			if len(h.clients[client.UserId]) == 0 {
				delete(h.clients, client.UserId)
				h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserId})
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a client. It reports false when the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client; after the hub has stopped it is a no-op.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ConnectedClients returns how many local connections a user has.
func (h *Hub) ConnectedClients(userId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userId])
}

func EncodeState(state dto.FlowStateMessage) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "delete_account_state",
		"data": state,
	})
	return data
}

// SendState delivers a snapshot locally and publishes it for other instances.
func (h *Hub) SendState(userId string, state dto.FlowStateMessage) {
	data := EncodeState(state)

	h.deliverLocal(userId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{TargetUserId: userId, Origin: h.id, Message: data})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish state to redis", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (h *Hub) deliverLocal(userId string, data []byte) {
	var stale []*Client

	h.mu.RLock()
	for _, client := range h.clients[userId] {
		select {
		case client.Send <- data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{"user_id": userId})
		go h.Unregister(client)
	}
}

type clusterMessage struct {
	TargetUserId string          `json:"target_user_id"`
	Origin       string          `json:"origin"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		// already delivered locally by SendState
		if payload.Origin == h.id {
			continue
		}
		h.deliverLocal(payload.TargetUserId, payload.Message)
	}
}
