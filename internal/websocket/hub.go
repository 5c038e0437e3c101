package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"cassie-be/internal/dto"
	"cassie-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel carries notifications between instances.
const ClusterChannel = "cassie_cluster_events"

const hubModule = "Hub"

// clusterMessage is the payload on ClusterChannel. Origin lets an instance
// skip what it already delivered locally.
type clusterMessage struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

type Hub struct {
	instanceId string

	// UserID -> clients (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client
	// closed when Run returns
	done chan struct{}

	mu sync.RWMutex

	// nil keeps delivery local to this instance
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		instanceId: uuid.NewString(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

// Run owns client registration until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = append(h.clients[client.userID], client)
			h.mu.Unlock()
			h.logger.Info(hubModule, "Client registered", map[string]interface{}{"user_id": client.userID})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.userID]
			for i, c := range clients {
				if c == client {
					h.clients[client.userID] = append(clients[:i], clients[i+1:]...)
					close(client.send)
					break
				}
			}
			if len(h.clients[client.userID]) == 0 {
				delete(h.clients, client.userID)
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount reports the local connections of a user.
func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Send implements service.NotificationDelivery.
func (h *Hub) Send(userID uuid.UUID, notification dto.NotificationResponse) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	if err != nil {
		h.logger.Error(hubModule, "Failed to encode notification", map[string]interface{}{"error": err})
		return
	}

	h.deliverLocal(userID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{
			Origin:       h.instanceId,
			TargetUserID: userID.String(),
			Message:      data,
		})
		if err := h.rdb.Publish(context.Background(), ClusterChannel, payload).Err(); err != nil {
			h.logger.Warn(hubModule, "Cluster publish failed", map[string]interface{}{"error": err})
		}
	}
}

// enqueue hands c to Run. It gives up once Run has returned.
func (h *Hub) enqueue(ch chan<- *Client, c *Client) bool {
	select {
	case ch <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) deliverLocal(userID uuid.UUID, data []byte) {
	// Held across the sends so unregister cannot close a channel mid-send.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.send <- data:
		default:
			h.logger.Warn(hubModule, "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
			go h.enqueue(h.unregister, client)
		}
	}
}

func (h *Hub) handleClusterMessage(raw string) {
	var msg clusterMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		h.logger.Warn(hubModule, "Malformed cluster message", map[string]interface{}{"error": err})
		return
	}
	if msg.Origin == h.instanceId {
		return
	}

	uid, err := uuid.Parse(msg.TargetUserID)
	if err != nil {
		return
	}
	h.deliverLocal(uid, msg.Message)
}

// subscribeToRedis forwards notifications published by other instances to
// this instance's clients.
func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleClusterMessage(msg.Payload)
		}
	}
}
