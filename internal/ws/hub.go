package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cardnews/cardnews-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "cardnews:activity"

// Activity event types
const (
	EventCommentCreated = "comment.created"
	EventLikeCreated    = "like.created"
)

// Event activity on a work, pushed to the work's author
type Event struct {
	Type    string      `json:"type"`
	WorkID  string      `json:"workId"`
	ActorID string      `json:"actorId"`
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub manages WebSocket clients and fans events out to them.
// With Redis configured, events published on one instance reach clients on all of them.
type Hub struct {
	// connected clients grouped by user ID
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *targetedEvent
	done       chan struct{}

	mu          sync.RWMutex
	redisClient *redis.Client
}

type targetedEvent struct {
	UserID string `json:"userId"`
	Event  *Event `json:"event"`
}

// NewHub creates a new Hub; redisClient may be nil for a single instance
func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		clients:     make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *targetedEvent, 256),
		done:        make(chan struct{}),
		redisClient: redisClient,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount number of connected clients for a user
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Run starts the hub's main loop and returns when ctx is done
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	if h.redisClient != nil {
		go h.subscribeRedis(ctx)
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.deliver(msg)

		case <-ctx.Done():
			h.mu.Lock()
			for _, clients := range h.clients {
				for client := range clients {
					h.remove(client)
				}
			}
			h.mu.Unlock()
			return nil
		}
	}
}

// remove must be called with mu held
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; ok {
		delete(clients, client)
		close(client.send)
		if len(clients) == 0 {
			delete(h.clients, client.userID)
		}
	}
}

func (h *Hub) deliver(msg *targetedEvent) {
	data, err := json.Marshal(msg.Event)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients[msg.UserID] {
		select {
		case client.send <- data:
		default:
			// slow consumer
			h.remove(client)
		}
	}
}

// Publish sends an event to every connection of userID (local + Redis publish)
func (h *Hub) Publish(ctx context.Context, userID string, event *Event) {
	if userID == "" || event == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}

	if h.redisClient != nil {
		data, err := json.Marshal(&targetedEvent{UserID: userID, Event: event})
		if err == nil {
			if err := h.redisClient.Publish(ctx, redisPubSubChannel, data).Err(); err == nil {
				// delivered locally by our own subscription
				return
			}
			logger.GetLogger().Warn().Err(err).Msg("activity publish failed, delivering locally")
		}
	}

	select {
	case h.broadcast <- &targetedEvent{UserID: userID, Event: event}:
	default:
		logger.GetLogger().Warn().Str("user_id", userID).Msg("activity queue full, event dropped")
	}
}

// subscribeRedis forwards events from every instance (this one included) to local clients
func (h *Hub) subscribeRedis(ctx context.Context) {
	pubsub := h.redisClient.Subscribe(ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var te targetedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &te); err != nil || te.Event == nil {
				continue
			}
			select {
			case h.broadcast <- &te:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
