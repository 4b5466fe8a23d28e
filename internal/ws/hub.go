package ws

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/internal/models"
	"github.com/studybuddy/backend/internal/repositories"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, validate origin
		return true
	},
}

// Hub owns the connection registry and the room subscriptions. It is injected
// rather than process-global and stops when the context passed to Run is
// cancelled.
type Hub struct {
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
	// clients holds every open connection, joined to a room or not.
	clients map[*Client]bool
	// users maps a user ID to its single active connection ID. A later
	// register_user for the same user silently overwrites the earlier one.
	users map[string]string
	// rooms maps a room name to its subscribed connections. There is no
	// membership list beyond this and no check that subscribers are the
	// room's named participants.
	rooms map[string]map[*Client]bool

	messages repositories.MessageRepository
	log      *zap.Logger
}

// NewHub creates a Hub. Messages relayed through send_message are persisted
// via the given repository as a side effect of broadcast.
func NewHub(messages repositories.MessageRepository, log *zap.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		users:      make(map[string]string),
		rooms:      make(map[string]map[*Client]bool),
		messages:   messages,
		log:        log,
	}
}

// Run processes connection lifecycle events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.Info("user connected", zap.String("conn", client.connID))

		case client := <-h.unregister:
			h.removeClient(client)
			close(client.send)
			h.log.Info("user disconnected", zap.String("conn", client.connID))

		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// HandleWebSocket upgrades the request and starts the client pumps
func (h *Hub) HandleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", zap.Error(err))
		return err
	}

	client := newClient(h, conn)
	h.register <- client

	go client.writePump()
	go client.readPump()
	return nil
}

// IsUserOnline reports whether a user currently has a registered connection
func (h *Hub) IsUserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.users[userID]
	return ok
}

// ConnectionID returns the active connection ID for a user, if any
func (h *Hub) ConnectionID(userID string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	id, ok := h.users[userID]
	return id, ok
}

func (h *Hub) registerUser(client *Client, userID string) {
	h.mu.Lock()
	h.users[userID] = client.connID
	client.userID = userID
	h.mu.Unlock()
	h.log.Info("user registered",
		zap.String("user", userID),
		zap.String("conn", client.connID))
}

func (h *Hub) joinRoom(client *Client, room string) {
	h.mu.Lock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	client.rooms[room] = true
	h.mu.Unlock()
	h.log.Info("joined room",
		zap.String("room", room),
		zap.String("conn", client.connID))
}

// broadcastToRoom delivers an envelope to every room subscriber except the
// sender. Clients whose send buffer is full are skipped; there is no retry
// and no delivery guarantee for absent recipients.
func (h *Hub) broadcastToRoom(room string, sender *Client, env *Envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[room] {
		if client == sender {
			continue
		}
		select {
		case client.send <- env:
		default:
			h.log.Warn("send buffer full, dropping event",
				zap.String("conn", client.connID),
				zap.String("event", env.Event))
		}
	}
}

// persistMessage writes the relayed message. Only sender, content, type and
// image URL are recorded; the receiver is left unset, so relay-originated
// messages do not appear in the paired REST history query. That mirrors the
// original backend.
func (h *Hub) persistMessage(payload *SendMessagePayload) (*models.Message, error) {
	senderID, err := primitive.ObjectIDFromHex(payload.SenderID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		Sender:      senderID,
		Content:     payload.Message,
		MessageType: payload.MessageType,
		ImageURL:    payload.ImageURL,
	}
	if err := h.messages.CreateMessage(context.Background(), msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
	for room := range client.rooms {
		if subscribers, ok := h.rooms[room]; ok {
			delete(subscribers, client)
			if len(subscribers) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	// Drop the registry entry only if it still points at this connection;
	// the user may have re-registered from a newer one.
	if client.userID != "" && h.users[client.userID] == client.connID {
		delete(h.users, client.userID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.conn.Close()
	}
	h.clients = make(map[*Client]bool)
	h.rooms = make(map[string]map[*Client]bool)
	h.users = make(map[string]string)
}
