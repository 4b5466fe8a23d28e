package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Client is one websocket connection. connID stands in for socket.io's
// socket.id: it is what the registry stores per user.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan *Envelope
	connID string
	userID string
	rooms  map[string]bool
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan *Envelope, 256),
		connID: uuid.NewString(),
		rooms:  make(map[string]bool),
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("websocket read error", zap.Error(err))
			}
			break
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}

		switch env.Event {
		case EventRegisterUser:
			c.handleRegisterUser(env.Data)
		case EventJoinRoom:
			c.handleJoinRoom(env.Data)
		case EventSendMessage:
			c.handleSendMessage(env.Data)
		case EventTyping:
			c.handleTyping(env.Data)
		case EventMessagesRead:
			c.handleMessagesRead(env.Data)
		}
	}
}

func (c *Client) handleRegisterUser(data json.RawMessage) {
	var payload RegisterUserPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.UserID == "" {
		return
	}
	c.hub.registerUser(c, payload.UserID)
}

func (c *Client) handleJoinRoom(data json.RawMessage) {
	var payload JoinRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.Room == "" {
		return
	}
	c.hub.joinRoom(c, payload.Room)

	env, err := envelope(EventUserJoined, UserJoinedPayload{UserID: payload.UserID})
	if err != nil {
		return
	}
	c.hub.broadcastToRoom(payload.Room, c, env)
}

// handleSendMessage persists the message and fans it out to the room. A
// failed write is logged and dropped: neither side learns about it, and the
// sender sees an apparent success.
func (c *Client) handleSendMessage(data json.RawMessage) {
	var payload SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.Room == "" || payload.SenderID == "" {
		return
	}
	if payload.MessageType == "" {
		payload.MessageType = models.MessageTypeText
	}

	msg, err := c.hub.persistMessage(&payload)
	if err != nil {
		c.hub.log.Error("error saving message", zap.Error(err))
		return
	}

	env, err := envelope(EventReceiveMessage, ReceiveMessagePayload{
		MessageID:   msg.ID.Hex(),
		SenderID:    payload.SenderID,
		Message:     payload.Message,
		Timestamp:   time.Now(),
		MessageType: msg.MessageType,
		ImageURL:    msg.ImageURL,
	})
	if err != nil {
		return
	}
	c.hub.broadcastToRoom(payload.Room, c, env)
}

func (c *Client) handleTyping(data json.RawMessage) {
	var payload TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.Room == "" {
		return
	}

	env, err := envelope(EventUserTyping, UserTypingPayload{
		UserID:   payload.UserID,
		IsTyping: payload.IsTyping,
	})
	if err != nil {
		return
	}
	c.hub.broadcastToRoom(payload.Room, c, env)
}

func (c *Client) handleMessagesRead(data json.RawMessage) {
	var payload MessagesReadPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.Room == "" {
		return
	}

	env, err := envelope(EventMessageRead, MessageReadPayload{UserID: payload.UserID})
	if err != nil {
		return
	}
	c.hub.broadcastToRoom(payload.Room, c, env)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case env, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(env)
			if err != nil {
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
