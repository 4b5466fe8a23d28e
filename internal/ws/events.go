package ws

import (
	"encoding/json"
	"time"
)

// Inbound event names. disconnect is implicit: the connection closing plays
// that role.
const (
	EventRegisterUser = "register_user"
	EventJoinRoom     = "join_room"
	EventSendMessage  = "send_message"
	EventTyping       = "typing"
	EventMessagesRead = "messages_read"
)

// Outbound event names, broadcast to the room minus the sender.
const (
	EventUserJoined     = "user_joined"
	EventReceiveMessage = "receive_message"
	EventUserTyping     = "user_typing"
	EventMessageRead    = "message_read"
)

// Envelope is the tagged frame exchanged over the socket. Data holds the
// per-event payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// RegisterUserPayload binds a user to this connection in the registry
type RegisterUserPayload struct {
	UserID string `json:"userId"`
}

// JoinRoomPayload subscribes the connection to a room. The room name is the
// two participant IDs sorted and concatenated; the server never checks that
// the caller is one of them.
type JoinRoomPayload struct {
	Room   string `json:"room"`
	UserID string `json:"userId"`
}

// SendMessagePayload carries a chat message to a room
type SendMessagePayload struct {
	SenderID    string  `json:"senderId"`
	Message     string  `json:"message"`
	Room        string  `json:"room"`
	MessageType string  `json:"messageType,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// TypingPayload toggles the typing indicator for a room
type TypingPayload struct {
	Room     string `json:"room"`
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// MessagesReadPayload reports that a user has read the room's messages
type MessagesReadPayload struct {
	Room   string `json:"room"`
	UserID string `json:"userId"`
}

// UserJoinedPayload announces a new room participant
type UserJoinedPayload struct {
	UserID string `json:"userId"`
}

// ReceiveMessagePayload is the broadcast form of a chat message
type ReceiveMessagePayload struct {
	MessageID   string    `json:"messageId"`
	SenderID    string    `json:"senderId"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	MessageType string    `json:"messageType"`
	ImageURL    *string   `json:"imageUrl"`
}

// UserTypingPayload is the broadcast form of a typing toggle
type UserTypingPayload struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// MessageReadPayload is the broadcast form of a read receipt
type MessageReadPayload struct {
	UserID string `json:"userId"`
}

// RoomName builds the canonical room name for two participants: the IDs
// sorted and concatenated, so both sides derive the same room.
func RoomName(a, b string) string {
	if a < b {
		return a + b
	}
	return b + a
}

func envelope(event string, payload interface{}) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Envelope{Event: event, Data: data}, nil
}
