package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message types
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
)

// Message represents a chat message stored in MongoDB. Receiver is nullable:
// messages written by the socket relay carry no receiver (see ws.Hub), so the
// paired-conversation query only surfaces REST-sent messages.
type Message struct {
	ID          primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Sender      primitive.ObjectID  `json:"sender" bson:"sender"`
	Receiver    *primitive.ObjectID `json:"receiver,omitempty" bson:"receiver,omitempty"`
	Content     string              `json:"content" bson:"content"`
	MessageType string              `json:"messageType" bson:"messageType"`
	ImageURL    *string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Read        bool                `json:"read" bson:"read"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// SendMessageRequest defines the request body for sending a message over REST
type SendMessageRequest struct {
	Sender      string  `json:"sender" validate:"required"`
	Receiver    string  `json:"receiver" validate:"required"`
	Content     string  `json:"content" validate:"required"`
	MessageType string  `json:"messageType" validate:"omitempty,oneof=text image"`
	ImageURL    *string `json:"imageUrl"`
}

// MarkAllReadResponse reports how many messages were newly marked read
type MarkAllReadResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}
