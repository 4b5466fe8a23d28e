package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studybuddy/backend/internal/apperrors"
	"github.com/studybuddy/backend/internal/models"
	"github.com/studybuddy/backend/internal/repositories"
)

// ChatHandler handles HTTP requests related to chat messages
type ChatHandler struct {
	messageRepository repositories.MessageRepository
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(messageRepo repositories.MessageRepository) *ChatHandler {
	return &ChatHandler{messageRepository: messageRepo}
}

// RegisterChatRoutes registers chat-related routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.POST("/chat/send", h.SendMessage)
	g.GET("/chat/:userId1/:userId2", h.GetMessages)
	g.PUT("/chat/read/:messageId", h.MarkAsRead)
	g.PUT("/chat/read-all/:userId1/:userId2", h.MarkAllAsRead)
}

// SendMessage persists a message sent over REST. Unlike the socket relay
// path, this one records the receiver, so the message shows up in the
// paired-conversation query.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	senderID, err := parseObjectID(req.Sender, "sender ID")
	if err != nil {
		return err
	}
	receiverID, err := parseObjectID(req.Receiver, "receiver ID")
	if err != nil {
		return err
	}

	msg := &models.Message{
		Sender:      senderID,
		Receiver:    &receiverID,
		Content:     req.Content,
		MessageType: req.MessageType,
		ImageURL:    req.ImageURL,
	}
	if err := h.messageRepository.CreateMessage(c.Request().Context(), msg); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, msg)
}

// GetMessages returns the bidirectional conversation between two users
func (h *ChatHandler) GetMessages(c echo.Context) error {
	userID1, err := parseObjectID(c.Param("userId1"), "user ID")
	if err != nil {
		return err
	}
	userID2, err := parseObjectID(c.Param("userId2"), "user ID")
	if err != nil {
		return err
	}

	messages, err := h.messageRepository.GetConversation(c.Request().Context(), userID1, userID2)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, messages)
}

// MarkAsRead marks a single message as read
func (h *ChatHandler) MarkAsRead(c echo.Context) error {
	messageID, err := parseObjectID(c.Param("messageId"), "message ID")
	if err != nil {
		return err
	}

	msg, err := h.messageRepository.MarkRead(c.Request().Context(), messageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Message not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, msg)
}

// MarkAllAsRead marks every unread message from userId2 to userId1 as read
func (h *ChatHandler) MarkAllAsRead(c echo.Context) error {
	userID1, err := parseObjectID(c.Param("userId1"), "user ID")
	if err != nil {
		return err
	}
	userID2, err := parseObjectID(c.Param("userId2"), "user ID")
	if err != nil {
		return err
	}

	count, err := h.messageRepository.MarkAllRead(c.Request().Context(), userID2, userID1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, models.MarkAllReadResponse{ModifiedCount: count})
}
