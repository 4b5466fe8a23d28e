package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/studybuddy/backend/internal/models"
)

func setupChatHandler() (*echo.Echo, *fakeMessageRepo) {
	e := newEcho()
	messages := newFakeMessageRepo()
	h := NewChatHandler(messages)
	h.RegisterChatRoutes(e.Group("/api"))
	return e, messages
}

func seedMessage(t *testing.T, repo *fakeMessageRepo, sender, receiver primitive.ObjectID, content string) *models.Message {
	t.Helper()
	msg := &models.Message{Sender: sender, Receiver: &receiver, Content: content}
	require.NoError(t, repo.CreateMessage(context.Background(), msg))
	return msg
}

func TestSendMessageSetsReceiver(t *testing.T) {
	e, messages := setupChatHandler()
	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()

	rec := doJSON(t, e, http.MethodPost, "/api/chat/send", models.SendMessageRequest{
		Sender:   sender.Hex(),
		Receiver: receiver.Hex(),
		Content:  "hello",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var msg models.Message
	decode(t, rec, &msg)
	require.NotNil(t, msg.Receiver)
	assert.Equal(t, receiver, *msg.Receiver)
	assert.Equal(t, models.MessageTypeText, msg.MessageType)
	assert.False(t, msg.Read)

	stored, ok := messages.messages[msg.ID]
	require.True(t, ok)
	assert.Equal(t, "hello", stored.Content)
}

func TestSendMessageRejectsUnknownType(t *testing.T) {
	e, _ := setupChatHandler()

	rec := doJSON(t, e, http.MethodPost, "/api/chat/send", models.SendMessageRequest{
		Sender:      primitive.NewObjectID().Hex(),
		Receiver:    primitive.NewObjectID().Hex(),
		Content:     "hello",
		MessageType: "video",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMessagesReturnsBothDirections(t *testing.T) {
	e, messages := setupChatHandler()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	carol := primitive.NewObjectID()

	seedMessage(t, messages, alice, bob, "from alice")
	seedMessage(t, messages, bob, alice, "from bob")
	seedMessage(t, messages, carol, alice, "unrelated")

	rec := doJSON(t, e, http.MethodGet, "/api/chat/"+alice.Hex()+"/"+bob.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.Message
	decode(t, rec, &list)
	assert.Len(t, list, 2)
}

func TestMarkAsRead(t *testing.T) {
	e, messages := setupChatHandler()
	msg := seedMessage(t, messages, primitive.NewObjectID(), primitive.NewObjectID(), "hi")

	rec := doJSON(t, e, http.MethodPut, "/api/chat/read/"+msg.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Message
	decode(t, rec, &updated)
	assert.True(t, updated.Read)
}

func TestMarkAsReadMissingMessage(t *testing.T) {
	e, _ := setupChatHandler()
	rec := doJSON(t, e, http.MethodPut, "/api/chat/read/000000000000000000000001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkAllAsReadCountsOnlyIncomingUnread(t *testing.T) {
	e, messages := setupChatHandler()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	// Two unread from bob to alice, one already read, one the other way.
	seedMessage(t, messages, bob, alice, "one")
	seedMessage(t, messages, bob, alice, "two")
	read := seedMessage(t, messages, bob, alice, "three")
	read.Read = true
	fromAlice := seedMessage(t, messages, alice, bob, "mine")

	rec := doJSON(t, e, http.MethodPut, "/api/chat/read-all/"+alice.Hex()+"/"+bob.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.MarkAllReadResponse
	decode(t, rec, &resp)
	assert.Equal(t, int64(2), resp.ModifiedCount)

	// Messages alice sent stay untouched.
	assert.False(t, messages.messages[fromAlice.ID].Read)
}
