package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/studybuddy/backend/internal/apperrors"
	"github.com/studybuddy/backend/internal/models"
	"github.com/studybuddy/backend/internal/repositories"
)

// FriendHandler handles HTTP requests for the friend request workflow
type FriendHandler struct {
	friendRequestRepository repositories.FriendRequestRepository
	userRepository          repositories.UserRepository
}

// NewFriendHandler creates a new FriendHandler
func NewFriendHandler(friendRequestRepo repositories.FriendRequestRepository, userRepo repositories.UserRepository) *FriendHandler {
	return &FriendHandler{
		friendRequestRepository: friendRequestRepo,
		userRepository:          userRepo,
	}
}

// RegisterFriendRoutes registers friend-related routes
func (h *FriendHandler) RegisterFriendRoutes(g *echo.Group) {
	g.POST("/friends/request", h.SendFriendRequest)
	g.GET("/friends/requests/:userId", h.GetFriendRequests)
	g.PUT("/friends/accept/:requestId", h.AcceptFriendRequest)
	g.PUT("/friends/reject/:requestId", h.RejectFriendRequest)
	g.GET("/friends/friends/:userId", h.GetFriends)
}

// SendFriendRequest creates a pending request between two users. A request is
// refused while any prior request exists between the pair, whatever its
// status, so a rejected pair cannot re-request.
func (h *FriendHandler) SendFriendRequest(c echo.Context) error {
	var req models.SendFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	senderID, err := parseObjectID(req.SenderID, "sender ID")
	if err != nil {
		return err
	}
	receiverID, err := parseObjectID(req.ReceiverID, "receiver ID")
	if err != nil {
		return err
	}

	if senderID == receiverID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot send friend request to yourself")
	}

	ctx := c.Request().Context()

	sender, err := h.userRepository.GetUserByID(ctx, senderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	receiver, err := h.userRepository.GetUserByID(ctx, receiverID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if containsID(sender.Friends, receiverID) || containsID(receiver.Friends, senderID) {
		return echo.NewHTTPError(http.StatusConflict, "Users are already friends")
	}

	// Existence check then insert; nothing backs this with a uniqueness
	// constraint, so concurrent sends for the same pair can both pass.
	_, err = h.friendRequestRepository.FindBetween(ctx, senderID, receiverID)
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Friend request already exists")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	friendRequest := &models.FriendRequest{
		Sender:   senderID,
		Receiver: receiverID,
		Status:   models.StatusPending,
	}
	if err := h.friendRequestRepository.CreateRequest(ctx, friendRequest); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, models.FriendRequestResponse{
		ID:        friendRequest.ID,
		Sender:    models.UserRef{ID: sender.ID, Name: sender.Name},
		Receiver:  models.UserRef{ID: receiver.ID, Name: receiver.Name},
		Status:    friendRequest.Status,
		CreatedAt: friendRequest.CreatedAt,
		UpdatedAt: friendRequest.UpdatedAt,
	})
}

// GetFriendRequests returns every request the user appears in, as sender or
// receiver, in any status, with names resolved.
func (h *FriendHandler) GetFriendRequests(c echo.Context) error {
	userID, err := parseObjectID(c.Param("userId"), "user ID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	requests, err := h.friendRequestRepository.ListForUser(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resolved, err := h.resolveRequests(ctx, requests)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resolved)
}

// AcceptFriendRequest moves a pending request to accepted and makes the
// friendship mutual. The friend-set pushes are idempotent, so a retried
// accept cannot corrupt either friend list.
func (h *FriendHandler) AcceptFriendRequest(c echo.Context) error {
	requestID, err := parseObjectID(c.Param("requestId"), "request ID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	friendRequest, err := h.friendRequestRepository.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Friend request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if friendRequest.Status != models.StatusPending {
		return echo.NewHTTPError(http.StatusBadRequest, "Friend request is not pending")
	}

	updated, err := h.friendRequestRepository.UpdateStatus(ctx, requestID, models.StatusAccepted)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.userRepository.AddFriend(ctx, friendRequest.Sender, friendRequest.Receiver); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.userRepository.AddFriend(ctx, friendRequest.Receiver, friendRequest.Sender); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, updated)
}

// RejectFriendRequest sets the request to rejected whenever it exists,
// regardless of its current status. The missing pending guard mirrors the
// accept/reject asymmetry of the original backend.
func (h *FriendHandler) RejectFriendRequest(c echo.Context) error {
	requestID, err := parseObjectID(c.Param("requestId"), "request ID")
	if err != nil {
		return err
	}

	updated, err := h.friendRequestRepository.UpdateStatus(c.Request().Context(), requestID, models.StatusRejected)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Friend request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

// GetFriends returns the resolved friend list for a user
func (h *FriendHandler) GetFriends(c echo.Context) error {
	userID, err := parseObjectID(c.Param("userId"), "user ID")
	if err != nil {
		return err
	}

	friends, err := h.userRepository.GetFriends(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, friends)
}

func (h *FriendHandler) resolveRequests(ctx context.Context, requests []models.FriendRequest) ([]models.FriendRequestResponse, error) {
	names := make(map[primitive.ObjectID]string)
	lookup := func(id primitive.ObjectID) (string, error) {
		if name, ok := names[id]; ok {
			return name, nil
		}
		user, err := h.userRepository.GetUserByID(ctx, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			// A request may outlive display data; show it with a blank name
			// rather than failing the whole listing.
			names[id] = ""
			return "", nil
		}
		if err != nil {
			return "", err
		}
		names[id] = user.Name
		return user.Name, nil
	}

	resolved := make([]models.FriendRequestResponse, 0, len(requests))
	for _, req := range requests {
		senderName, err := lookup(req.Sender)
		if err != nil {
			return nil, err
		}
		receiverName, err := lookup(req.Receiver)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, models.FriendRequestResponse{
			ID:        req.ID,
			Sender:    models.UserRef{ID: req.Sender, Name: senderName},
			Receiver:  models.UserRef{ID: req.Receiver, Name: receiverName},
			Status:    req.Status,
			CreatedAt: req.CreatedAt,
			UpdatedAt: req.UpdatedAt,
		})
	}
	return resolved, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
