package handlers

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/studybuddy/backend/internal/apperrors"
	"github.com/studybuddy/backend/internal/models"
)

// In-memory repositories standing in for the Mongo implementations.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserRepo) add(name, email, password string, subjects []string, timeSlots []string) *models.User {
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  password,
		Subjects:  subjects,
		TimeSlots: timeSlots,
		Friends:   []primitive.ObjectID{},
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.Friends == nil {
		user.Friends = []primitive.ObjectID{}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) GetAllUsers(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		c := *u
		c.Password = ""
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (f *fakeUserRepo) GetAllUsersExcept(ctx context.Context, id primitive.ObjectID) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		if u.ID != id {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (f *fakeUserRepo) GetFriends(ctx context.Context, id primitive.ObjectID) ([]models.FriendProfile, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	friends := []models.FriendProfile{}
	for _, fid := range user.Friends {
		if friend, ok := f.users[fid]; ok {
			friends = append(friends, models.FriendProfile{
				ID:           friend.ID,
				Name:         friend.Name,
				Subjects:     friend.Subjects,
				StudyStyle:   friend.StudyStyle,
				TimeSlots:    friend.TimeSlots,
				AcademicGoal: friend.AcademicGoal,
			})
		}
	}
	return friends, nil
}

func (f *fakeUserRepo) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	for _, id := range user.Friends {
		if id == friendID {
			return nil
		}
	}
	user.Friends = append(user.Friends, friendID)
	return nil
}

type fakeFriendRequestRepo struct {
	requests map[primitive.ObjectID]*models.FriendRequest
}

func newFakeFriendRequestRepo() *fakeFriendRequestRepo {
	return &fakeFriendRequestRepo{requests: make(map[primitive.ObjectID]*models.FriendRequest)}
}

func (f *fakeFriendRequestRepo) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	req.ID = primitive.NewObjectID()
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	if req.Status == "" {
		req.Status = models.StatusPending
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeFriendRequestRepo) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	if r, ok := f.requests[id]; ok {
		return r, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeFriendRequestRepo) FindBetween(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	for _, r := range f.requests {
		if (r.Sender == a && r.Receiver == b) || (r.Sender == b && r.Receiver == a) {
			return r, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeFriendRequestRepo) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequest, error) {
	out := []models.FriendRequest{}
	for _, r := range f.requests {
		if r.Sender == userID || r.Receiver == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeFriendRequestRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.FriendRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return r, nil
}

type fakeMessageRepo struct {
	messages map[primitive.ObjectID]*models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[primitive.ObjectID]*models.Message)}
}

func (f *fakeMessageRepo) CreateMessage(ctx context.Context, msg *models.Message) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	msg.UpdatedAt = msg.CreatedAt
	if msg.MessageType == "" {
		msg.MessageType = models.MessageTypeText
	}
	f.messages[msg.ID] = msg
	return nil
}

func (f *fakeMessageRepo) GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	out := []models.Message{}
	for _, m := range f.messages {
		if m.Receiver == nil {
			continue
		}
		if (m.Sender == a && *m.Receiver == b) || (m.Sender == b && *m.Receiver == a) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeMessageRepo) MarkRead(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	m.Read = true
	m.UpdatedAt = time.Now()
	return m, nil
}

func (f *fakeMessageRepo) MarkAllRead(ctx context.Context, sender, receiver primitive.ObjectID) (int64, error) {
	var count int64
	for _, m := range f.messages {
		if m.Receiver != nil && m.Sender == sender && *m.Receiver == receiver && !m.Read {
			m.Read = true
			count++
		}
	}
	return count, nil
}

type fakeMatchRepo struct {
	matches []models.Match
}

func (f *fakeMatchRepo) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Match, error) {
	out := []models.Match{}
	for _, m := range f.matches {
		if m.User1 == userID || m.User2 == userID {
			out = append(out, m)
		}
	}
	return out, nil
}
