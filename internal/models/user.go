package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a student profile stored in MongoDB
type User struct {
	ID             primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string               `json:"name" bson:"name"`
	Email          string               `json:"email" bson:"email"` // unique across all users
	Password       string               `json:"-" bson:"password"`  // stored as plaintext, matching the legacy backend; never serialized
	Subjects       []string             `json:"subjects" bson:"subjects"`
	StudyStyle     string               `json:"studyStyle,omitempty" bson:"studyStyle,omitempty"`
	TimeSlots      []string             `json:"timeSlots" bson:"timeSlots"`
	AcademicGoal   string               `json:"academicGoal,omitempty" bson:"academicGoal,omitempty"`
	ProfilePicture string               `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	Friends        []primitive.ObjectID `json:"friends" bson:"friends"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// RegisterRequest defines the request body for user registration
type RegisterRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=50"`
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,min=1"`
	Subjects     []string `json:"subjects"`
	StudyStyle   string   `json:"studyStyle" validate:"omitempty,oneof='Text-based' 'Video calls' 'Group study' 'Silent study' 'Discussion forums'"`
	TimeSlots    []string `json:"timeSlots" validate:"omitempty,dive,oneof='Morning (6AM-10AM)' 'Late Morning (10AM-2PM)' 'Afternoon (2PM-6PM)' 'Evening (6PM-10PM)' 'Night (10PM-2AM)'"`
	AcademicGoal string   `json:"academicGoal" validate:"omitempty,oneof='Exam preparation' 'Project work' 'Learning new skills' 'Research assistance' 'Homework help'"`
}

// LoginRequest defines the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUser is the profile subset returned on a successful login
type LoginUser struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Subjects     []string           `json:"subjects"`
	StudyStyle   string             `json:"studyStyle,omitempty"`
	TimeSlots    []string           `json:"timeSlots"`
	AcademicGoal string             `json:"academicGoal,omitempty"`
}

// LoginResponse is the full login response body
type LoginResponse struct {
	Message string    `json:"message"`
	User    LoginUser `json:"user"`
}

// FriendProfile is the fixed field subset returned when listing a user's friends
type FriendProfile struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Subjects     []string           `json:"subjects" bson:"subjects"`
	StudyStyle   string             `json:"studyStyle,omitempty" bson:"studyStyle,omitempty"`
	TimeSlots    []string           `json:"timeSlots" bson:"timeSlots"`
	AcademicGoal string             `json:"academicGoal,omitempty" bson:"academicGoal,omitempty"`
}
