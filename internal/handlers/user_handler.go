package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studybuddy/backend/internal/apperrors"
	"github.com/studybuddy/backend/internal/models"
	"github.com/studybuddy/backend/internal/repositories"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users/register", h.Register)
	g.POST("/users/login", h.Login)
	g.GET("/users", h.GetAllUsers)
	g.GET("/users/:id", h.GetUserByID)
}

// Register handles user registration
func (h *UserHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	// Check if user already exists
	_, err := h.userRepository.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists with this email")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password, // stored as-is; hashing is a known gap in the legacy backend
		Subjects:     req.Subjects,
		StudyStyle:   req.StudyStyle,
		TimeSlots:    req.TimeSlots,
		AcademicGoal: req.AcademicGoal,
	}
	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, user)
}

// Login handles user login with a plain password comparison
func (h *UserHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if user.Password != req.Password {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
	}

	return c.JSON(http.StatusOK, models.LoginResponse{
		Message: "Login successful",
		User: models.LoginUser{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			Subjects:     user.Subjects,
			StudyStyle:   user.StudyStyle,
			TimeSlots:    user.TimeSlots,
			AcademicGoal: user.AcademicGoal,
		},
	})
}

// GetAllUsers returns every user, passwords excluded
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	users, err := h.userRepository.GetAllUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// GetUserByID returns a single user profile
func (h *UserHandler) GetUserByID(c echo.Context) error {
	id, err := parseObjectID(c.Param("id"), "user ID")
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}
