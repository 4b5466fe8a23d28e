package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studybuddy/backend/internal/apperrors"
	"github.com/studybuddy/backend/internal/matcher"
	"github.com/studybuddy/backend/internal/models"
	"github.com/studybuddy/backend/internal/repositories"
)

// MatchHandler handles HTTP requests related to study partner matching
type MatchHandler struct {
	userRepository  repositories.UserRepository
	matchRepository repositories.MatchRepository
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(userRepo repositories.UserRepository, matchRepo repositories.MatchRepository) *MatchHandler {
	return &MatchHandler{
		userRepository:  userRepo,
		matchRepository: matchRepo,
	}
}

// RegisterMatchRoutes registers matching-related routes
func (h *MatchHandler) RegisterMatchRoutes(g *echo.Group) {
	g.GET("/match/find/:userId", h.FindMatches)
	g.GET("/match/:userId", h.GetMatches)
}

// FindMatches computes compatibility against every other user and returns the
// ranked top candidates. Results are recomputed on every call; nothing is
// cached or persisted.
func (h *MatchHandler) FindMatches(c echo.Context) error {
	userID, err := parseObjectID(c.Param("userId"), "user ID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	currentUser, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	candidates, err := h.userRepository.GetAllUsersExcept(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, matcher.Rank(currentUser, candidates))
}

// GetMatches returns persisted match rows with both users resolved
func (h *MatchHandler) GetMatches(c echo.Context) error {
	userID, err := parseObjectID(c.Param("userId"), "user ID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	matches, err := h.matchRepository.ListForUser(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	populated := make([]models.PopulatedMatch, 0, len(matches))
	for _, m := range matches {
		user1, err := h.userRepository.GetUserByID(ctx, m.User1)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		user2, err := h.userRepository.GetUserByID(ctx, m.User2)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		populated = append(populated, models.PopulatedMatch{
			ID:                 m.ID,
			User1:              *user1,
			User2:              *user2,
			CompatibilityScore: m.CompatibilityScore,
			CommonSubjects:     m.CommonSubjects,
			CommonTimeSlots:    m.CommonTimeSlots,
			CreatedAt:          m.CreatedAt,
			UpdatedAt:          m.UpdatedAt,
		})
	}

	return c.JSON(http.StatusOK, populated)
}
