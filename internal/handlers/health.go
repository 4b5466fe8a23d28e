package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "studybuddy-api",
	})
}

func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "StudyBuddy API is running!",
	})
}
