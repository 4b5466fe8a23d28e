package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/internal/handlers"
	"github.com/studybuddy/backend/internal/repositories"
	"github.com/studybuddy/backend/internal/ws"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// It returns the hub so the caller owns its lifecycle.
func SetupRoutes(e *echo.Echo, db *mongo.Database, logger *zap.Logger) *ws.Hub {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", handlers.Root)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	friendRequestRepo := repositories.NewMongoFriendRequestRepository(db)
	messageRepo := repositories.NewMongoMessageRepository(db)
	matchRepo := repositories.NewMongoMatchRepository(db)

	api := e.Group("/api")

	// User routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	// Match routes
	matchHandler := handlers.NewMatchHandler(userRepo, matchRepo)
	matchHandler.RegisterMatchRoutes(api)
	log.Println("Match routes configured.")

	// Chat routes
	chatHandler := handlers.NewChatHandler(messageRepo)
	chatHandler.RegisterChatRoutes(api)
	log.Println("Chat routes configured.")

	// Friend routes
	friendHandler := handlers.NewFriendHandler(friendRequestRepo, userRepo)
	friendHandler.RegisterFriendRoutes(api)
	log.Println("Friend routes configured.")

	// Websocket relay
	hub := ws.NewHub(messageRepo, logger)
	e.GET("/ws", hub.HandleWebSocket)
	log.Println("Websocket relay configured.")

	return hub
}
