package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thanhdo/marketly/internal/handlers"
	"github.com/thanhdo/marketly/internal/middleware"
	"github.com/thanhdo/marketly/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	chatH *handlers.ChatHandler,
	notificationH *handlers.NotificationHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", middleware.AuthMiddleware(jwtMgr, rdb), authH.Logout)
	}

	// API endpoints
	api := r.Group("/api/v1", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.POST("/chat/threads", chatH.GetOrCreateThread)
		api.GET("/chat/threads", chatH.GetMyThreads)
		api.GET("/chat/threads/:id/messages", chatH.GetThreadMessages)
		api.POST("/chat/threads/:id/messages", chatH.SendMessage)
		api.GET("/chat/threads/:id/last-message", chatH.GetLastMessage)

		api.POST("/notifications", notificationH.CreateNotification)
		api.GET("/notifications", notificationH.GetNotifications)
		api.PUT("/notifications/:id/read", notificationH.MarkAsRead)
		api.DELETE("/notifications/:id", notificationH.DeleteNotification)
	}

	// WebSocket
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
