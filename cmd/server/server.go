package server

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/thanhdo/marketly/internal/config"
	"github.com/thanhdo/marketly/internal/database"
	"github.com/thanhdo/marketly/internal/handlers"
	"github.com/thanhdo/marketly/internal/websocket"
	"github.com/thanhdo/marketly/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	Config     config.Config
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *websocket.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	cfg := config.Load()

	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTDuration)

	hub := websocket.NewHub()

	messageH := handlers.NewMessageHandler(dbConn, hub)
	chatH := handlers.NewChatHandler(dbConn, messageH)
	notificationH := handlers.NewNotificationHandler(dbConn)
	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	wsH := handlers.NewWebSocketHandler(hub, messageH)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, chatH, notificationH, wsH)

	return &Server{
		Router:     router,
		Config:     cfg,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

func (s *Server) Run() {
	go s.Hub.Run()
	defer s.Hub.Stop()

	log.Printf("Server starting on port %s", s.Config.Port)
	if err := s.Router.Run(":" + s.Config.Port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
