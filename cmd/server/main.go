package main

import (
	"log"

	"github.com/CS161-Software-Project/MindClash/internal/config"
	"github.com/CS161-Software-Project/MindClash/internal/database"
	"github.com/CS161-Software-Project/MindClash/internal/handlers"
	"github.com/CS161-Software-Project/MindClash/internal/middleware"
	"github.com/CS161-Software-Project/MindClash/internal/services"
	"github.com/CS161-Software-Project/MindClash/internal/ws"

	_ "github.com/CS161-Software-Project/MindClash/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           MindClash API
// @version         1.0
// @description     Multiplayer trivia backend: AI-generated quizzes, game rooms and live score updates
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	hub := ws.NewHub()
	cache := services.NewStateCache(rdb)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	profileService := services.NewProfileService(db)
	roomService := services.NewRoomService(db)
	gameService := services.NewGameService(db)
	chatService := services.NewChatService(db)
	generateService := services.NewGenerateService(cfg.GroqAPIKey, cfg.GroqAPIURL, cfg.GroqModel)

	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	roomHandler := handlers.NewRoomHandler(roomService, generateService, hub, cache)
	playHandler := handlers.NewPlayHandler(roomService, gameService, hub, cache)
	chatHandler := handlers.NewChatHandler(chatService, hub)
	generateHandler := handlers.NewGenerateHandler(generateService)
	wsHandler := handlers.NewWSHandler(authService, roomService, gameService, chatService, hub, cache)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/room/:code", wsHandler.HandleRoomWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		api.GET("/me", middleware.JWTAuth(authService), authHandler.CurrentUser)

		profile := api.Group("/profile")
		profile.Use(middleware.JWTAuth(authService))
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(middleware.JWTAuth(authService))
		{
			quizzes.GET("/ai-status", generateHandler.CheckAI)
			quizzes.POST("/generate", generateHandler.Generate)
		}

		rooms := api.Group("/rooms")
		rooms.Use(middleware.JWTAuth(authService))
		{
			rooms.POST("", roomHandler.CreateRoom)
			rooms.POST("/join", roomHandler.JoinRoom)
			rooms.GET("/:code", roomHandler.GetRoom)
			rooms.POST("/:code/start", roomHandler.StartGame)
			rooms.POST("/:code/next", roomHandler.NextQuestion)
			rooms.POST("/:code/ready", roomHandler.SetReady)
			rooms.POST("/:code/leave", roomHandler.LeaveRoom)
			rooms.POST("/:code/answer", playHandler.SubmitAnswer)
			rooms.GET("/:code/leaderboard", roomHandler.GetLeaderboard)
			rooms.GET("/:code/answer-distribution", roomHandler.GetAnswerDistribution)
			rooms.GET("/:code/messages", chatHandler.GetMessages)
			rooms.POST("/:code/messages", chatHandler.SendMessage)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
