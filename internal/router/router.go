package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/neeva-app/neeva-backend/internal/handlers"
	"github.com/neeva-app/neeva-backend/internal/logger"
	"github.com/neeva-app/neeva-backend/internal/middleware"
)

func NewRouter(log *logger.Logger, allowedOrigins []string, chatHandler *handlers.ChatHandler, insights *handlers.InsightsHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("/me", handlers.Me)
			users.POST("/onboarding", handlers.CompleteOnboarding)
			users.GET("/preferences", handlers.GetPreferences)
			users.PUT("/preferences", handlers.UpdatePreferences)
		}

		chat := api.Group("/chat", middleware.AuthMiddleware())
		{
			chat.POST("", chatHandler.SendMessage)
			chat.GET("/history", chatHandler.GetHistory)
		}

		mood := api.Group("/mood", middleware.AuthMiddleware())
		{
			mood.POST("", handlers.CreateMoodLog)
			mood.GET("", handlers.ListMoodLogs)
			mood.GET("/stats", handlers.GetMoodStats)
			mood.GET("/insight", insights.GetMoodInsight)
		}

		exercises := api.Group("/exercises", middleware.AuthMiddleware())
		{
			exercises.POST("", handlers.CompleteExercise)
			exercises.GET("/history", handlers.GetExerciseHistory)
			exercises.GET("/stats", handlers.GetExerciseStats)
		}

		community := api.Group("/community", middleware.AuthMiddleware())
		{
			community.GET("/groups", handlers.ListGroups)
			community.POST("/groups", handlers.CreateGroup)
			community.GET("/posts", handlers.ListPosts)
			community.POST("/posts", handlers.CreatePost)
		}
	}

	return r
}
