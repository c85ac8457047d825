package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	redisdrv "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"recharge-service/internal/adapter/gin/handler"
	"recharge-service/internal/adapter/gin/middleware"
	"recharge-service/internal/config"
	"recharge-service/pkg/auth"
)

// SetupRouter configures and returns a Gin router with all routes and middleware.
// redisClient may be nil when rate limiting is disabled.
func SetupRouter(
	authHandler *handler.AuthHandler,
	planHandler *handler.PlanHandler,
	adminHandler *handler.AdminHandler,
	tokens *auth.TokenManager,
	rateLimitCfg config.RateLimitConfig,
	redisClient *redisdrv.Client,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.RateLimiter(redisClient, rateLimitCfg))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "recharge-service",
		})
	})

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Public storefront listing
		api.GET("/plans", planHandler.ListPlans)

		admin := api.Group("/admin")
		{
			admin.POST("/login", authHandler.AdminLogin)

			protected := admin.Group("")
			protected.Use(middleware.RequireAdmin(tokens, log))
			{
				protected.GET("/plans", adminHandler.ListPlans)
				protected.POST("/plans", adminHandler.CreatePlan)
				protected.PUT("/plans/:id", adminHandler.UpdatePlan)
				protected.DELETE("/plans/:id", adminHandler.DeletePlan)
				protected.GET("/users", adminHandler.ListUsers)
				protected.DELETE("/users/:id", adminHandler.DeleteUser)
			}
		}
	}

	return router
}
