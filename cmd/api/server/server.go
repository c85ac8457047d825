package server

import (
	"net/http"
	"time"

	redisdrv "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"recharge-service/cmd/api/di"
	"recharge-service/internal/adapter/gin/router"
	"recharge-service/internal/config"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance wired to the container's handlers.
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	engine := router.SetupRouter(
		c.AuthHandler,
		c.PlanHandler,
		c.AdminHandler,
		c.TokenManager,
		cfg.RateLimit,
		rawRedis(c),
		l,
	)

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              ":" + cfg.App.HTTPPort,
			Handler:           engine,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// rawRedis unwraps the container's Redis client for the rate limiter,
// nil when Redis is disabled.
func rawRedis(c *di.Container) *redisdrv.Client {
	if c.RedisClient == nil {
		return nil
	}
	return c.RedisClient.Client
}

// Start starts the HTTP server and blocks until it exits.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	return s.HTTP.ListenAndServe()
}
