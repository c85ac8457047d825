package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recharge-service/cmd/api/infrastructure"
	"recharge-service/internal/adapter/cache"
	"recharge-service/internal/adapter/db/memory"
	mongostore "recharge-service/internal/adapter/db/mongo"
	"recharge-service/internal/adapter/db/postgres"
	ginhandler "recharge-service/internal/adapter/gin/handler"
	"recharge-service/internal/adapter/repository/cached"
	"recharge-service/internal/config"
	"recharge-service/internal/usecase/account"
	"recharge-service/internal/usecase/catalog"
	"recharge-service/pkg/auth"
	redisclient "recharge-service/pkg/redis"
)

// userRepository is the union of the repository views the two usecases need.
// Every storage driver satisfies it.
type userRepository interface {
	account.UserRepository
	catalog.UserRepository
}

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	Mongo       *mongostore.Store
	RedisClient *redisclient.Client

	TokenManager *auth.TokenManager
	AccountUC    account.Usecase
	CatalogUC    catalog.Usecase

	AuthHandler  *ginhandler.AuthHandler
	PlanHandler  *ginhandler.PlanHandler
	AdminHandler *ginhandler.AdminHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	// Storage backend selected by configuration
	var (
		userRepo userRepository
		planRepo catalog.PlanRepository
	)
	switch cfg.Storage.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		db, err := infrastructure.NewDatabase(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		userRepo = postgres.NewUserRepoPG(db, l)
		planRepo = postgres.NewPlanRepoPG(db, l)

	case config.DriverMongo:
		store, err := mongostore.NewStore(cfg.Storage.MongoURI, cfg.Storage.MongoDatabase, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB store: %w", err)
		}
		c.Mongo = store
		userRepo = mongostore.NewUserRepoMongo(store, l)
		planRepo = mongostore.NewPlanRepoMongo(store, l)

	case config.DriverMemory:
		userRepo = memory.NewUserRepoMem()
		planRepo = memory.NewPlanRepoMem()

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	// Optional Redis: plan listing cache and rate limiter backend
	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		planCache := cache.NewRedisPlanCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		planRepo = cached.NewCachedPlanRepository(planRepo, planCache, l)
	}

	c.TokenManager = auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)

	c.AccountUC = account.New(userRepo, c.TokenManager, account.AdminSeed{
		Name:        cfg.Auth.AdminName,
		Email:       cfg.Auth.AdminEmail,
		PhoneNumber: cfg.Auth.AdminPhone,
		Password:    cfg.Auth.AdminPassword,
	}, l)
	c.CatalogUC = catalog.New(planRepo, userRepo, l)

	c.AuthHandler = ginhandler.NewAuthHandler(c.AccountUC, l)
	c.PlanHandler = ginhandler.NewPlanHandler(c.CatalogUC, l)
	c.AdminHandler = ginhandler.NewAdminHandler(c.CatalogUC, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.Mongo != nil {
		if err := c.Mongo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close MongoDB: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
