package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/auth"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/config"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/metrics"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/permission"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/repository"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/scheduler"
	"github.com/HIMU202508/TicketingSystem/internal/interfaces/http/middleware"
	shareddb "github.com/HIMU202508/TicketingSystem/internal/shared/db"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, use cases, handlers
// and background jobs, and wires them together. Shutdown releases what it started.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	// redis is nil when redis.enabled is false
	redis *redis.Client

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter

	// Shared services
	jwtSvc     *auth.JWTService
	enforcer   *permission.Enforcer
	metrics    *metrics.Metrics
	countCache repository.CountCache
	txManager  *shareddb.TransactionManager

	// Background jobs
	schedulerManager *scheduler.SchedulerManager
}

// NewContainer creates a Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, caches, repositories, auth and policy
	if err := c.initInfrastructure(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 2: Tickets - use cases and handlers
	if err := c.initTickets(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 3: Background jobs
	if err := c.initScheduler(); err != nil {
		c.Shutdown()
		return nil, err
	}

	return c, nil
}

// Shutdown stops background jobs and closes the Redis client.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Shutdown(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close redis client", "error", err)
		}
	}
}
