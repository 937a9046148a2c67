package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HIMU202508/TicketingSystem/internal/application/ticket/usecases"
	"github.com/HIMU202508/TicketingSystem/internal/domain/ticket"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/auth"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/cache"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/config"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/metrics"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/permission"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/scheduler"
	declineHandlers "github.com/HIMU202508/TicketingSystem/internal/interfaces/http/handlers/declinerecord"
	ticketHandlers "github.com/HIMU202508/TicketingSystem/internal/interfaces/http/handlers/ticket"
	"github.com/HIMU202508/TicketingSystem/internal/interfaces/http/middleware"
	shareddb "github.com/HIMU202508/TicketingSystem/internal/shared/db"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

const redisPingTimeout = 5 * time.Second

// ============================================================
// Section 1: Infrastructure - Redis, caches, repositories, auth and policy
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.metrics = metrics.New()

	if c.redis != nil {
		c.countCache = cache.NewRedisCountCache(c.redis, cfg.Cache.CountTTL(), log.Named("count-cache"))
	} else {
		c.countCache = cache.NewLocalCountCache(cfg.Cache.LocalSize, cfg.Cache.CountTTL())
	}

	c.repos = newRepositories(c.db, c.countCache)
	c.txManager = shareddb.NewTransactionManager(c.db)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessExpMinutes)

	enforcer, err := permission.NewEnforcer(c.db, log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	c.enforcer = enforcer

	if err := syncPolicy(enforcer, cfg.Authorization.PolicyPath, log); err != nil {
		return err
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)

	if cfg.RateLimit.Enabled {
		if c.redis == nil {
			log.Warnw("rate limiting requires redis, submissions will not be limited")
		} else {
			c.rateLimiter = middleware.NewRateLimiter(c.redis, cfg.RateLimit.Requests, cfg.RateLimit.Window(), log)
		}
	}

	return nil
}

// initRedis creates the Redis client and checks the connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// syncPolicy loads the role definitions from path into the casbin tables.
func syncPolicy(enforcer *permission.Enforcer, path string, log logger.Interface) error {
	pf, err := permission.LoadPolicyFile(path)
	if err != nil {
		return fmt.Errorf("failed to load policy file: %w", err)
	}
	if err := enforcer.Sync(pf); err != nil {
		return fmt.Errorf("failed to sync policy: %w", err)
	}
	log.Infow("authorization policy synced", "path", path, "roles", len(pf.Roles))
	return nil
}

// ============================================================
// Section 2: Tickets - use cases and handlers
// ============================================================

func (c *Container) initTickets() error {
	cfg := c.cfg
	log := c.log

	policy, err := lifecyclePolicy(&cfg.Ticket)
	if err != nil {
		return err
	}

	ticketLimits := ticketPageLimits(&cfg.Ticket)
	declineLimits := declinePageLimits(&cfg.Ticket)

	c.ucs = &allUseCases{
		createTicketUC:   usecases.NewCreateTicketUseCase(c.repos.ticketRepo, log),
		generateNumberUC: usecases.NewGenerateTicketNumberUseCase(ticket.NewDeviceDateNumberGenerator(), log),
		getTicketUC:      usecases.NewGetTicketUseCase(c.repos.ticketRepo, log),
		listTicketsUC:    usecases.NewListTicketsUseCase(c.repos.ticketRepo, ticketLimits, log),
		updateTicketUC: usecases.NewUpdateTicketUseCase(
			c.repos.ticketRepo,
			c.repos.declineRepo,
			c.txManager,
			c.metrics,
			usecases.UpdateTicketOptions{
				Policy:                  policy,
				TransactionalDeclineLog: cfg.Ticket.TransactionalDeclineLog,
			},
			log,
		),
		deleteTicketUC:       usecases.NewDeleteTicketUseCase(c.repos.ticketRepo, log),
		listDeclineRecordsUC: usecases.NewListDeclineRecordsUseCase(c.repos.declineRepo, declineLimits, log),
		getDeclineStatsUC:    usecases.NewGetDeclineStatsUseCase(c.repos.declineRepo, log),
	}

	c.hdlrs = &allHandlers{
		ticketHandler: ticketHandlers.NewTicketHandler(
			c.ucs.createTicketUC,
			c.ucs.generateNumberUC,
			c.ucs.getTicketUC,
			c.ucs.listTicketsUC,
			c.ucs.updateTicketUC,
			c.ucs.deleteTicketUC,
			ticketLimits,
			log,
		),
		declineHandler: declineHandlers.NewHandler(
			c.ucs.listDeclineRecordsUC,
			c.ucs.getDeclineStatsUC,
			declineLimits,
			log,
		),
	}

	return nil
}

// ============================================================
// Section 3: Background jobs
// ============================================================

func (c *Container) initScheduler() error {
	interval := c.cfg.Cache.RefreshInterval()
	if interval <= 0 {
		c.log.Infow("count cache refresh disabled")
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	c.schedulerManager = manager

	job := scheduler.NewCountWarmJob(c.repos.ticketRepo, c.repos.declineRepo, c.countCache)
	if err := manager.RegisterCountWarmJob(job, interval); err != nil {
		return fmt.Errorf("failed to register count warm job: %w", err)
	}

	return nil
}
