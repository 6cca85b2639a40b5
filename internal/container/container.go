package container

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"cnctools/catalog/internal/client"
	"cnctools/catalog/internal/config"
	"cnctools/catalog/internal/mirror"
	"cnctools/catalog/internal/server"
	"cnctools/catalog/internal/service"
	"cnctools/catalog/internal/state"
	"cnctools/catalog/internal/taxonomy"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config       *config.Config
	Client       client.FeedClient
	StateManager state.StateManager
	Service      *service.Service
	Server       *server.Server

	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	mirrors := mirror.NewSupplier(ctx, cfg.Feed.Mirrors, cfg.Feed.Path)

	sessionTTL := time.Duration(cfg.Redis.SessionTTL) * time.Second
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		container.StateManager = state.NewRedisStateManager(rdb, sessionTTL)
	} else {
		log.Info("ℹ️ Redis disabled, keeping session state in memory")
		container.StateManager = state.NewMemoryStateManager(sessionTTL)
	}

	container.Client = client.NewFeedClient(cfg.Feed, mirrors)

	container.Service = service.NewService(
		container.Client,
		container.StateManager,
		taxonomy.Default(),
		cfg.Catalog.ItemsPerPage,
	)

	container.Server = server.New(cfg.Server, container.Service)

	return container, nil
}

// Run keeps the product snapshot fresh and serves the catalog until ctx is done
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Service.RunRefresher(ctx, time.Duration(c.Config.Feed.RefreshInterval)*time.Second)
	})

	g.Go(func() error {
		return c.Server.Run(ctx)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if err := c.Client.Close(); err != nil {
		log.Warnf("Failed to close feed client: %v", err)
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warnf("Failed to close Redis: %v", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
