package container

import (
	"context"
	"customerwizard/wizard/internal/catalog"
	"customerwizard/wizard/internal/client"
	"customerwizard/wizard/internal/config"
	"customerwizard/wizard/internal/domain"
	"customerwizard/wizard/internal/handler"
	"customerwizard/wizard/internal/repository"
	"customerwizard/wizard/internal/service"
	"customerwizard/wizard/internal/state"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const sweepInterval = time.Minute

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Catalog *domain.Catalog
	Store   state.Store
	Wizard  *service.Wizard
	Server  *http.Server

	memory *state.MemoryStore
	db     *pgxpool.Pool
	redis  *redis.Client
}

// SetupLogging applies the log level and format to the logrus logger
func SetupLogging(cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// New creates a new container with all dependencies initialized. The
// catalog is loaded here; a malformed catalog stops startup.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	source, db, err := newCatalogSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	container.db = db

	cat, err := catalog.Load(ctx, source)
	if err != nil {
		container.Close()
		return nil, err
	}
	container.Catalog = cat

	ttl := time.Duration(cfg.Session.TTL) * time.Second
	switch cfg.Session.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		container.redis = rdb

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.Store = state.NewRedisStore(rdb, cfg.Redis.KeyPrefix, ttl)
	default:
		container.memory = state.NewMemoryStore(ttl)
		container.Store = container.memory
	}

	container.Wizard = service.NewWizard(cat, container.Store, cfg.Wizard.RequireSelection)

	gin.SetMode(cfg.Server.Mode)
	router, err := handler.NewRouter(container.Wizard, handler.RouterConfig{
		CookieName:           cfg.Session.CookieName,
		CookieSecure:         cfg.Session.Secure,
		CookieMaxAge:         cfg.Session.TTL,
		MaxRequestsPerSecond: cfg.Server.MaxRequestsPerSecond,
	})
	if err != nil {
		container.Close()
		return nil, err
	}

	container.Server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return container, nil
}

// LoadCatalog loads the configured catalog without starting anything else.
func LoadCatalog(ctx context.Context, cfg *config.Config) (*domain.Catalog, error) {
	source, db, err := newCatalogSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if db != nil {
		defer db.Close()
	}
	return catalog.Load(ctx, source)
}

// newCatalogSource builds the configured source. The returned pool is only
// set for the postgres source and is owned by the caller.
func newCatalogSource(ctx context.Context, cfg *config.Config) (catalog.Source, *pgxpool.Pool, error) {
	format, err := catalog.ParseFormat(cfg.Catalog.Format)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Catalog.Source {
	case "http":
		return catalog.NewHTTPSource(client.NewCatalogClient(cfg.Catalog), cfg.Catalog.URL, format), nil, nil
	case "postgres":
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}

		repo, err := repository.NewCatalogRepository(db, cfg.Catalog.Table)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return catalog.NewPostgresSource(repo, cfg.Catalog.Name), db, nil
	default:
		return catalog.NewFileSource(cfg.Catalog.Path, format), nil, nil
	}
}

// Run serves HTTP until ctx is cancelled, then shuts the server down
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if c.memory != nil {
		g.Go(func() error {
			c.memory.RunSweeper(ctx, sweepInterval)
			return nil
		})
	}

	g.Go(func() error {
		log.Infof("🚀 Listening on http://%s", c.Server.Addr)
		if err := c.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		timeout := time.Duration(c.Config.Server.ShutdownTimeout) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		log.Info("Shutting down HTTP server...")
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("failed to close Redis client: %w", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
