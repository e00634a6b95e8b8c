package app

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/digest/internal/config"
	"github.com/dmitrymomot/digest/pkg/db"
	"github.com/dmitrymomot/digest/pkg/health"
	"github.com/dmitrymomot/digest/pkg/pipeline"
	"github.com/dmitrymomot/digest/pkg/redis"
	"github.com/dmitrymomot/digest/pkg/store"
)

// App holds the process resources shared by the commands.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
	store  *store.Store
	redis  goredis.UniversalClient

	mu            sync.Mutex
	shutdownHooks []func(context.Context) error
}

// New connects to the database and, when the once-per-day guard is enabled
// with REDIS_URL set, to Redis.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		logger: log,
		pool:   pool,
		store:  store.New(pool, store.WithLogger(log)),
	}
	a.OnShutdown(db.Shutdown(pool))

	if cfg.OncePerDay && cfg.RedisURL != "" {
		client, err := redis.Open(ctx, cfg.RedisURL, cfg.Redis.Options()...)
		if err != nil {
			_ = a.Close(context.WithoutCancel(ctx))
			return nil, err
		}
		a.redis = client
		a.OnShutdown(redis.Shutdown(client))
	}

	return a, nil
}

// Pool returns the database pool.
func (a *App) Pool() *pgxpool.Pool { return a.pool }

// Store returns the content store.
func (a *App) Store() *store.Store { return a.store }

// OnShutdown registers fn to run on Close. Hooks run in reverse order.
func (a *App) OnShutdown(fn func(context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shutdownHooks = append(a.shutdownHooks, fn)
}

// Close runs the shutdown hooks, last registered first.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	hooks := slices.Clone(a.shutdownHooks)
	a.shutdownHooks = nil
	a.mu.Unlock()

	var errs []error
	for _, hook := range slices.Backward(hooks) {
		if err := hook(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Connector opens store sessions for a pipeline.
func (a *App) Connector() pipeline.Connector {
	return pipeline.ConnectorFunc(func(ctx context.Context) (pipeline.Session, error) {
		s, err := a.store.Open(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// Pipeline builds the pipeline of the configured kind backed by the store.
// The once-per-day guard is attached when enabled.
func (a *App) Pipeline(opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	if a.cfg.OncePerDay {
		opts = append(opts, pipeline.WithDispatchLog(a.store))
		if a.redis != nil {
			client, ttl := a.redis, a.cfg.LockTTL
			opts = append(opts, pipeline.WithLock(func(key string) pipeline.Lock {
				return redis.NewLock(client, key, ttl)
			}))
		}
	}
	return NewPipeline(a.cfg, a.Connector(), a.logger, opts...)
}

// Checks returns the readiness checks of the held resources.
func (a *App) Checks() health.Checks {
	checks := health.Checks{"database": db.Healthcheck(a.pool)}
	if a.redis != nil {
		checks["redis"] = redis.Healthcheck(a.redis)
	}
	return checks
}
