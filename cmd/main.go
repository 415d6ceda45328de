package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	rediscache "github.com/davidbz/webcalc/internal/cache/redis"
	"github.com/davidbz/webcalc/internal/config"
	"github.com/davidbz/webcalc/internal/domain"
	"github.com/davidbz/webcalc/internal/http"
	"github.com/davidbz/webcalc/internal/http/middleware"
	"github.com/davidbz/webcalc/internal/http/web"
	"github.com/davidbz/webcalc/internal/observability"
)

const cachePingTimeout = 2 * time.Second

func main() {
	container := buildContainer()

	err := container.Invoke(func(
		server *http.Server,
		serverCfg *config.ServerConfig,
		redisClient *goredis.Client,
	) {
		go func() {
			if err := server.Start(); err != nil {
				log.Fatalf("Server failed to start: %v", err)
			}
		}()

		wait := gfshutdown.GracefulShutdown(
			context.Background(),
			time.Duration(serverCfg.ShutdownTimeout)*time.Second,
			map[string]gfshutdown.Operation{
				"http-server": server.Shutdown,
				"redis": func(_ context.Context) error {
					if redisClient == nil {
						return nil
					}
					return redisClient.Close()
				},
			},
		)

		os.Exit(<-wait)
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Result cache (redis when enabled, otherwise a no-op)
	if err := container.Provide(func(cfg *config.CacheConfig) *goredis.Client {
		if !cfg.Enabled {
			return nil
		}
		return rediscache.NewClient(cfg)
	}); err != nil {
		log.Fatalf("Failed to provide redis client: %v", err)
	}
	if err := container.Provide(func(cfg *config.CacheConfig, client *goredis.Client) domain.ResultCache {
		if client == nil {
			return domain.NoopCache{}
		}

		cache := rediscache.NewResultCache(client, cfg.KeyPrefix)

		ctx, cancel := context.WithTimeout(context.Background(), cachePingTimeout)
		defer cancel()
		if err := cache.Ping(ctx); err != nil {
			// Cache failures never fail calculations, so an unreachable server only warrants a warning.
			observability.FromContext(ctx).Warn("result cache unavailable at startup",
				observability.String("addr", cfg.RedisAddr),
				observability.Error(err))
		}

		return cache
	}); err != nil {
		log.Fatalf("Failed to provide result cache: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewOperationRegistry); err != nil {
		log.Fatalf("Failed to provide operation registry: %v", err)
	}
	if err := container.Provide(func(
		registry *domain.OperationRegistry,
		cache domain.ResultCache,
		events domain.EventPublisher,
		cfg *config.CacheConfig,
		_ *zap.Logger, // ensures the logger is initialised before the first request
	) *domain.CalculatorService {
		return domain.NewCalculatorService(registry, cache, events, cfg.TTLDuration())
	}); err != nil {
		log.Fatalf("Failed to provide calculator service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(web.NewRenderer); err != nil {
		log.Fatalf("Failed to provide page renderer: %v", err)
	}
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
