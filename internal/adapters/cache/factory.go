package cache

import (
	"context"
	"fmt"

	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// New builds the cache backend selected by cfg.Cache.Driver.
func New(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (ports.Cache, error) {
	switch cfg.Cache.Driver {
	case "", "memory":
		return NewMemoryCache(), nil
	case "redis":
		return NewRedisCache(ctx, cfg.Redis, appLogger)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}
