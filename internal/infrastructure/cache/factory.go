package cache

import (
	"fmt"

	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// LockerFactory creates the replenishment locker based on configuration
type LockerFactory struct {
	redisConfig        config.RedisConfig
	logger             *zap.Logger
	allowLocalFallback bool
}

// LockerFactoryOption is a functional option for configuring the factory
type LockerFactoryOption func(*LockerFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) LockerFactoryOption {
	return func(f *LockerFactory) {
		f.logger = logger
	}
}

// WithLocalFallback controls whether an unreachable Redis degrades to a
// process-local lock. Default is true.
func WithLocalFallback(allow bool) LockerFactoryOption {
	return func(f *LockerFactory) {
		f.allowLocalFallback = allow
	}
}

// NewLockerFactory creates a new factory
func NewLockerFactory(cfg config.RedisConfig, opts ...LockerFactoryOption) *LockerFactory {
	f := &LockerFactory{
		redisConfig:        cfg,
		logger:             zap.NewNop(),
		allowLocalFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateLocker returns a Redis locker when Redis is enabled and reachable,
// otherwise a local one. The returned close func releases the Redis client.
func (f *LockerFactory) CreateLocker() (crm.Locker, func() error, error) {
	noop := func() error { return nil }
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using local replenishment lock")
		return crm.NewLocalLocker(), noop, nil
	}

	locker, err := NewRedisLocker(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("Using Redis replenishment lock", zap.String("addr", f.redisConfig.Addr()))
		return locker, locker.Close, nil
	}

	if !f.allowLocalFallback {
		return nil, nil, fmt.Errorf("Redis required for locking but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to local replenishment lock. "+
		"Concurrent server instances will not serialize restocks.",
		zap.Error(err),
	)
	return crm.NewLocalLocker(), noop, nil
}

var _ crm.Locker = (*RedisLocker)(nil)
