package session

import (
	"fmt"

	"github.com/booktime/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StoreFactory creates session stores based on configuration
type StoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory sessions when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoreFactory creates a new factory
func NewStoreFactory(cfg config.RedisConfig, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore creates a session store, trying Redis first and falling back
// to in-memory if Redis is not available and fallback is allowed
func (f *StoreFactory) CreateStore() (Store, error) {
	store, err := NewRedisStore(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis basket session store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for basket sessions but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory basket sessions. "+
		"Anonymous baskets will not survive restarts or be shared across instances.",
		zap.Error(err),
	)
	return NewMemoryStore(), nil
}
