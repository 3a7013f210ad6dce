package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// Config holds the cache module configuration. Caching is disabled
// entirely when no Redis address is configured; the task store works
// correctly without it.
type Config struct {
	RedisAddr string        `env:"REDIS_ADDR"`
	Prefix    string        `env:"CACHE_PREFIX" envDefault:"todo:"`
	TTL       time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// LoadConfig parses the cache configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse cache config: %w", err)
	}
	return cfg, nil
}

// Enabled reports whether a Redis address was configured.
func (c Config) Enabled() bool {
	return c.RedisAddr != ""
}

// CacheModule provides the shared cache as a mono module.
type CacheModule struct {
	cache  *Cache
	client *redis.Client
	cfg    Config
}

// Compile-time interface checks.
var _ mono.Module = (*CacheModule)(nil)
var _ mono.HealthCheckableModule = (*CacheModule)(nil)

// NewModule creates a new CacheModule.
func NewModule(cfg Config) *CacheModule {
	return &CacheModule{
		cfg: cfg,
	}
}

// Name returns the module name.
func (m *CacheModule) Name() string {
	return "cache"
}

// Start connects to Redis and builds the cache.
func (m *CacheModule) Start(ctx context.Context) error {
	m.client = redis.NewClient(&redis.Options{
		Addr: m.cfg.RedisAddr,
	})

	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", m.cfg.RedisAddr, err)
	}

	m.cache = New(m.client, m.cfg.Prefix, m.cfg.TTL)

	log.Printf("[cache] Module started (redis: %s, ttl: %s)", m.cfg.RedisAddr, m.cfg.TTL)
	return nil
}

// Stop closes the Redis connection.
func (m *CacheModule) Stop(_ context.Context) error {
	if m.client != nil {
		m.client.Close()
	}
	log.Println("[cache] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *CacheModule) Health(ctx context.Context) mono.HealthStatus {
	if m.cache == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "cache not initialized",
		}
	}

	if err := m.cache.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis": m.cfg.RedisAddr,
			"stats": m.cache.GetStats(),
		},
	}
}

// GetCache returns the cache instance.
func (m *CacheModule) GetCache() *Cache {
	return m.cache
}
