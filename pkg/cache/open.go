package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/socnet/pkg/observability"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a backend. It maps onto the [cache] table
// of the config file.
type Config struct {
	Backend    string `toml:"backend" json:"backend"`
	Dir        string `toml:"dir" json:"dir,omitempty"`
	URL        string `toml:"url" json:"url,omitempty"`
	Database   string `toml:"database" json:"database,omitempty"`
	Collection string `toml:"collection" json:"collection,omitempty"`
	Namespace  string `toml:"namespace" json:"namespace,omitempty"`
}

// SetDefaults fills the backend (file) and, for the file backend, its
// directory.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.Backend == BackendFile && c.Dir == "" {
		if dir, err := DefaultDir(); err == nil {
			c.Dir = dir
		}
	}
}

// Open builds the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	cfg.SetDefaults()
	switch strings.ToLower(cfg.Backend) {
	case BackendNone, "null", "off":
		return NewNullCache(), nil
	case BackendFile:
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		if cfg.URL == "" {
			cfg.URL = "redis://localhost:6379/0"
		}
		c, err := OpenRedis(ctx, cfg.URL, cfg.Namespace)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		if cfg.URL == "" {
			cfg.URL = "mongodb://localhost:27017"
		}
		c, err := OpenMongo(ctx, cfg.URL, cfg.Database, cfg.Collection)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Lookup reads key and reports the hit or miss to the registered cache
// hooks under keyType. Backend errors count as misses for the hooks.
func Lookup(ctx context.Context, c Cache, keyType, key string) ([]byte, bool, error) {
	data, ok, err := c.Get(ctx, key)
	if ok && err == nil {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, ok, err
}

// Store writes key and reports the write to the registered cache hooks.
func Store(ctx context.Context, c Cache, keyType, key string, data []byte, ttl time.Duration) error {
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
	return nil
}
