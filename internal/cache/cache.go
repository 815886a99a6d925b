package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/GokulNaveen2708/visa-sponsorship-detector/internal/model"
)

// keyPrefix namespaces every key this module writes
const keyPrefix = "visadetector:v1:"

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from a document identity
func CacheKey(identity string) string {
	hash := sha256.Sum256([]byte(identity))
	return keyPrefix + hex.EncodeToString(hash[:])
}

// New builds the store selected by the cache config
func New(cfg model.CacheConfig) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return NewMemoryCache(cfg.TTL, 10*time.Minute), nil
	case "disk":
		return NewDiskCache(cfg.Dir, cfg.TTL), nil
	case "layered":
		// Memory in front of redis when an address is configured, else disk
		var back Cache = NewDiskCache(cfg.Dir, cfg.TTL)
		if cfg.RedisAddr != "" {
			back = NewRedisCache(cfg.RedisAddr, "", cfg.RedisDB, cfg.TTL)
		}
		return NewLayeredCache(NewMemoryCache(cfg.TTL, 10*time.Minute), back, DefaultFrontTTL), nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache requires cache.redis_addr")
		}
		return NewRedisCache(cfg.RedisAddr, "", cfg.RedisDB, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, disk, layered, redis)", cfg.Backend)
	}
}
