package fint

import (
	"time"

	"github.com/ferialink/FeriaLink/internal/pkg/cache"
)

// RedisCache adapts the application cache to the client's Cache interface.
type RedisCache struct{}

func (RedisCache) Get(key string) (string, error) {
	return cache.Get(key)
}

func (RedisCache) Set(key string, value string, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}
