package utils

import (
	"context"
	"log"
	"time"

	"plenura/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// SlotCacheClient is the dedicated client for computed day-slot caching.
	SlotCacheClient *redis.Client
)

// InitRedis initializes all Redis clients eagerly at startup.
func InitRedis() {
	InitCache()
	InitSlotCache()
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitSlotCache initializes the Redis client for slot caching.
func InitSlotCache() {
	SlotCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSlotCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SlotCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Slot Cache): %v", err)
	}
}

// GetSlotCacheClient returns the Redis client for computed day slots.
func GetSlotCacheClient() *redis.Client {
	if SlotCacheClient == nil {
		InitSlotCache()
	}
	return SlotCacheClient
}
