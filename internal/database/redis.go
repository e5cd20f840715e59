package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/khaynem/WasteWise-Backend/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Rate limiting and reset tokens will be disabled.", err)
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// Rate Limiting
func CheckRateLimit(key string, limit int, duration time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("rate_limit:%s", key)
	count, err := Redis.Incr(Ctx, redisKey).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		Redis.Expire(Ctx, redisKey, duration)
	}

	if count > int64(limit) {
		return false, nil
	}
	return true, nil
}

// Password reset tokens. Keyed by the token itself, value is the user id,
// expiry enforced by Redis TTL so tokens survive process restarts and are
// shared across instances.
const resetTokenTTL = 1 * time.Hour

func StoreResetToken(token, userID string) error {
	return Redis.Set(Ctx, "reset_token:"+token, userID, resetTokenTTL).Err()
}

func ConsumeResetToken(token string) (string, error) {
	key := "reset_token:" + token
	userID, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return "", err
	}
	// Single use: delete on successful lookup.
	Redis.Del(Ctx, key)
	return userID, nil
}

// Caching
func CacheSet(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, data, expiration).Err()
}

func CacheGet(key string, dest interface{}) error {
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func CacheInvalidate(pattern string) error {
	keys, err := Redis.Keys(Ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return Redis.Del(Ctx, keys...).Err()
	}
	return nil
}
