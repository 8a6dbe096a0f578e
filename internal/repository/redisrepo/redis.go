package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

func Get[T any](rdb *redis.Client, ctx context.Context, key string) (*T, error) {
	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func SetJSON(rdb *redis.Client, ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	valJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return rdb.Set(ctx, key, valJSON, expiration).Err()
}

func Del(rdb *redis.Client, ctx context.Context, keys ...string) error {
	return rdb.Del(ctx, keys...).Err()
}
