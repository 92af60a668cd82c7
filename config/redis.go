package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/ariebrainware/colposcopy-api/util"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

const redisPingTimeout = 2 * time.Second

// ConnectRedis dials REDIS_ADDR once per process. An unset address, or
// APPENV=test, leaves the client nil and the upload rate limiter counts in
// process memory. A failed ping is reported and also leaves the client nil.
func ConnectRedis() (*redis.Client, error) {
	var err error
	redisOnce.Do(func() {
		cfg := LoadConfig()
		if cfg != nil && cfg.AppEnv == "test" {
			return
		}

		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			return
		}

		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASS"),
			DB:       redisDB(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if pingErr := rdb.Ping(ctx).Err(); pingErr != nil {
			_ = rdb.Close()
			err = fmt.Errorf("redis ping %s: %w", addr, pingErr)
			return
		}

		redisClient = rdb
		l := util.Logger()
		l.Info().Str("addr", addr).Msg("rate limiter using redis")
	})
	return redisClient, err
}

// redisDB parses REDIS_DB, falling back to database 0.
func redisDB() int {
	n, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// GetRedisClient is nil until ConnectRedis succeeds.
func GetRedisClient() *redis.Client {
	return redisClient
}

// SetRedisClientForTest injects a client, typically one built by redismock.
func SetRedisClientForTest(client *redis.Client) {
	redisClient = client
}

// ResetRedisClientForTest lets the next ConnectRedis dial again.
func ResetRedisClientForTest() {
	redisClient = nil
	redisOnce = sync.Once{}
}
