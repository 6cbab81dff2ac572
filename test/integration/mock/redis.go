// Package mock provides in-memory test doubles for the integration suite.
package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisClient *redis.Client

// NewRedis returns a client backed by a process-local miniredis instance,
// started once per test run. Used by the login rate limiter in the suite.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisClient = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})
	return redisClient
}

// ClearRedis flushes all keys. Called before each scenario.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}
