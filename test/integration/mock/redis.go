package mock

import (
	"context"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// RedisServer is an in-process Redis for the rate limiter.
type RedisServer struct {
	server *miniredis.Miniredis
	client *redis.Client
}

func NewRedisServer() *RedisServer {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	return &RedisServer{
		server: server,
		client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
	}
}

func (r *RedisServer) Client() *redis.Client {
	return r.client
}

// Clear drops every key, resetting all rate limit windows.
func (r *RedisServer) Clear() error {
	return r.client.FlushAll(context.Background()).Err()
}
