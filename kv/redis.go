package kv

import (
	"context"

	"github.com/cockroachdb/errors"
	redis "github.com/redis/go-redis/v9"
)

// RedisOptions configures a Redis store.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key, to share a database between books.
	Prefix string
}

// Redis is a Store backed by a Redis server. Values never expire.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects lazily to the server described by opts.
func NewRedis(opts RedisOptions) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &Redis{client: client, prefix: opts.Prefix}
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "redis get %q", key)
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis set %q", key)
	}
	return nil
}
