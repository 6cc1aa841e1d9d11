package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/rio-stats/internal/platform/logging"
)

const scanBatch = 200

// Redis shares cached responses between processes. Backend errors are
// logged and reported as misses.
type Redis struct {
	client    redis.UniversalClient
	namespace string
	ttl       time.Duration
	logger    *logging.Logger
}

// OpenRedis parses a redis:// URL and pings the server.
func OpenRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func NewRedis(client redis.UniversalClient, namespace string, ttl time.Duration, logger *logging.Logger) *Redis {
	return &Redis{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
		logger:    logging.OrDefault(logger),
	}
}

func (r *Redis) key(key string) string {
	if r.namespace == "" {
		return key
	}
	return r.namespace + ":" + key
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "redis cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return value, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if key == "" {
		return
	}
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "redis cache set failed", "key", key, "error", err)
	}
}

func (r *Redis) Delete(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.WarnContext(ctx, "redis cache delete failed", "key", key, "error", err)
	}
}

func (r *Redis) DeletePrefix(ctx context.Context, prefix string) {
	if prefix == "" {
		return
	}
	iter := r.client.Scan(ctx, 0, r.key(prefix)+"*", scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.client.Del(ctx, batch...).Err(); err != nil {
			r.logger.WarnContext(ctx, "redis cache prefix delete failed", "prefix", prefix, "error", err)
		}
		batch = batch[:0]
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			flush()
		}
	}
	flush()
	if err := iter.Err(); err != nil {
		r.logger.WarnContext(ctx, "redis cache scan failed", "prefix", prefix, "error", err)
	}
}
