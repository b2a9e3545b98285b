package redisclient

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client wraps a Redis client with OpenTelemetry tracing
type Client struct {
	client redis.UniversalClient
}

// NewClient creates a new traced Redis client
func NewClient(client redis.UniversalClient) *Client {
	return &Client{client: client}
}

// traced runs a Redis command inside a span and records its outcome
func (c *Client) traced(ctx context.Context, operation string, attrs []attribute.KeyValue, run func(ctx context.Context) error) {
	start := time.Now()
	attrs = append(attrs,
		attribute.String("redis.operation", operation),
		attribute.String("redis.client", "app-frequencia"),
	)
	ctx, span := otel.Tracer("redis").Start(ctx, "redis."+operation, trace.WithAttributes(attrs...))
	defer func() {
		span.SetAttributes(attribute.Int64("redis.duration_ms", time.Since(start).Milliseconds()))
		span.End()
	}()

	if err := run(ctx); err != nil && !errors.Is(err, redis.Nil) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "success")
}

// Get wraps Redis GET
func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	var cmd *redis.StringCmd
	c.traced(ctx, "get", []attribute.KeyValue{attribute.String("redis.key", key)}, func(ctx context.Context) error {
		cmd = c.client.Get(ctx, key)
		return cmd.Err()
	})
	return cmd
}

// Set wraps Redis SET
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	var cmd *redis.StatusCmd
	attrs := []attribute.KeyValue{
		attribute.String("redis.key", key),
		attribute.String("redis.expiration", expiration.String()),
	}
	c.traced(ctx, "set", attrs, func(ctx context.Context) error {
		cmd = c.client.Set(ctx, key, value, expiration)
		return cmd.Err()
	})
	return cmd
}

// Del wraps Redis DEL
func (c *Client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var cmd *redis.IntCmd
	c.traced(ctx, "del", []attribute.KeyValue{attribute.StringSlice("redis.keys", keys)}, func(ctx context.Context) error {
		cmd = c.client.Del(ctx, keys...)
		return cmd.Err()
	})
	return cmd
}

// Incr wraps Redis INCR
func (c *Client) Incr(ctx context.Context, key string) *redis.IntCmd {
	var cmd *redis.IntCmd
	c.traced(ctx, "incr", []attribute.KeyValue{attribute.String("redis.key", key)}, func(ctx context.Context) error {
		cmd = c.client.Incr(ctx, key)
		return cmd.Err()
	})
	return cmd
}

// Expire wraps Redis EXPIRE
func (c *Client) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	var cmd *redis.BoolCmd
	attrs := []attribute.KeyValue{
		attribute.String("redis.key", key),
		attribute.String("redis.expiration", expiration.String()),
	}
	c.traced(ctx, "expire", attrs, func(ctx context.Context) error {
		cmd = c.client.Expire(ctx, key, expiration)
		return cmd.Err()
	})
	return cmd
}

// TTL wraps Redis TTL
func (c *Client) TTL(ctx context.Context, key string) *redis.DurationCmd {
	var cmd *redis.DurationCmd
	c.traced(ctx, "ttl", []attribute.KeyValue{attribute.String("redis.key", key)}, func(ctx context.Context) error {
		cmd = c.client.TTL(ctx, key)
		return cmd.Err()
	})
	return cmd
}

// Ping wraps Redis PING
func (c *Client) Ping(ctx context.Context) *redis.StatusCmd {
	var cmd *redis.StatusCmd
	c.traced(ctx, "ping", nil, func(ctx context.Context) error {
		cmd = c.client.Ping(ctx)
		return cmd.Err()
	})
	return cmd
}

// Close closes the underlying client
func (c *Client) Close() error {
	return c.client.Close()
}
