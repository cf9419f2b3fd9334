// Package audit contains the infrastructure sinks for security events: a
// structured-log sink and a Redis pub/sub publisher feeding external
// consumers (SIEM collectors, the admin websocket feed).
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	appaudit "github.com/quizforge/quizforge/internal/application/audit"
)

const defaultChannelPrefix = "security:events:"

// RedisPublisher publishes security events to Redis pub/sub, one channel per
// severity (e.g. "security:events:CRITICAL") so consumers can subscribe by
// urgency.
type RedisPublisher struct {
	client        *redis.Client
	channelPrefix string
}

// RedisPublisherConfig configures a RedisPublisher.
type RedisPublisherConfig struct {
	Client        *redis.Client
	ChannelPrefix string
}

// NewRedisPublisher creates a RedisPublisher.
func NewRedisPublisher(cfg RedisPublisherConfig) *RedisPublisher {
	prefix := cfg.ChannelPrefix
	if prefix == "" {
		prefix = defaultChannelPrefix
	}
	return &RedisPublisher{client: cfg.Client, channelPrefix: prefix}
}

// Publish implements audit.Sink.
func (p *RedisPublisher) Publish(ctx context.Context, event appaudit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode security event: %w", err)
	}

	channel := p.channelPrefix + string(event.Severity)
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish security event: %w", err)
	}
	return nil
}
