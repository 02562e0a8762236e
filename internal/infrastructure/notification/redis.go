package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/propledger/backend/internal/application/backup"
)

// RedisNotifier publishes notifications to a Redis channel so other services
// (and connected clients) can react to backup and lifecycle events.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

var _ backup.Notifier = (*RedisNotifier)(nil)

// envelope is the wire format published to the channel
type envelope struct {
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Category  string         `json:"category"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewRedisNotifier creates a Redis-backed notifier publishing to channel
func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

// Notify publishes the notification to the configured channel
func (n *RedisNotifier) Notify(ctx context.Context, title, message, category string, data map[string]any) error {
	payload, err := json.Marshal(envelope{
		Title:     title,
		Message:   message,
		Category:  category,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
