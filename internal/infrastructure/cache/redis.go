package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/notetrackhq/notetrack/pkg/config"
)

// RedisLocker implements MeetingLocker on a shared Redis instance via
// SET NX leases, so concurrent API replicas agree on who owns a meeting.
type RedisLocker struct {
	client *redis.Client
}

// NewRedisLocker connects to Redis and verifies the connection
func NewRedisLocker(cfg *config.Config) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisLocker{client: client}, nil
}

func lockKey(meetingID uuid.UUID) string {
	return "extraction:lock:" + meetingID.String()
}

func (l *RedisLocker) Acquire(ctx context.Context, meetingID uuid.UUID, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, lockKey(meetingID), "1", ttl).Result()
}

func (l *RedisLocker) Release(ctx context.Context, meetingID uuid.UUID) error {
	return l.client.Del(ctx, lockKey(meetingID)).Err()
}

// Close releases the underlying connection
func (l *RedisLocker) Close() error {
	return l.client.Close()
}
