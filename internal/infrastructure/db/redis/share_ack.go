package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ShareAckStore keeps "link copied" markers as expiring keys.
// Key format: share_ack:<client_id>:<letter_id>
type ShareAckStore struct {
	client *redis.Client
}

func NewShareAckStore(client *redis.Client) *ShareAckStore {
	return &ShareAckStore{client: client}
}

// Mark sets the marker, restarting its ttl when it already exists.
func (s *ShareAckStore) Mark(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), "1", ttl).Err(); err != nil {
		return fmt.Errorf("share ack mark: %w", err)
	}
	return nil
}

// Active reports whether the marker is still alive.
func (s *ShareAckStore) Active(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("share ack check: %w", err)
	}
	return n > 0, nil
}

func (s *ShareAckStore) key(key string) string {
	return "share_ack:" + key
}
