package ports

import (
	"context"
	"time"
)

// ShareAckStore keeps short-lived "link copied" markers.
type ShareAckStore interface {
	Mark(ctx context.Context, key string, ttl time.Duration) error
	Active(ctx context.Context, key string) (bool, error)
}
