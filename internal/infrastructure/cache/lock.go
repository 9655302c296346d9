package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MeetingLocker serializes extraction work per meeting. Acquire returns
// false when another run already holds the meeting; the lease expires on
// its own so a crashed worker cannot wedge a meeting forever.
type MeetingLocker interface {
	Acquire(ctx context.Context, meetingID uuid.UUID, ttl time.Duration) (bool, error)
	Release(ctx context.Context, meetingID uuid.UUID) error
}
