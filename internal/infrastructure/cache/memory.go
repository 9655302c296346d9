package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryLocker implements MeetingLocker in process memory. It is the
// fallback for single-instance deployments without Redis; leases still
// expire so a stuck run releases its meeting.
type MemoryLocker struct {
	mu     sync.Mutex
	leases map[uuid.UUID]time.Time
}

// NewMemoryLocker creates an in-process meeting locker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		leases: make(map[uuid.UUID]time.Time),
	}
}

func (l *MemoryLocker) Acquire(_ context.Context, meetingID uuid.UUID, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if expiry, held := l.leases[meetingID]; held && now.Before(expiry) {
		return false, nil
	}
	l.leases[meetingID] = now.Add(ttl)
	return true, nil
}

func (l *MemoryLocker) Release(_ context.Context, meetingID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.leases, meetingID)
	return nil
}
