package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// MeetingFilter narrows meeting listings
type MeetingFilter struct {
	Processed *bool
	Limit     int
	Offset    int
}

// MeetingRepository defines persistence for meetings
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	// GetOwned returns the meeting only if it belongs to ownerID; nil otherwise
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Meeting, error)
	List(ctx context.Context, ownerID uuid.UUID, filter MeetingFilter) ([]*entities.Meeting, error)
	Update(ctx context.Context, meeting *entities.Meeting) error
	Delete(ctx context.Context, id uuid.UUID) error
}
