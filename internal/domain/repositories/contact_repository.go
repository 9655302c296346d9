package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// ContactRepository defines persistence for contacts
type ContactRepository interface {
	Create(ctx context.Context, contact *entities.Contact) error
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Contact, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*entities.Contact, error)
	Update(ctx context.Context, contact *entities.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
}
