package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// TaskFilter narrows task listings
type TaskFilter struct {
	Status     string
	Priority   string
	GoalID     *uuid.UUID
	CategoryID *uuid.UUID
	MeetingID  *uuid.UUID
	AssigneeID *uuid.UUID
	Limit      int
	Offset     int
}

// TaskRepository defines persistence for tasks and their assignments
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, filter TaskFilter) ([]*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceAssignees(ctx context.Context, task *entities.Task, contacts []*entities.Contact) error
}
