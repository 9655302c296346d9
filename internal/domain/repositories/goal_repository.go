package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// GoalRepository defines persistence for goals and their categories
type GoalRepository interface {
	Create(ctx context.Context, goal *entities.Goal) error
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Goal, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*entities.Goal, error)
	Update(ctx context.Context, goal *entities.Goal) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, category *entities.Category) error
	GetCategoryOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Category, error)
	ListCategories(ctx context.Context, ownerID uuid.UUID, goalID *uuid.UUID) ([]*entities.Category, error)
	UpdateCategory(ctx context.Context, category *entities.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
