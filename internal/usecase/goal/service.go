package goal

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/notetrackhq/notetrack/errors"
	goaldto "github.com/notetrackhq/notetrack/internal/adapter/dto/goal"
	"github.com/notetrackhq/notetrack/internal/domain/entities"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
)

// Service manages goals and their categories
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *goaldto.CreateGoalRequest) (*entities.Goal, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*entities.Goal, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*entities.Goal, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, req *goaldto.UpdateGoalRequest) (*entities.Goal, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	CreateCategory(ctx context.Context, goalID, ownerID uuid.UUID, req *goaldto.CreateCategoryRequest) (*entities.Category, error)
	ListCategories(ctx context.Context, ownerID uuid.UUID, goalID *uuid.UUID) ([]*entities.Category, error)
	UpdateCategory(ctx context.Context, id, ownerID uuid.UUID, req *goaldto.UpdateCategoryRequest) (*entities.Category, error)
	DeleteCategory(ctx context.Context, id, ownerID uuid.UUID) error
}

type service struct {
	goalRepo repositories.GoalRepository
}

// NewService creates the goal service
func NewService(goalRepo repositories.GoalRepository) Service {
	return &service{goalRepo: goalRepo}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req *goaldto.CreateGoalRequest) (*entities.Goal, error) {
	var parentID *uuid.UUID
	if req.ParentID != "" {
		id, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, apperrors.ErrInvalidArgument("parent_id is not a valid uuid")
		}
		parent, err := s.goalRepo.GetOwned(ctx, id, ownerID)
		if err != nil {
			return nil, apperrors.ErrDBQuery(err)
		}
		if parent == nil {
			return nil, apperrors.ErrGoalNotFound(req.ParentID)
		}
		// Only a quarterly goal rolls up to a yearly one.
		if req.Type != entities.GoalTypeQuarterly || parent.Type != entities.GoalTypeYearly {
			return nil, apperrors.ErrGoalInvalidParent()
		}
		parentID = &id
	}

	g := entities.NewGoal(ownerID, req.Title, req.Description, req.Type, parentID)
	if err := s.goalRepo.Create(ctx, g); err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	return g, nil
}

func (s *service) Get(ctx context.Context, id, ownerID uuid.UUID) (*entities.Goal, error) {
	g, err := s.goalRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if g == nil {
		return nil, apperrors.ErrGoalNotFound(id.String())
	}
	return g, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]*entities.Goal, error) {
	goals, err := s.goalRepo.List(ctx, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	return goals, nil
}

func (s *service) Update(ctx context.Context, id, ownerID uuid.UUID, req *goaldto.UpdateGoalRequest) (*entities.Goal, error) {
	g, err := s.goalRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if g == nil {
		return nil, apperrors.ErrGoalNotFound(id.String())
	}

	if req.Title != nil {
		g.Title = *req.Title
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.ParentID != nil {
		if *req.ParentID == "" {
			g.ParentID = nil
		} else {
			parentID, err := uuid.Parse(*req.ParentID)
			if err != nil {
				return nil, apperrors.ErrInvalidArgument("parent_id is not a valid uuid")
			}
			if parentID == g.ID {
				return nil, apperrors.ErrGoalInvalidParent()
			}
			parent, err := s.goalRepo.GetOwned(ctx, parentID, ownerID)
			if err != nil {
				return nil, apperrors.ErrDBQuery(err)
			}
			if parent == nil {
				return nil, apperrors.ErrGoalNotFound(*req.ParentID)
			}
			if g.Type != entities.GoalTypeQuarterly || parent.Type != entities.GoalTypeYearly {
				return nil, apperrors.ErrGoalInvalidParent()
			}
			g.ParentID = &parentID
		}
	}

	if err := s.goalRepo.Update(ctx, g); err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	return g, nil
}

func (s *service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	g, err := s.goalRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return apperrors.ErrDBQuery(err)
	}
	if g == nil {
		return apperrors.ErrGoalNotFound(id.String())
	}
	if err := s.goalRepo.Delete(ctx, id); err != nil {
		return apperrors.ErrDBQuery(err)
	}
	return nil
}

func (s *service) CreateCategory(ctx context.Context, goalID, ownerID uuid.UUID, req *goaldto.CreateCategoryRequest) (*entities.Category, error) {
	g, err := s.goalRepo.GetOwned(ctx, goalID, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if g == nil {
		return nil, apperrors.ErrGoalNotFound(goalID.String())
	}

	c := entities.NewCategory(ownerID, goalID, req.Name, req.Description)
	if err := s.goalRepo.CreateCategory(ctx, c); err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	return c, nil
}

func (s *service) ListCategories(ctx context.Context, ownerID uuid.UUID, goalID *uuid.UUID) ([]*entities.Category, error) {
	categories, err := s.goalRepo.ListCategories(ctx, ownerID, goalID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	return categories, nil
}

func (s *service) UpdateCategory(ctx context.Context, id, ownerID uuid.UUID, req *goaldto.UpdateCategoryRequest) (*entities.Category, error) {
	c, err := s.goalRepo.GetCategoryOwned(ctx, id, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if c == nil {
		return nil, apperrors.ErrCategoryNotFound(id.String())
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}

	if err := s.goalRepo.UpdateCategory(ctx, c); err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id, ownerID uuid.UUID) error {
	c, err := s.goalRepo.GetCategoryOwned(ctx, id, ownerID)
	if err != nil {
		return apperrors.ErrDBQuery(err)
	}
	if c == nil {
		return apperrors.ErrCategoryNotFound(id.String())
	}
	if err := s.goalRepo.DeleteCategory(ctx, id); err != nil {
		return apperrors.ErrDBQuery(err)
	}
	return nil
}
