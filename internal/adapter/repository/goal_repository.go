package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
)

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) repositories.GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *entities.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Goal, error) {
	var goal entities.Goal
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*entities.Goal, error) {
	var goals []*entities.Goal
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, goal *entities.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Goal{}).Error
}

func (r *goalRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *goalRepository) GetCategoryOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Category, error) {
	var category entities.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *goalRepository) ListCategories(ctx context.Context, ownerID uuid.UUID, goalID *uuid.UUID) ([]*entities.Category, error) {
	var categories []*entities.Category
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if goalID != nil {
		query = query.Where("goal_id = ?", *goalID)
	}
	err := query.Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *goalRepository) UpdateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *goalRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Category{}).Error
}
