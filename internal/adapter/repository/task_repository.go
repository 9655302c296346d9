package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *entities.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Task, error) {
	var task entities.Task
	err := r.db.WithContext(ctx).
		Preload("Assignees").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, ownerID uuid.UUID, filter repositories.TaskFilter) ([]*entities.Task, error) {
	var tasks []*entities.Task
	query := r.db.WithContext(ctx).Preload("Assignees").Where("tasks.owner_id = ?", ownerID)
	if filter.Status != "" {
		query = query.Where("tasks.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("tasks.priority = ?", filter.Priority)
	}
	if filter.GoalID != nil {
		query = query.Where("tasks.goal_id = ?", *filter.GoalID)
	}
	if filter.CategoryID != nil {
		query = query.Where("tasks.category_id = ?", *filter.CategoryID)
	}
	if filter.MeetingID != nil {
		query = query.Where("tasks.meeting_id = ?", *filter.MeetingID)
	}
	if filter.AssigneeID != nil {
		query = query.
			Joins("JOIN task_assignments ta ON ta.task_id = tasks.id").
			Where("ta.contact_id = ?", *filter.AssigneeID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	err := query.Order("tasks.created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *entities.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Task{}).Error
}

func (r *taskRepository) ReplaceAssignees(ctx context.Context, task *entities.Task, contacts []*entities.Contact) error {
	return r.db.WithContext(ctx).Model(task).Association("Assignees").Replace(contacts)
}
