package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
)

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *meetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) List(ctx context.Context, ownerID uuid.UUID, filter repositories.MeetingFilter) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Processed != nil {
		query = query.Where("processed = ?", *filter.Processed)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	err := query.Order("created_at DESC").Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Meeting{}).Error
}
