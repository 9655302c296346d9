package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
)

type extractionRepository struct {
	db *gorm.DB
}

// NewExtractionRepository creates a new extraction run repository
func NewExtractionRepository(db *gorm.DB) repositories.ExtractionRepository {
	return &extractionRepository{db: db}
}

func (r *extractionRepository) CreateRun(ctx context.Context, run *entities.ExtractionRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *extractionRepository) GetRun(ctx context.Context, id uuid.UUID) (*entities.ExtractionRun, error) {
	var run entities.ExtractionRun
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// ClaimRun uses a conditional UPDATE so only one worker wins the claim.
func (r *extractionRepository) ClaimRun(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entities.ExtractionRun{}).
		Where("id = ? AND status = ?", id, entities.RunStatusPending).
		Updates(map[string]interface{}{
			"status":     entities.RunStatusExtracting,
			"started_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *extractionRepository) UpdateRun(ctx context.Context, run *entities.ExtractionRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *extractionRepository) LatestRunForMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.ExtractionRun, error) {
	var run entities.ExtractionRun
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// PersistResults swaps the meeting's extracted tasks in a single transaction.
// Tasks created by hand (ai_extracted = false) survive untouched, and a
// failure at any step leaves the previous run's tasks in place.
func (r *extractionRepository) PersistResults(ctx context.Context, run *entities.ExtractionRun, meeting *entities.Meeting, tasks []repositories.ExtractedTask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("meeting_id = ? AND ai_extracted = ? AND extraction_run_id <> ?", meeting.ID, true, run.ID).
			Delete(&entities.Task{}).Error
		if err != nil {
			return err
		}

		for _, et := range tasks {
			if err := tx.Create(et.Task).Error; err != nil {
				return err
			}
			if len(et.Assignees) > 0 {
				if err := tx.Model(et.Task).Association("Assignees").Replace(et.Assignees); err != nil {
					return err
				}
			}
		}

		now := time.Now()
		meeting.MarkProcessed(now)
		if err := tx.Save(meeting).Error; err != nil {
			return err
		}

		run.MarkDone(len(tasks))
		return tx.Save(run).Error
	})
}
