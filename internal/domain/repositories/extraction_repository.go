package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// ExtractedTask pairs a task with the contacts it should be assigned to
type ExtractedTask struct {
	Task      *entities.Task
	Assignees []*entities.Contact
}

// ExtractionRepository defines persistence for extraction runs, including the
// single transaction that swaps a meeting's extracted tasks for a new set.
type ExtractionRepository interface {
	CreateRun(ctx context.Context, run *entities.ExtractionRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*entities.ExtractionRun, error)
	// ClaimRun atomically moves a pending run to extracting; returns false if
	// another worker already claimed it or the run is no longer pending.
	ClaimRun(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateRun(ctx context.Context, run *entities.ExtractionRun) error
	LatestRunForMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.ExtractionRun, error)

	// PersistResults commits a completed run in one transaction: extracted
	// tasks from prior runs on the meeting are removed, the new tasks and
	// their assignments are inserted, the meeting is marked processed, and
	// the run is closed as done. Manually created tasks are never touched.
	PersistResults(ctx context.Context, run *entities.ExtractionRun, meeting *entities.Meeting, tasks []ExtractedTask) error
}
