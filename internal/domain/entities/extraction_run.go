package entities

import (
	"time"

	"github.com/google/uuid"
)

// Extraction run statuses
const (
	RunStatusPending    = "pending"
	RunStatusExtracting = "extracting"
	RunStatusPersisting = "persisting"
	RunStatusDone       = "done"
	RunStatusFailed     = "failed"
)

// ExtractionRun records one pass of the pipeline over a meeting. Reprocessing
// creates a new run pointing at the one it supersedes, so the history of runs
// for a meeting is an explicit chain rather than overwritten state.
type ExtractionRun struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID    uuid.UUID  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	OwnerID      uuid.UUID  `json:"owner_id" gorm:"type:uuid;not null;index"`
	Status       string     `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	LastError    string     `json:"last_error,omitempty" gorm:"type:text"`
	SupersedesID *uuid.UUID `json:"supersedes_id,omitempty" gorm:"type:uuid"`
	TaskCount    int        `json:"task_count" gorm:"not null;default:0"`

	// Resolved context, recorded when the run reaches the write phase.
	ContextLabel string     `json:"context_label,omitempty" gorm:"type:varchar(255)"`
	GoalID       *uuid.UUID `json:"goal_id,omitempty" gorm:"type:uuid"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty" gorm:"type:uuid"`

	StartedAt   *time.Time `json:"started_at,omitempty" gorm:"type:timestamp"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:timestamp"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ExtractionRun) TableName() string {
	return "extraction_runs"
}

// NewExtractionRun creates a pending run for a meeting
func NewExtractionRun(meetingID, ownerID uuid.UUID, supersedes *uuid.UUID) *ExtractionRun {
	return &ExtractionRun{
		ID:           uuid.New(),
		MeetingID:    meetingID,
		OwnerID:      ownerID,
		Status:       RunStatusPending,
		SupersedesID: supersedes,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// MarkExtracting transitions the run into the LLM phase
func (r *ExtractionRun) MarkExtracting() {
	now := time.Now()
	r.Status = RunStatusExtracting
	r.StartedAt = &now
	r.UpdatedAt = now
}

// MarkPersisting transitions the run into the write phase, recording the
// context the extraction ran under.
func (r *ExtractionRun) MarkPersisting(contextLabel string, goalID, categoryID *uuid.UUID) {
	r.Status = RunStatusPersisting
	r.ContextLabel = contextLabel
	r.GoalID = goalID
	r.CategoryID = categoryID
	r.UpdatedAt = time.Now()
}

// MarkDone completes the run with the number of tasks it produced
func (r *ExtractionRun) MarkDone(taskCount int) {
	now := time.Now()
	r.Status = RunStatusDone
	r.TaskCount = taskCount
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// MarkFailed completes the run with an error message
func (r *ExtractionRun) MarkFailed(errMsg string) {
	now := time.Now()
	r.Status = RunStatusFailed
	r.LastError = errMsg
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// IsTerminal reports whether the run has reached a final state
func (r *ExtractionRun) IsTerminal() bool {
	return r.Status == RunStatusDone || r.Status == RunStatusFailed
}
