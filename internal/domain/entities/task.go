package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Task priorities
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// Task statuses
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// Task is a unit of work, either created by hand or extracted from a
// meeting transcript. AIExtracted marks provenance and never flips back
// to false once set, even if the user edits the task afterwards.
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID     uuid.UUID  `json:"owner_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Description string     `json:"description" gorm:"type:text"`
	Priority    string     `json:"priority" gorm:"type:varchar(20);not null;default:'medium'"`
	Status      string     `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Deadline    *time.Time `json:"deadline,omitempty" gorm:"type:timestamp"`

	GoalID     *uuid.UUID `json:"goal_id,omitempty" gorm:"type:uuid;index"`
	CategoryID *uuid.UUID `json:"category_id,omitempty" gorm:"type:uuid;index"`

	MeetingID       *uuid.UUID     `json:"meeting_id,omitempty" gorm:"type:uuid;index"`
	AIExtracted     bool           `json:"ai_extracted" gorm:"not null;default:false"`
	ExtractionRunID *uuid.UUID     `json:"extraction_run_id,omitempty" gorm:"type:uuid;index"`
	SourceExcerpts  datatypes.JSON `json:"source_excerpts,omitempty" gorm:"type:jsonb"`
	Reviewed        bool           `json:"reviewed" gorm:"not null;default:false"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty" gorm:"type:timestamp"`

	Assignees []Contact `json:"assignees,omitempty" gorm:"many2many:task_assignments;"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a manually authored task
func NewTask(ownerID uuid.UUID, title, description, priority string) *Task {
	if priority == "" {
		priority = TaskPriorityMedium
	}
	return &Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      TaskStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// NewExtractedTask creates a task produced by an extraction run
func NewExtractedTask(ownerID, meetingID, runID uuid.UUID, title, description, priority string) *Task {
	t := NewTask(ownerID, title, description, priority)
	t.MeetingID = &meetingID
	t.AIExtracted = true
	t.ExtractionRunID = &runID
	return t
}

// MarkReviewed records that a user has looked at an extracted task. The
// mark sticks across further edits, and AIExtracted stays true so the
// task's provenance is never lost.
func (t *Task) MarkReviewed(at time.Time) {
	if t.Reviewed {
		return
	}
	t.Reviewed = true
	t.ReviewedAt = &at
	t.UpdatedAt = at
}

// ValidPriority reports whether p is a recognized priority value
func ValidPriority(p string) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// ValidStatus reports whether s is a recognized status value
func ValidStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}
