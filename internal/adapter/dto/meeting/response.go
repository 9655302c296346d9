package meeting

import (
	"time"

	"github.com/google/uuid"

	taskdto "github.com/notetrackhq/notetrack/internal/adapter/dto/task"
	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// CreatedResponse is returned immediately on meeting creation, before any
// extraction work has happened.
type CreatedResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Processed bool      `json:"processed"`
	CreatedAt time.Time `json:"created_at"`
}

// ReprocessResponse acknowledges a queued reprocess
type ReprocessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RunInfo summarizes the latest extraction run for a meeting
type RunInfo struct {
	ID           uuid.UUID  `json:"id"`
	Status       string     `json:"status"`
	LastError    string     `json:"last_error,omitempty"`
	TaskCount    int        `json:"task_count"`
	ContextLabel string     `json:"context_label,omitempty"`
	GoalID       *uuid.UUID `json:"goal_id,omitempty"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// DetailResponse is the full meeting view including extracted tasks
type DetailResponse struct {
	ID           uuid.UUID              `json:"id"`
	Title        string                 `json:"title"`
	Transcript   string                 `json:"transcript,omitempty"`
	RecordingURL *string                `json:"recording_url,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	Processed    bool                   `json:"processed"`
	ProcessedAt  *time.Time             `json:"processed_at,omitempty"`
	LatestRun    *RunInfo               `json:"latest_run,omitempty"`
	Tasks        []TaskSummary          `json:"tasks,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// TaskSummary is the compact task view embedded in meeting detail
type TaskSummary struct {
	ID          uuid.UUID                  `json:"id"`
	Title       string                     `json:"title"`
	Priority    string                     `json:"priority"`
	Status      string                     `json:"status"`
	Deadline    *time.Time                 `json:"deadline,omitempty"`
	AIExtracted bool                       `json:"ai_extracted"`
	Assignees   []taskdto.AssigneeResponse `json:"assignees,omitempty"`
}

// ListItem is the compact meeting view used in listings
type ListItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Processed bool      `json:"processed"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCreatedResponse builds the creation response from a meeting
func NewCreatedResponse(m *entities.Meeting) CreatedResponse {
	return CreatedResponse{
		ID:        m.ID,
		Title:     m.Title,
		Processed: m.Processed,
		CreatedAt: m.CreatedAt,
	}
}

// NewListItem builds a listing row from a meeting
func NewListItem(m *entities.Meeting) ListItem {
	return ListItem{
		ID:        m.ID,
		Title:     m.Title,
		Processed: m.Processed,
		CreatedAt: m.CreatedAt,
	}
}

// NewDetailResponse builds the full meeting view
func NewDetailResponse(m *entities.Meeting, run *entities.ExtractionRun) DetailResponse {
	resp := DetailResponse{
		ID:           m.ID,
		Title:        m.Title,
		Transcript:   m.Transcript,
		RecordingURL: m.RecordingURL,
		Metadata:     m.Metadata,
		Processed:    m.Processed,
		ProcessedAt:  m.ProcessedAt,
		CreatedAt:    m.CreatedAt,
	}
	if run != nil {
		resp.LatestRun = &RunInfo{
			ID:           run.ID,
			Status:       run.Status,
			LastError:    run.LastError,
			TaskCount:    run.TaskCount,
			ContextLabel: run.ContextLabel,
			GoalID:       run.GoalID,
			CategoryID:   run.CategoryID,
			CompletedAt:  run.CompletedAt,
		}
	}
	for _, t := range m.Tasks {
		summary := TaskSummary{
			ID:          t.ID,
			Title:       t.Title,
			Priority:    t.Priority,
			Status:      t.Status,
			Deadline:    t.Deadline,
			AIExtracted: t.AIExtracted,
		}
		for i := range t.Assignees {
			summary.Assignees = append(summary.Assignees, taskdto.AssigneeResponse{
				ID:   t.Assignees[i].ID,
				Name: t.Assignees[i].Name,
			})
		}
		resp.Tasks = append(resp.Tasks, summary)
	}
	return resp
}
