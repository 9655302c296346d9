package task

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// AssigneeResponse is the compact contact view embedded in tasks
type AssigneeResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TaskResponse is the API view of a task
type TaskResponse struct {
	ID             uuid.UUID          `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	Priority       string             `json:"priority"`
	Status         string             `json:"status"`
	Deadline       *time.Time         `json:"deadline,omitempty"`
	GoalID         *uuid.UUID         `json:"goal_id,omitempty"`
	CategoryID     *uuid.UUID         `json:"category_id,omitempty"`
	MeetingID      *uuid.UUID         `json:"meeting_id,omitempty"`
	AIExtracted    bool               `json:"ai_extracted"`
	Reviewed       bool               `json:"reviewed"`
	ReviewedAt     *time.Time         `json:"reviewed_at,omitempty"`
	SourceExcerpts []string           `json:"source_excerpts,omitempty"`
	Assignees      []AssigneeResponse `json:"assignees,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// NewTaskResponse builds the API view of a task
func NewTaskResponse(t *entities.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		Deadline:    t.Deadline,
		GoalID:      t.GoalID,
		CategoryID:  t.CategoryID,
		MeetingID:   t.MeetingID,
		AIExtracted: t.AIExtracted,
		Reviewed:    t.Reviewed,
		ReviewedAt:  t.ReviewedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if len(t.SourceExcerpts) > 0 {
		var excerpts []string
		if err := json.Unmarshal(t.SourceExcerpts, &excerpts); err == nil {
			resp.SourceExcerpts = excerpts
		}
	}
	for i := range t.Assignees {
		resp.Assignees = append(resp.Assignees, AssigneeResponse{
			ID:   t.Assignees[i].ID,
			Name: t.Assignees[i].Name,
		})
	}
	return resp
}
