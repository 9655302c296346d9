package goal

import (
	"time"

	"github.com/google/uuid"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// CategoryResponse is the API view of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	GoalID      uuid.UUID `json:"goal_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// GoalResponse is the API view of a goal with its categories
type GoalResponse struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Type        string             `json:"type"`
	ParentID    *uuid.UUID         `json:"parent_id,omitempty"`
	Categories  []CategoryResponse `json:"categories,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// NewCategoryResponse builds the API view of a category
func NewCategoryResponse(c *entities.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		GoalID:      c.GoalID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// NewGoalResponse builds the API view of a goal
func NewGoalResponse(g *entities.Goal) GoalResponse {
	resp := GoalResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Type:        g.Type,
		ParentID:    g.ParentID,
		CreatedAt:   g.CreatedAt,
	}
	for i := range g.Categories {
		resp.Categories = append(resp.Categories, NewCategoryResponse(&g.Categories[i]))
	}
	return resp
}
