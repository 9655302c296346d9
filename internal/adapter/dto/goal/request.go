package goal

// CreateGoalRequest is the payload for creating a goal
type CreateGoalRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Type        string `json:"type" validate:"required,oneof=yearly quarterly"`
	ParentID    string `json:"parent_id" validate:"omitempty,uuid"`
}

// UpdateGoalRequest is the payload for updating a goal
type UpdateGoalRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
}

// CreateCategoryRequest is the payload for creating a category under a goal
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateCategoryRequest is the payload for updating a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}
