package task

// CreateTaskRequest is the payload for creating a task by hand
type CreateTaskRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Deadline    string   `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	GoalID      string   `json:"goal_id" validate:"omitempty,uuid"`
	CategoryID  string   `json:"category_id" validate:"omitempty,uuid"`
	AssigneeIDs []string `json:"assignee_ids" validate:"omitempty,dive,uuid"`
}

// UpdateTaskRequest is the payload for updating a task. Pointer fields
// distinguish "not sent" from "set to empty".
type UpdateTaskRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string   `json:"description" validate:"omitempty,max=5000"`
	Priority    *string   `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status      *string   `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Deadline    *string   `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	GoalID      *string   `json:"goal_id" validate:"omitempty,uuid"`
	CategoryID  *string   `json:"category_id" validate:"omitempty,uuid"`
	AssigneeIDs *[]string `json:"assignee_ids" validate:"omitempty,dive,uuid"`
}

// ListTasksRequest carries listing filters from query params
type ListTasksRequest struct {
	Status     string `query:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority   string `query:"priority" validate:"omitempty,oneof=low medium high urgent"`
	GoalID     string `query:"goal_id" validate:"omitempty,uuid"`
	CategoryID string `query:"category_id" validate:"omitempty,uuid"`
	MeetingID  string `query:"meeting_id" validate:"omitempty,uuid"`
	AssigneeID string `query:"assignee_id" validate:"omitempty,uuid"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset     int    `query:"offset" validate:"omitempty,min=0"`
}
