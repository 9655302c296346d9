package task

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/notetrackhq/notetrack/errors"
	taskdto "github.com/notetrackhq/notetrack/internal/adapter/dto/task"
	"github.com/notetrackhq/notetrack/internal/domain/entities"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
)

// Service manages tasks. Extracted tasks are edited through the same
// surface as manual ones; an edit marks them reviewed and never clears
// the ai_extracted flag.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *taskdto.CreateTaskRequest) (*entities.Task, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*entities.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, req *taskdto.ListTasksRequest) ([]*entities.Task, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, req *taskdto.UpdateTaskRequest) (*entities.Task, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type service struct {
	taskRepo    repositories.TaskRepository
	goalRepo    repositories.GoalRepository
	contactRepo repositories.ContactRepository
}

// NewService creates the task service
func NewService(taskRepo repositories.TaskRepository, goalRepo repositories.GoalRepository, contactRepo repositories.ContactRepository) Service {
	return &service{
		taskRepo:    taskRepo,
		goalRepo:    goalRepo,
		contactRepo: contactRepo,
	}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req *taskdto.CreateTaskRequest) (*entities.Task, error) {
	t := entities.NewTask(ownerID, req.Title, req.Description, req.Priority)

	if req.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return nil, apperrors.ErrInvalidArgument("deadline must be YYYY-MM-DD")
		}
		t.Deadline = &deadline
	}

	if req.GoalID != "" {
		goalID, err := s.ownedGoalID(ctx, ownerID, req.GoalID)
		if err != nil {
			return nil, err
		}
		t.GoalID = goalID
	}
	if req.CategoryID != "" {
		categoryID, err := s.ownedCategoryID(ctx, ownerID, req.CategoryID)
		if err != nil {
			return nil, err
		}
		t.CategoryID = categoryID
	}

	assignees, err := s.ownedContacts(ctx, ownerID, req.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, t); err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if len(assignees) > 0 {
		if err := s.taskRepo.ReplaceAssignees(ctx, t, assignees); err != nil {
			return nil, apperrors.ErrDBQuery(err)
		}
	}
	return t, nil
}

func (s *service) Get(ctx context.Context, id, ownerID uuid.UUID) (*entities.Task, error) {
	t, err := s.taskRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if t == nil {
		return nil, apperrors.ErrTaskNotFound(id.String())
	}
	return t, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, req *taskdto.ListTasksRequest) ([]*entities.Task, error) {
	filter := repositories.TaskFilter{
		Status:   req.Status,
		Priority: req.Priority,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	var err error
	if filter.GoalID, err = parseOptionalID(req.GoalID, "goal_id"); err != nil {
		return nil, err
	}
	if filter.CategoryID, err = parseOptionalID(req.CategoryID, "category_id"); err != nil {
		return nil, err
	}
	if filter.MeetingID, err = parseOptionalID(req.MeetingID, "meeting_id"); err != nil {
		return nil, err
	}
	if filter.AssigneeID, err = parseOptionalID(req.AssigneeID, "assignee_id"); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	return tasks, nil
}

func (s *service) Update(ctx context.Context, id, ownerID uuid.UUID, req *taskdto.UpdateTaskRequest) (*entities.Task, error) {
	t, err := s.taskRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if t == nil {
		return nil, apperrors.ErrTaskNotFound(id.String())
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Deadline != nil {
		if *req.Deadline == "" {
			t.Deadline = nil
		} else {
			deadline, err := time.Parse("2006-01-02", *req.Deadline)
			if err != nil {
				return nil, apperrors.ErrInvalidArgument("deadline must be YYYY-MM-DD")
			}
			t.Deadline = &deadline
		}
	}
	if req.GoalID != nil {
		if *req.GoalID == "" {
			t.GoalID = nil
		} else {
			goalID, err := s.ownedGoalID(ctx, ownerID, *req.GoalID)
			if err != nil {
				return nil, err
			}
			t.GoalID = goalID
		}
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			t.CategoryID = nil
		} else {
			categoryID, err := s.ownedCategoryID(ctx, ownerID, *req.CategoryID)
			if err != nil {
				return nil, err
			}
			t.CategoryID = categoryID
		}
	}

	// An edit counts as the user having looked at an extracted task.
	if t.AIExtracted {
		t.MarkReviewed(time.Now())
	}

	if err := s.taskRepo.Update(ctx, t); err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}

	if req.AssigneeIDs != nil {
		assignees, err := s.ownedContacts(ctx, ownerID, *req.AssigneeIDs)
		if err != nil {
			return nil, err
		}
		if err := s.taskRepo.ReplaceAssignees(ctx, t, assignees); err != nil {
			return nil, apperrors.ErrDBQuery(err)
		}
		t.Assignees = make([]entities.Contact, 0, len(assignees))
		for _, c := range assignees {
			t.Assignees = append(t.Assignees, *c)
		}
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	t, err := s.taskRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return apperrors.ErrDBQuery(err)
	}
	if t == nil {
		return apperrors.ErrTaskNotFound(id.String())
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return apperrors.ErrDBQuery(err)
	}
	return nil
}

func (s *service) ownedGoalID(ctx context.Context, ownerID uuid.UUID, raw string) (*uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.ErrInvalidArgument("goal_id is not a valid uuid")
	}
	g, err := s.goalRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if g == nil {
		return nil, apperrors.ErrGoalNotFound(raw)
	}
	return &id, nil
}

func (s *service) ownedCategoryID(ctx context.Context, ownerID uuid.UUID, raw string) (*uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.ErrInvalidArgument("category_id is not a valid uuid")
	}
	c, err := s.goalRepo.GetCategoryOwned(ctx, id, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if c == nil {
		return nil, apperrors.ErrCategoryNotFound(raw)
	}
	return &id, nil
}

func (s *service) ownedContacts(ctx context.Context, ownerID uuid.UUID, ids []string) ([]*entities.Contact, error) {
	contacts := make([]*entities.Contact, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.ErrInvalidArgument("assignee_ids contains an invalid uuid")
		}
		c, err := s.contactRepo.GetOwned(ctx, id, ownerID)
		if err != nil {
			return nil, apperrors.ErrDBQuery(err)
		}
		if c == nil {
			return nil, apperrors.ErrContactNotFound(raw)
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

func parseOptionalID(raw, field string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.ErrInvalidArgument(field + " is not a valid uuid")
	}
	return &id, nil
}
