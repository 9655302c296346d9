package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/notetrackhq/notetrack/errors"
	taskdto "github.com/notetrackhq/notetrack/internal/adapter/dto/task"
	taskusecase "github.com/notetrackhq/notetrack/internal/usecase/task"
)

// TaskHandler serves the task endpoints
type TaskHandler struct {
	service taskusecase.Service
	logger  *zap.Logger
}

// NewTaskHandler creates a task handler
func NewTaskHandler(service taskusecase.Service, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{service: service, logger: logger}
}

func (h *TaskHandler) Create(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req taskdto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	t, err := h.service.Create(c.Request().Context(), ownerID, &req)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusCreated, "task created", taskdto.NewTaskResponse(t))
}

func (h *TaskHandler) Get(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	t, err := h.service.Get(c.Request().Context(), id, ownerID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusOK, "task retrieved", taskdto.NewTaskResponse(t))
}

func (h *TaskHandler) List(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req taskdto.ListTasksRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	tasks, err := h.service.List(c.Request().Context(), ownerID, &req)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	items := make([]taskdto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskdto.NewTaskResponse(t))
	}
	return HandleSuccess(c, http.StatusOK, "tasks retrieved", items)
}

func (h *TaskHandler) Update(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req taskdto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	t, err := h.service.Update(c.Request().Context(), id, ownerID, &req)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusOK, "task updated", taskdto.NewTaskResponse(t))
}

func (h *TaskHandler) Delete(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	if err := h.service.Delete(c.Request().Context(), id, ownerID); err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusOK, "task deleted", nil)
}
