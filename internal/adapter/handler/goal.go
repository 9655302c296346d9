package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/notetrackhq/notetrack/errors"
	goaldto "github.com/notetrackhq/notetrack/internal/adapter/dto/goal"
	goalusecase "github.com/notetrackhq/notetrack/internal/usecase/goal"
)

// GoalHandler serves the goal and category endpoints
type GoalHandler struct {
	service goalusecase.Service
	logger  *zap.Logger
}

// NewGoalHandler creates a goal handler
func NewGoalHandler(service goalusecase.Service, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{service: service, logger: logger}
}

func (h *GoalHandler) Create(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req goaldto.CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	g, err := h.service.Create(c.Request().Context(), ownerID, &req)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusCreated, "goal created", goaldto.NewGoalResponse(g))
}

func (h *GoalHandler) Get(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	g, err := h.service.Get(c.Request().Context(), id, ownerID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusOK, "goal retrieved", goaldto.NewGoalResponse(g))
}

func (h *GoalHandler) List(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	goals, err := h.service.List(c.Request().Context(), ownerID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	items := make([]goaldto.GoalResponse, 0, len(goals))
	for _, g := range goals {
		items = append(items, goaldto.NewGoalResponse(g))
	}
	return HandleSuccess(c, http.StatusOK, "goals retrieved", items)
}

func (h *GoalHandler) Update(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req goaldto.UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	g, err := h.service.Update(c.Request().Context(), id, ownerID, &req)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusOK, "goal updated", goaldto.NewGoalResponse(g))
}

func (h *GoalHandler) Delete(c echo.Context) error {
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
	return HandleSuccess(c, http.StatusOK, "goal deleted", nil)
}

func (h *GoalHandler) CreateCategory(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	goalID, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req goaldto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	cat, err := h.service.CreateCategory(c.Request().Context(), goalID, ownerID, &req)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusCreated, "category created", goaldto.NewCategoryResponse(cat))
}

func (h *GoalHandler) ListCategories(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var goalID *uuid.UUID
	if raw := c.QueryParam("goal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return HandleError(c, h.logger, apperrors.ErrInvalidArgument("goal_id is not a valid uuid"))
		}
		goalID = &id
	}

	categories, err := h.service.ListCategories(c.Request().Context(), ownerID, goalID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	items := make([]goaldto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		items = append(items, goaldto.NewCategoryResponse(cat))
	}
	return HandleSuccess(c, http.StatusOK, "categories retrieved", items)
}

func (h *GoalHandler) UpdateCategory(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req goaldto.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	cat, err := h.service.UpdateCategory(c.Request().Context(), id, ownerID, &req)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusOK, "category updated", goaldto.NewCategoryResponse(cat))
}

func (h *GoalHandler) DeleteCategory(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	if err := h.service.DeleteCategory(c.Request().Context(), id, ownerID); err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusOK, "category deleted", nil)
}
