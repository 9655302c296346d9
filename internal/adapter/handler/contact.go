package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/notetrackhq/notetrack/errors"
	contactdto "github.com/notetrackhq/notetrack/internal/adapter/dto/contact"
	contactusecase "github.com/notetrackhq/notetrack/internal/usecase/contact"
)

// ContactHandler serves the contact endpoints
type ContactHandler struct {
	service contactusecase.Service
	logger  *zap.Logger
}

// NewContactHandler creates a contact handler
func NewContactHandler(service contactusecase.Service, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{service: service, logger: logger}
}

func (h *ContactHandler) Create(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req contactdto.CreateContactRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	contact, err := h.service.Create(c.Request().Context(), ownerID, &req)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusCreated, "contact created", contactdto.NewContactResponse(contact))
}

func (h *ContactHandler) Get(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	contact, err := h.service.Get(c.Request().Context(), id, ownerID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusOK, "contact retrieved", contactdto.NewContactResponse(contact))
}

func (h *ContactHandler) List(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	contacts, err := h.service.List(c.Request().Context(), ownerID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	items := make([]contactdto.ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		items = append(items, contactdto.NewContactResponse(contact))
	}
	return HandleSuccess(c, http.StatusOK, "contacts retrieved", items)
}

func (h *ContactHandler) Update(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req contactdto.UpdateContactRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	contact, err := h.service.Update(c.Request().Context(), id, ownerID, &req)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusOK, "contact updated", contactdto.NewContactResponse(contact))
}

func (h *ContactHandler) Delete(c echo.Context) error {
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
	return HandleSuccess(c, http.StatusOK, "contact deleted", nil)
}
