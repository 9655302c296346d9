package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/notetrackhq/notetrack/errors"
	meetingdto "github.com/notetrackhq/notetrack/internal/adapter/dto/meeting"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
	meetingusecase "github.com/notetrackhq/notetrack/internal/usecase/meeting"
)

// MeetingHandler serves the meeting endpoints
type MeetingHandler struct {
	service meetingusecase.Service
	logger  *zap.Logger
}

// NewMeetingHandler creates a meeting handler
func NewMeetingHandler(service meetingusecase.Service, logger *zap.Logger) *MeetingHandler {
	return &MeetingHandler{service: service, logger: logger}
}

// Create stores a meeting and queues extraction. The response returns
// immediately with processed=false; tasks appear once the run commits.
func (h *MeetingHandler) Create(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req meetingdto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	m, err := h.service.Create(c.Request().Context(), ownerID, &req)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleRaw(c, http.StatusCreated, meetingdto.NewCreatedResponse(m))
}

// Get returns the full meeting view including extracted tasks
func (h *MeetingHandler) Get(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	m, run, err := h.service.Get(c.Request().Context(), id, ownerID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleRaw(c, http.StatusOK, meetingdto.NewDetailResponse(m, run))
}

// List returns the owner's meetings, newest first
func (h *MeetingHandler) List(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	var req meetingdto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidArgument(err.Error()))
	}

	meetings, err := h.service.List(c.Request().Context(), ownerID, repositories.MeetingFilter{
		Processed: req.Processed,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	items := make([]meetingdto.ListItem, 0, len(meetings))
	for _, m := range meetings {
		items = append(items, meetingdto.NewListItem(m))
	}
	return HandleSuccess(c, http.StatusOK, "meetings retrieved", items)
}

// Delete removes a meeting and its extracted tasks
func (h *MeetingHandler) Delete(c echo.Context) error {
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
	return HandleSuccess(c, http.StatusOK, "meeting deleted", nil)
}

// Reprocess queues a superseding extraction run for the meeting
func (h *MeetingHandler) Reprocess(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	if err := h.service.Reprocess(c.Request().Context(), id, ownerID); err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleRaw(c, http.StatusOK, meetingdto.ReprocessResponse{
		Success: true,
		Message: "meeting queued for reprocessing",
	})
}

// UploadAudio attaches a recording to a meeting and queues extraction
func (h *MeetingHandler) UploadAudio(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	id, err := pathID(c)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	file, err := c.FormFile("audio")
	if err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidAudio("audio file is required"))
	}

	src, err := file.Open()
	if err != nil {
		return HandleError(c, h.logger, apperrors.ErrInvalidAudio("unreadable audio file"))
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	m, err := h.service.AttachRecording(c.Request().Context(), id, ownerID, src, file.Size, contentType)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, http.StatusOK, "recording uploaded", meetingdto.NewCreatedResponse(m))
}

// currentUserID pulls the authenticated user from the context
func currentUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, apperrors.ErrUnauthenticated()
	}
	return userID, nil
}

// pathID parses the :id path parameter
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidArgument("id is not a valid uuid")
	}
	return id, nil
}
