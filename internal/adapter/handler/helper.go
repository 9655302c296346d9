package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/notetrackhq/notetrack/errors"
)

type success struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// HandleSuccess writes the standard success envelope
func HandleSuccess(c echo.Context, httpCode int, message string, data interface{}) error {
	return c.JSON(httpCode, success{
		Code:    int(apperrors.ErrorCode_HTTP_OK),
		Message: message,
		Data:    data,
	})
}

// HandleRaw writes data without the envelope, for endpoints whose response
// shape is part of the API contract.
func HandleRaw(c echo.Context, httpCode int, data interface{}) error {
	return c.JSON(httpCode, data)
}

// HandleError maps application errors onto HTTP responses
func HandleError(c echo.Context, logger *zap.Logger, err error) error {
	var appErr apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode >= http.StatusInternalServerError && logger != nil {
			logger.Error("request failed",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.JSON(appErr.HTTPCode, errs{
			Code:    int(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Details,
		})
	}

	if logger != nil {
		logger.Error("unhandled error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	internal := apperrors.ErrInternal(err)
	return c.JSON(internal.HTTPCode, errs{
		Code:    int(internal.Code),
		Message: internal.Message,
	})
}
