package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/notetrackhq/notetrack/internal/infrastructure/http/middleware"
	"github.com/notetrackhq/notetrack/pkg/config"
	"github.com/notetrackhq/notetrack/pkg/validator"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Meeting *MeetingHandler
	Goal    *GoalHandler
	Contact *ContactHandler
	Task    *TaskHandler
}

// NewRouter builds the echo instance with middleware and all routes
func NewRouter(cfg *config.Config, verifier middleware.TokenVerifier, h Handlers, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Errors returned outside a handler, auth middleware rejections in
	// particular, go through the same mapping handlers use.
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			// Routing misses (404, 405) keep echo's own shape.
			_ = c.JSON(httpErr.Code, map[string]interface{}{"message": httpErr.Message})
			return
		}
		_ = HandleError(c, logger, err)
	}

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	v1 := e.Group("/v1", middleware.EchoAuth(verifier))

	meetings := v1.Group("/meetings")
	meetings.POST("", h.Meeting.Create)
	meetings.GET("", h.Meeting.List)
	meetings.GET("/:id", h.Meeting.Get)
	meetings.DELETE("/:id", h.Meeting.Delete)
	meetings.POST("/:id/reprocess", h.Meeting.Reprocess)
	meetings.POST("/:id/audio", h.Meeting.UploadAudio)

	goals := v1.Group("/goals")
	goals.POST("", h.Goal.Create)
	goals.GET("", h.Goal.List)
	goals.GET("/:id", h.Goal.Get)
	goals.PATCH("/:id", h.Goal.Update)
	goals.DELETE("/:id", h.Goal.Delete)
	goals.POST("/:id/categories", h.Goal.CreateCategory)

	categories := v1.Group("/categories")
	categories.GET("", h.Goal.ListCategories)
	categories.PATCH("/:id", h.Goal.UpdateCategory)
	categories.DELETE("/:id", h.Goal.DeleteCategory)

	contacts := v1.Group("/contacts")
	contacts.POST("", h.Contact.Create)
	contacts.GET("", h.Contact.List)
	contacts.GET("/:id", h.Contact.Get)
	contacts.PATCH("/:id", h.Contact.Update)
	contacts.DELETE("/:id", h.Contact.Delete)

	tasks := v1.Group("/tasks")
	tasks.POST("", h.Task.Create)
	tasks.GET("", h.Task.List)
	tasks.GET("/:id", h.Task.Get)
	tasks.PUT("/:id", h.Task.Update)
	tasks.DELETE("/:id", h.Task.Delete)

	return e
}
