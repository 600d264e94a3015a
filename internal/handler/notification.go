package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lorenzodiegoyhellow/blocmark-platform-sub000/internal/repository"
)

// NotificationHandler exposes the recipient-facing side of the notification
// sink: listing and the read flag.  Rows themselves are created by the
// queue consumer, never through this surface.
type NotificationHandler struct {
	Repo *repository.NotificationRepo
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(repo *repository.NotificationRepo) *NotificationHandler {
	if repo == nil {
		panic("nil repository passed to NewNotificationHandler")
	}
	return &NotificationHandler{Repo: repo}
}

// List handles GET /v1/notifications for the authenticated user.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Repo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// MarkRead handles POST /v1/notifications/:id/read.  Marking an already-read
// or foreign notification is reported as 404 so recipients cannot probe
// other users' notification IDs.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}
	changed, err := h.Repo.MarkRead(c.Request().Context(), id, userID)
	if err != nil {
		return writeEngineError(c, err)
	}
	if !changed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
