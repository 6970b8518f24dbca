package handlers

import (
	"net/http"

	"github.com/guiaemprende/backend/internal/i18n"
	"github.com/labstack/echo/v4"
)

// TrackVisit increments the page-visit counter.
func (h *Handlers) TrackVisit(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.repo.IncrementVisits(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   i18n.T(ctx, "error_visit_track"),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"visits":  total,
	})
}

// GetVisits returns the current visit total.
func (h *Handlers) GetVisits(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.repo.VisitCount(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   i18n.T(ctx, "error_visit_get"),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"visits":  total,
	})
}
