package handlers

import (
	"net/http"

	"github.com/guiaemprende/backend/internal/repository"
	"github.com/guiaemprende/backend/internal/services/registration"
	"github.com/labstack/echo/v4"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	registration *registration.Service
	repo         *repository.Repository
}

// New creates a new Handlers instance.
func New(reg *registration.Service, repo *repository.Repository) *Handlers {
	return &Handlers{registration: reg, repo: repo}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
