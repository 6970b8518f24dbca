package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/guiaemprende/backend/internal/i18n"
	"github.com/guiaemprende/backend/internal/repository"
	"github.com/guiaemprende/backend/internal/services/registration"
	"github.com/labstack/echo/v4"
)

// nombreRegex allows letters (including Spanish accents) and spaces only.
var nombreRegex = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚüÜñÑ\s]+$`)

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Nombre          string `json:"nombre"`
	Email           string `json:"email"`
	AceptaPoliticas bool   `json:"acepta_politicas"`
}

type registeredUser struct {
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

// Register creates or updates a lead and triggers the matching email flow.
func (h *Handlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": i18n.T(ctx, "error_register_unknown"),
		})
	}

	nombre := strings.TrimSpace(req.Nombre)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if nombre == "" || email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": i18n.T(ctx, "error_name_email_required"),
		})
	}
	if !nombreRegex.MatchString(nombre) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": i18n.T(ctx, "error_name_invalid_chars"),
		})
	}
	if n := utf8.RuneCountInString(nombre); n < 2 || n > 50 {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": i18n.T(ctx, "error_name_length"),
		})
	}
	if !req.AceptaPoliticas {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": i18n.T(ctx, "error_policies_required"),
		})
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": i18n.T(ctx, "error_email_invalid"),
		})
	}

	result, err := h.registration.ProcessRegistration(ctx, nombre, email)
	if err != nil {
		return registrationError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"mensaje": result.Mensaje,
		"usuario": registeredUser{Nombre: nombre, Email: email},
	})
}

// registrationError maps registration failures to localized responses.
// Internal errors never leak their wrapped detail to the client.
func registrationError(c echo.Context, err error) error {
	ctx := c.Request().Context()

	switch {
	case errors.Is(err, registration.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": i18n.T(ctx, "error_name_email_required"),
		})
	case errors.Is(err, repository.ErrDuplicateEmail):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": i18n.T(ctx, "error_email_duplicate"),
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": i18n.T(ctx, "error_register_unknown"),
		})
	}
}

// VerifyEmail confirms a verification link. The handler always redirects;
// these URLs are browser-navigated from emails, never API calls.
func (h *Handlers) VerifyEmail(c echo.Context) error {
	tok := c.QueryParam("token")
	if tok == "" {
		return c.Redirect(http.StatusFound, h.registration.ErrorRedirectURL())
	}

	result := h.registration.VerifyEmail(c.Request().Context(), tok)
	return c.Redirect(http.StatusFound, result.RedirectURL)
}

// ResendFile confirms a resend link from the confirmation email.
func (h *Handlers) ResendFile(c echo.Context) error {
	ctx := c.Request().Context()

	tok := c.QueryParam("token")
	if tok == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": i18n.T(ctx, "error_token_missing"),
		})
	}

	result := h.registration.ResendFile(ctx, tok)
	return c.Redirect(http.StatusFound, result.RedirectURL)
}
