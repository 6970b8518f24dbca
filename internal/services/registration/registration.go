// Package registration implements the user-registration state machine: it
// decides whether a request creates a user, resends verification, resends
// the asset, or asks for a confirmed resend, and performs the verification
// transition.
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/guiaemprende/backend/internal/i18n"
	"github.com/guiaemprende/backend/internal/models"
	"github.com/guiaemprende/backend/internal/queue"
	"github.com/guiaemprende/backend/internal/repository"
	"github.com/guiaemprende/backend/internal/token"
)

// ErrValidation marks bad input that maps to a 400 at the HTTP boundary.
var ErrValidation = errors.New("nombre y email son requeridos")

// Result is the outcome of a registration request.
type Result struct {
	Mensaje string `json:"mensaje"`
}

// VerifyResult is the outcome of a verification attempt. It always carries a
// redirect target so the browser flow ends deterministically.
type VerifyResult struct {
	Verificado  bool   `json:"verificado"`
	Mensaje     string `json:"mensaje"`
	RedirectURL string `json:"redirectUrl"`
}

// ResendResult is the outcome of a confirmed asset resend.
type ResendResult struct {
	Mensaje     string `json:"mensaje"`
	RedirectURL string `json:"redirectUrl"`
}

// Service is the registration state machine. All collaborators are injected
// at startup; the service holds no global state.
type Service struct {
	repo        *repository.Repository
	queue       queue.Enqueuer
	tokens      *token.Service
	frontendURL string
	assetPath   string
}

// NewService creates the registration service.
func NewService(repo *repository.Repository, q queue.Enqueuer, tokens *token.Service, frontendURL, assetPath string) *Service {
	if frontendURL == "" {
		frontendURL = "http://localhost:4321"
	}
	return &Service{
		repo:        repo,
		queue:       q,
		tokens:      tokens,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
		assetPath:   assetPath,
	}
}

// ProcessRegistration handles a registration request for nombre+email.
//
// New email: create the user and enqueue a verification email.
// Existing unverified: resend verification (updating the name if changed).
// Existing verified with a changed name: persist the name and resend the guide.
// Existing verified, unchanged: ask by email before resending the guide.
func (s *Service) ProcessRegistration(ctx context.Context, nombre, email string) (*Result, error) {
	if strings.TrimSpace(nombre) == "" || strings.TrimSpace(email) == "" {
		return nil, ErrValidation
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return s.registerNewUser(ctx, nombre, email)
	case err != nil:
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	return s.handleExistingUser(ctx, user, nombre)
}

// registerNewUser creates the record and queues the verification email. If
// queueing fails the record is rolled back, so a user row exists only when
// its verification email was at least enqueued.
func (s *Service) registerNewUser(ctx context.Context, nombre, email string) (*Result, error) {
	user, err := s.repo.CreateUser(ctx, nombre, email)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	payload := queue.Payload{Email: user.Email, Nombre: user.Nombre}
	if err := s.queue.Enqueue(ctx, queue.JobSendVerificationEmail, payload); err != nil {
		if rbErr := s.repo.DeleteUser(ctx, user.ID); rbErr != nil {
			slog.Error("rollback of user creation failed", "email", user.Email, "error", rbErr)
		}
		return nil, fmt.Errorf("queueing verification email: %w", err)
	}

	return &Result{Mensaje: i18n.T(ctx, "registration_new_user")}, nil
}

func (s *Service) handleExistingUser(ctx context.Context, user *models.User, nombre string) (*Result, error) {
	nameChanged := user.Nombre != nombre
	if nameChanged {
		if err := s.repo.UpdateUserName(ctx, user.ID, nombre); err != nil {
			return nil, fmt.Errorf("updating user name: %w", err)
		}
		user.Nombre = nombre
	}

	payload := queue.Payload{Email: user.Email, Nombre: user.Nombre}

	if !user.IsVerified {
		if err := s.queue.Enqueue(ctx, queue.JobSendVerificationEmail, payload); err != nil {
			return nil, fmt.Errorf("queueing verification email: %w", err)
		}
		return &Result{Mensaje: i18n.T(ctx, "registration_verification_resent")}, nil
	}

	if nameChanged {
		payload.FilePath = s.assetPath
		if err := s.queue.Enqueue(ctx, queue.JobSendFileEmail, payload); err != nil {
			return nil, fmt.Errorf("queueing file email: %w", err)
		}
		return &Result{Mensaje: i18n.T(ctx, "registration_name_updated_file_resent")}, nil
	}

	if err := s.queue.Enqueue(ctx, queue.JobAskForFileEmail, payload); err != nil {
		return nil, fmt.Errorf("queueing resend confirmation email: %w", err)
	}
	return &Result{Mensaje: i18n.T(ctx, "registration_ask_for_file")}, nil
}

// VerifyEmail performs the verification transition for the email carried in
// the token. All failures become a redirect to the error page; the caller
// never sees an error value.
func (s *Service) VerifyEmail(ctx context.Context, tokenString string) VerifyResult {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return VerifyResult{Mensaje: err.Error(), RedirectURL: s.errorURL()}
	}

	user, err := s.repo.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return VerifyResult{Mensaje: i18n.T(ctx, "error_user_not_found"), RedirectURL: s.errorURL()}
		}
		return VerifyResult{Mensaje: err.Error(), RedirectURL: s.errorURL()}
	}

	// Verifying twice is not an error and must not re-send the asset.
	if user.IsVerified {
		return VerifyResult{
			Verificado:  true,
			Mensaje:     i18n.T(ctx, "verify_already_verified"),
			RedirectURL: s.successURL(),
		}
	}

	if err := s.repo.MarkUserVerified(ctx, user.ID); err != nil {
		return VerifyResult{Mensaje: err.Error(), RedirectURL: s.errorURL()}
	}

	nombre := user.Nombre
	if nombre == "" {
		nombre = "amigo"
	}
	payload := queue.Payload{Email: user.Email, Nombre: nombre, FilePath: s.assetPath}
	if err := s.queue.Enqueue(ctx, queue.JobSendFileEmail, payload); err != nil {
		return VerifyResult{Mensaje: err.Error(), RedirectURL: s.errorURL()}
	}

	return VerifyResult{
		Verificado:  true,
		Mensaje:     i18n.T(ctx, "verify_success"),
		RedirectURL: s.successURL(),
	}
}

// ResendFile handles a confirmed resend. The token is the longer-lived one
// from the confirmation email; the user must exist and be verified.
func (s *Service) ResendFile(ctx context.Context, tokenString string) ResendResult {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return ResendResult{Mensaje: err.Error(), RedirectURL: s.errorURL()}
	}

	user, err := s.repo.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ResendResult{Mensaje: i18n.T(ctx, "error_user_not_found"), RedirectURL: s.errorURL()}
		}
		return ResendResult{Mensaje: err.Error(), RedirectURL: s.errorURL()}
	}

	if !user.IsVerified {
		return ResendResult{Mensaje: i18n.T(ctx, "error_user_not_verified"), RedirectURL: s.errorURL()}
	}

	payload := queue.Payload{Email: user.Email, Nombre: user.Nombre, FilePath: s.assetPath}
	if err := s.queue.Enqueue(ctx, queue.JobSendFileEmail, payload); err != nil {
		return ResendResult{Mensaje: err.Error(), RedirectURL: s.errorURL()}
	}

	return ResendResult{
		Mensaje:     i18n.T(ctx, "resend_file_success"),
		RedirectURL: s.successURL(),
	}
}

// ErrorRedirectURL is the redirect target for requests that fail before the
// state machine runs, such as a missing token.
func (s *Service) ErrorRedirectURL() string {
	return s.errorURL()
}

func (s *Service) successURL() string {
	return s.frontendURL + "/success"
}

func (s *Service) errorURL() string {
	return s.frontendURL + "/error"
}
