package registration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guiaemprende/backend/internal/i18n"
	"github.com/guiaemprende/backend/internal/queue"
	"github.com/guiaemprende/backend/internal/repository"
	"github.com/guiaemprende/backend/internal/services/registration"
	"github.com/guiaemprende/backend/internal/testutil"
	"github.com/guiaemprende/backend/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	frontendURL = "https://landing.example.com"
	assetPath   = "./files/guia.pdf"
)

func init() {
	_ = i18n.Init()
}

func newService(t *testing.T) (*registration.Service, *repository.Repository, *queue.Memory, *token.Service) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	q := queue.NewMemory()
	tokens, err := token.NewService("test-secret")
	require.NoError(t, err)
	svc := registration.NewService(repo, q, tokens, frontendURL, assetPath)
	return svc, repo, q, tokens
}

// failEnqueuer always rejects jobs, simulating a broker outage.
type failEnqueuer struct{}

func (failEnqueuer) Enqueue(context.Context, string, queue.Payload) error {
	return errors.New("broker unavailable")
}

func nextJob(t *testing.T, q *queue.Memory) *queue.Job {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	job, err := q.Next(ctx)
	require.NoError(t, err)
	return job
}

func TestProcessRegistration_NewUser(t *testing.T) {
	svc, repo, q, _ := newService(t)
	ctx := context.Background()

	result, err := svc.ProcessRegistration(ctx, "Ana", "ana@example.com")

	require.NoError(t, err)
	assert.Contains(t, result.Mensaje, "verificación enviado")

	user, err := repo.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.False(t, user.IsVerified)

	require.Equal(t, 1, q.Len())
	job := nextJob(t, q)
	assert.Equal(t, queue.JobSendVerificationEmail, job.Name)
	assert.Equal(t, "ana@example.com", job.Payload.Email)
	assert.Equal(t, "Ana", job.Payload.Nombre)
}

func TestProcessRegistration_EmptyInput(t *testing.T) {
	svc, _, _, _ := newService(t)

	_, err := svc.ProcessRegistration(context.Background(), "", "ana@example.com")
	require.ErrorIs(t, err, registration.ErrValidation)

	_, err = svc.ProcessRegistration(context.Background(), "Ana", "  ")
	require.ErrorIs(t, err, registration.ErrValidation)
}

func TestProcessRegistration_ExistingUnverified_ResendsVerification(t *testing.T) {
	svc, repo, q, _ := newService(t)
	ctx := context.Background()

	_, err := svc.ProcessRegistration(ctx, "Ana", "ana@example.com")
	require.NoError(t, err)
	nextJob(t, q)

	result, err := svc.ProcessRegistration(ctx, "Ana", "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, result.Mensaje, "reenviado")

	require.Equal(t, 1, q.Len())
	job := nextJob(t, q)
	assert.Equal(t, queue.JobSendVerificationEmail, job.Name)

	// Still a single record for the email
	user, err := repo.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Nombre)
}

func TestProcessRegistration_ExistingUnverified_UpdatesName(t *testing.T) {
	svc, repo, q, _ := newService(t)
	ctx := context.Background()

	_, err := svc.ProcessRegistration(ctx, "Ana", "ana@example.com")
	require.NoError(t, err)
	nextJob(t, q)

	_, err = svc.ProcessRegistration(ctx, "Ana María", "ana@example.com")
	require.NoError(t, err)

	user, err := repo.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", user.Nombre)

	job := nextJob(t, q)
	assert.Equal(t, queue.JobSendVerificationEmail, job.Name)
	assert.Equal(t, "Ana María", job.Payload.Nombre)
}

func TestProcessRegistration_VerifiedNameChanged_ResendsFile(t *testing.T) {
	svc, repo, q, _ := newService(t)
	ctx := context.Background()
	testutil.NewVerifiedUser(t, repo, "Ana", "ana@example.com")

	result, err := svc.ProcessRegistration(ctx, "Ana María", "ana@example.com")

	require.NoError(t, err)
	assert.Contains(t, result.Mensaje, "Nombre actualizado")

	job := nextJob(t, q)
	assert.Equal(t, queue.JobSendFileEmail, job.Name)
	assert.Equal(t, assetPath, job.Payload.FilePath)

	user, err := repo.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", user.Nombre)
	assert.True(t, user.IsVerified)
}

func TestProcessRegistration_VerifiedUnchanged_AsksForConfirmation(t *testing.T) {
	svc, repo, q, _ := newService(t)
	ctx := context.Background()
	testutil.NewVerifiedUser(t, repo, "Ana", "ana@example.com")

	result, err := svc.ProcessRegistration(ctx, "Ana", "ana@example.com")

	require.NoError(t, err)
	assert.Contains(t, result.Mensaje, "confirmar")

	job := nextJob(t, q)
	assert.Equal(t, queue.JobAskForFileEmail, job.Name)
	assert.Empty(t, job.Payload.FilePath)
}

func TestProcessRegistration_EnqueueFails_RollsBackUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	tokens, err := token.NewService("test-secret")
	require.NoError(t, err)
	svc := registration.NewService(repo, failEnqueuer{}, tokens, frontendURL, assetPath)
	ctx := context.Background()

	_, err = svc.ProcessRegistration(ctx, "Ana", "ana@example.com")
	require.Error(t, err)

	// The record must not survive a failed enqueue
	_, err = repo.GetUserByEmail(ctx, "ana@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVerifyEmail_Success(t *testing.T) {
	svc, repo, q, tokens := newService(t)
	ctx := context.Background()
	testutil.NewTestUser(t, repo, "Ana", "ana@example.com")

	tok, err := tokens.Issue("ana@example.com", time.Hour)
	require.NoError(t, err)

	result := svc.VerifyEmail(ctx, tok)

	assert.True(t, result.Verificado)
	assert.Equal(t, frontendURL+"/success", result.RedirectURL)

	user, err := repo.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	job := nextJob(t, q)
	assert.Equal(t, queue.JobSendFileEmail, job.Name)
	assert.Equal(t, "Ana", job.Payload.Nombre)
	assert.Equal(t, assetPath, job.Payload.FilePath)
}

func TestVerifyEmail_AlreadyVerified_Idempotent(t *testing.T) {
	svc, repo, q, tokens := newService(t)
	ctx := context.Background()
	testutil.NewVerifiedUser(t, repo, "Ana", "ana@example.com")

	tok, err := tokens.Issue("ana@example.com", time.Hour)
	require.NoError(t, err)

	result := svc.VerifyEmail(ctx, tok)

	assert.True(t, result.Verificado)
	assert.Contains(t, result.Mensaje, "ya estaba verificado")
	assert.Equal(t, frontendURL+"/success", result.RedirectURL)
	// No second asset delivery
	assert.Equal(t, 0, q.Len())
}

func TestVerifyEmail_UnknownEmail(t *testing.T) {
	svc, _, q, tokens := newService(t)

	tok, err := tokens.Issue("nadie@example.com", time.Hour)
	require.NoError(t, err)

	result := svc.VerifyEmail(context.Background(), tok)

	assert.False(t, result.Verificado)
	assert.Equal(t, frontendURL+"/error", result.RedirectURL)
	assert.Equal(t, 0, q.Len())
}

func TestVerifyEmail_ExpiredToken(t *testing.T) {
	svc, repo, _, tokens := newService(t)
	testutil.NewTestUser(t, repo, "Ana", "ana@example.com")

	tok, err := tokens.Issue("ana@example.com", -time.Minute)
	require.NoError(t, err)

	result := svc.VerifyEmail(context.Background(), tok)

	assert.False(t, result.Verificado)
	assert.Equal(t, frontendURL+"/error", result.RedirectURL)
}

func TestVerifyEmail_GarbageToken(t *testing.T) {
	svc, _, _, _ := newService(t)

	result := svc.VerifyEmail(context.Background(), "not-a-token")

	assert.False(t, result.Verificado)
	assert.Equal(t, frontendURL+"/error", result.RedirectURL)
}

func TestResendFile_Success(t *testing.T) {
	svc, repo, q, tokens := newService(t)
	ctx := context.Background()
	testutil.NewVerifiedUser(t, repo, "Ana", "ana@example.com")

	tok, err := tokens.Issue("ana@example.com", 24*time.Hour)
	require.NoError(t, err)

	result := svc.ResendFile(ctx, tok)

	assert.Equal(t, frontendURL+"/success", result.RedirectURL)
	assert.Contains(t, result.Mensaje, "reenviado")

	job := nextJob(t, q)
	assert.Equal(t, queue.JobSendFileEmail, job.Name)
	assert.Equal(t, assetPath, job.Payload.FilePath)
}

func TestResendFile_UnverifiedUser(t *testing.T) {
	svc, repo, q, tokens := newService(t)
	testutil.NewTestUser(t, repo, "Ana", "ana@example.com")

	tok, err := tokens.Issue("ana@example.com", 24*time.Hour)
	require.NoError(t, err)

	result := svc.ResendFile(context.Background(), tok)

	assert.Equal(t, frontendURL+"/error", result.RedirectURL)
	assert.Equal(t, 0, q.Len())
}

func TestResendFile_UnknownUser(t *testing.T) {
	svc, _, _, tokens := newService(t)

	tok, err := tokens.Issue("nadie@example.com", 24*time.Hour)
	require.NoError(t, err)

	result := svc.ResendFile(context.Background(), tok)

	assert.Equal(t, frontendURL+"/error", result.RedirectURL)
}

func TestResendFile_BadToken(t *testing.T) {
	svc, _, _, _ := newService(t)

	result := svc.ResendFile(context.Background(), "garbage")

	assert.Equal(t, frontendURL+"/error", result.RedirectURL)
}
