package token_test

import (
	"testing"
	"time"

	"github.com/guiaemprende/backend/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_EmptySecret(t *testing.T) {
	_, err := token.NewService("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret")
}

func TestIssueAndVerify(t *testing.T) {
	svc, err := token.NewService("test-secret")
	require.NoError(t, err)

	tok, err := svc.Issue("ana@example.com", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestVerify_Expired(t *testing.T) {
	svc, err := token.NewService("test-secret")
	require.NoError(t, err)

	tok, err := svc.Issue("ana@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	require.ErrorIs(t, err, token.ErrExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer, err := token.NewService("right-secret")
	require.NoError(t, err)
	verifier, err := token.NewService("wrong-secret")
	require.NoError(t, err)

	tok, err := issuer.Issue("ana@example.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.ErrorIs(t, err, token.ErrInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	svc, err := token.NewService("test-secret")
	require.NoError(t, err)

	_, err = svc.Verify("not.a.token")
	require.ErrorIs(t, err, token.ErrInvalid)
}

func TestVerify_Tampered(t *testing.T) {
	svc, err := token.NewService("test-secret")
	require.NoError(t, err)

	tok, err := svc.Issue("ana@example.com", time.Hour)
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = svc.Verify(tampered)
	require.ErrorIs(t, err, token.ErrInvalid)
}
