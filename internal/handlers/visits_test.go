package handlers_test

import (
	"net/http"
	"testing"

	"github.com/guiaemprende/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackVisit(t *testing.T) {
	f := newFixture(t)

	c, rec := testutil.NewEchoContext(f.echo, http.MethodGet, "/api/visits/track", nil)
	require.NoError(t, f.handlers.TrackVisit(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "visits": 1}`, rec.Body.String())

	c, rec = testutil.NewEchoContext(f.echo, http.MethodGet, "/api/visits/track", nil)
	require.NoError(t, f.handlers.TrackVisit(c))

	assert.JSONEq(t, `{"success": true, "visits": 2}`, rec.Body.String())
}

func TestGetVisits_StartsAtZero(t *testing.T) {
	f := newFixture(t)

	c, rec := testutil.NewEchoContext(f.echo, http.MethodGet, "/api/visits", nil)
	require.NoError(t, f.handlers.GetVisits(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "visits": 0}`, rec.Body.String())
}
