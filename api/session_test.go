package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/vibe-gallery-backend/models"
)

func TestSessionIssuer_RoundTrip(t *testing.T) {
	issuer := newSessionIssuer("secret", time.Hour, false, testClock)

	token, expiresAt, err := issuer.issue(models.User{ID: "user-1", DisplayName: "김선생"})
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(time.Hour), expiresAt)

	userID, err := issuer.validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestSessionIssuer_Rejects(t *testing.T) {
	issuer := newSessionIssuer("secret", time.Hour, false, testClock)
	token, _, err := issuer.issue(models.User{ID: "user-1"})
	require.NoError(t, err)

	later := newSessionIssuer("secret", time.Hour, false, func() time.Time { return testNow.Add(2 * time.Hour) })
	_, err = later.validate(token)
	assert.Error(t, err, "expired")

	other := newSessionIssuer("other-secret", time.Hour, false, testClock)
	_, err = other.validate(token)
	assert.Error(t, err, "wrong secret")

	_, err = issuer.validate("not.a.jwt")
	assert.Error(t, err)

	_, _, err = issuer.issue(models.User{})
	assert.Error(t, err)
}

func TestNewSessionIssuer_DefaultTTL(t *testing.T) {
	issuer := newSessionIssuer("secret", 0, false, testClock)
	assert.Equal(t, 24*time.Hour, issuer.ttl)
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, tokenFromRequest(req))

	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "cookie-token"})
	assert.Equal(t, "cookie-token", tokenFromRequest(req))

	req.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", tokenFromRequest(req))
}
