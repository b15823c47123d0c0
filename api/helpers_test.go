package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rpupo63/vibe-gallery-backend/database"
	"github.com/rpupo63/vibe-gallery-backend/models"
	"github.com/rpupo63/vibe-gallery-backend/services"
)

var testNow = time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func testConfig() map[string]string {
	return map[string]string{
		"JWT_SECRET_KEY":      "test-secret",
		"CHAT_REPLY_DELAY_MS": "0",
		"ACCEPTED_ORIGINS":    "http://localhost:5173",
		"FRONTEND_URL":        "http://localhost:5173",
	}
}

type fakePreviewer struct {
	preview services.LinkPreview
}

func (f fakePreviewer) Preview(ctx context.Context, pageURL string) services.LinkPreview {
	return f.preview
}

type testApp struct {
	t       *testing.T
	handler http.Handler
	db      *gorm.DB
}

func newTestApp(t *testing.T, opts ...func(*router)) *testApp {
	t.Helper()
	return newTestAppWithConfig(t, testConfig(), opts...)
}

func newTestAppWithConfig(t *testing.T, cfg map[string]string, opts ...func(*router)) *testApp {
	t.Helper()
	db, err := database.OpenMemory(uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	base := []func(*router){
		withConfig(cfg),
		withClock(testClock),
		withPreviewer(fakePreviewer{}),
	}
	handler := newRouter(database.New(db), append(base, opts...)...)
	return &testApp{t: t, handler: handler, db: db}
}

// do sends a request, with body encoded as JSON when not nil.
func (a *testApp) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// demoToken signs in through the demo login.
func (a *testApp) demoToken() string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/auth/demo", nil, "")
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var session SessionResponse
	decode(a.t, rec, &session)
	require.NotEmpty(a.t, session.Token)
	return session.Token
}

// tokenFor issues a session for an arbitrary stored user.
func (a *testApp) tokenFor(userID string) string {
	a.t.Helper()
	issuer := newSessionIssuer("test-secret", time.Hour, false, testClock)
	token, _, err := issuer.issue(models.User{ID: userID})
	require.NoError(a.t, err)
	return token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}
