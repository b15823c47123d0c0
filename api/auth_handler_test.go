package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/rpupo63/vibe-gallery-backend/database"
	"github.com/rpupo63/vibe-gallery-backend/models"
)

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func googleConfig() map[string]string {
	cfg := testConfig()
	cfg["GOOGLE_CLIENT_ID"] = "client-id"
	cfg["GOOGLE_CLIENT_SECRET"] = "client-secret"
	cfg["GOOGLE_REDIRECT_URL"] = "http://localhost:8080/auth/google/callback"
	return cfg
}

func TestDemoLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/auth/demo", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var session SessionResponse
	decode(t, rec, &session)
	assert.NotEmpty(t, session.Token)
	assert.True(t, testNow.Add(24*time.Hour).Equal(session.ExpiresAt), session.ExpiresAt)
	assert.Equal(t, database.DemoUserID, session.User.ID)
	assert.Equal(t, "데모 선생님", session.User.DisplayName)

	cookie := responseCookie(rec, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, session.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestDemoLogin_SecureCookie(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		secure bool
	}{
		{"development", map[string]string{}, false},
		{"production", map[string]string{"ENV": "production"}, true},
		{"forced off in production", map[string]string{"ENV": "production", "SESSION_COOKIE_SECURE": "false"}, false},
		{"forced on", map[string]string{"SESSION_COOKIE_SECURE": "true"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			for k, v := range tt.env {
				cfg[k] = v
			}
			app := newTestAppWithConfig(t, cfg)

			rec := app.do(http.MethodPost, "/auth/demo", nil, "")
			require.Equal(t, http.StatusOK, rec.Code)
			cookie := responseCookie(rec, sessionCookieName)
			require.NotNil(t, cookie)
			assert.Equal(t, tt.secure, cookie.Secure)
		})
	}
}

func TestDemoLogin_DisabledOutsideDemoMode(t *testing.T) {
	cfg := testConfig()
	cfg["DB_TYPE"] = "supa"
	app := newTestAppWithConfig(t, cfg)

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodPost, "/auth/demo", nil, "").Code)
}

func TestMe(t *testing.T) {
	app := newTestApp(t)
	token := app.demoToken()

	rec := app.do(http.MethodGet, "/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var user models.User
	decode(t, rec, &user)
	assert.Equal(t, database.DemoUserID, user.ID)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	rec = httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/auth/me", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/auth/me", nil, "garbage").Code)
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/auth/logout", nil, app.demoToken())
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := responseCookie(rec, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestGoogleLogin_NotConfigured(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/auth/google/login", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGoogleLogin_Redirects(t *testing.T) {
	app := newTestAppWithConfig(t, googleConfig())

	rec := app.do(http.MethodGet, "/auth/google/login", nil, "")
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	location := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "https://accounts.google.com/o/oauth2/auth?"), location)
	assert.Contains(t, location, "client_id=client-id")
	assert.Contains(t, location, "prompt=consent")

	state := responseCookie(rec, oauthStateCookie)
	require.NotNil(t, state)
	assert.Contains(t, location, "state="+state.Value)
}

func TestGoogleCallback_StateMismatch(t *testing.T) {
	app := newTestAppWithConfig(t, googleConfig())

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=other&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "expected"})
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodGet, "/auth/google/callback?state=expected&code=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// fakeGoogle serves the token and userinfo endpoints of a Google sign-in.
func fakeGoogle(t *testing.T, profile googleProfile) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(profile)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newCallbackHandler(t *testing.T, srv *httptest.Server) (authHandler, *database.UserRepo) {
	t.Helper()
	db, err := database.OpenMemory(uuid.NewString())
	require.NoError(t, err)
	userRepo := database.New(db).UserRepo()

	oauth := &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/auth/google/callback",
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"},
	}
	sessions := newSessionIssuer("test-secret", time.Hour, false, testClock)
	h := newAuthHandler(userRepo, sessions, oauth, "http://localhost:5173", false, testClock)
	h.userInfoURL = srv.URL + "/userinfo"
	return h, userRepo
}

func callbackRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=st-1&code=auth-code", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "st-1"})
	return req
}

func TestGoogleCallback_SignsIn(t *testing.T) {
	srv := fakeGoogle(t, googleProfile{
		Email:         "jung@school.kr",
		EmailVerified: true,
		Name:          "정선생",
		Picture:       "https://lh3.googleusercontent.com/a/jung",
	})
	h, userRepo := newCallbackHandler(t, srv)

	rec := httptest.NewRecorder()
	h.googleCallback()(rec, callbackRequest())

	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Location"))

	cookie := responseCookie(rec, sessionCookieName)
	require.NotNil(t, cookie)
	userID, err := h.sessions.validate(cookie.Value)
	require.NoError(t, err)

	user, err := userRepo.FindByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "jung@school.kr", user.Email)
	assert.Equal(t, "정선생", user.DisplayName)
	assert.Equal(t, "jung", user.Username)
	require.NotNil(t, user.AvatarURL)

	state := responseCookie(rec, oauthStateCookie)
	require.NotNil(t, state)
	assert.Less(t, state.MaxAge, 0)
}

func TestGoogleCallback_UnverifiedEmail(t *testing.T) {
	srv := fakeGoogle(t, googleProfile{Email: "jung@school.kr", Name: "정선생"})
	h, _ := newCallbackHandler(t, srv)

	rec := httptest.NewRecorder()
	h.googleCallback()(rec, callbackRequest())

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, responseCookie(rec, sessionCookieName))
}
