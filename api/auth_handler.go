package api

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/rpupo63/vibe-gallery-backend/database"
	"github.com/rpupo63/vibe-gallery-backend/errs"
	"github.com/rpupo63/vibe-gallery-backend/models"
)

const (
	googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
	oauthStateCookie  = "gallery_oauth_state"
	oauthStateTTL     = 10 * time.Minute
)

// googleProfile is the subset of the OpenID userinfo document we store.
type googleProfile struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	userRepo    *database.UserRepo
	sessions    sessionIssuer
	oauth       *oauth2.Config
	userInfoURL string
	frontendURL string
	demo        bool
	now         func() time.Time
}

func newAuthHandler(userRepo *database.UserRepo, sessions sessionIssuer, oauth *oauth2.Config, frontendURL string, demo bool, now func() time.Time) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		userRepo:    userRepo,
		sessions:    sessions,
		oauth:       oauth,
		userInfoURL: googleUserInfoURL,
		frontendURL: frontendURL,
		demo:        demo,
		now:         now,
	}
}

// newGoogleOAuthConfig returns nil when Google sign-in is not configured.
func newGoogleOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// googleLogin redirects the browser to Google's consent screen
// @Summary Start Google sign-in
// @Tags Auth
// @Success 307
// @Failure 503 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h authHandler) googleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.oauth == nil {
			h.responder.WriteError(w, errs.NewConfigMissingError("GOOGLE_CLIENT_ID"))
			return
		}

		state := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     oauthStateCookie,
			Value:    state,
			Path:     "/auth",
			Expires:  h.now().Add(oauthStateTTL),
			HttpOnly: true,
			Secure:   h.sessions.secure,
			SameSite: http.SameSiteLaxMode,
		})

		authURL := h.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
		http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
	}
}

// googleCallback finishes Google sign-in and starts a gallery session
// @Summary Google sign-in callback
// @Tags Auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 303
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h authHandler) googleCallback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if h.oauth == nil {
			h.responder.WriteError(w, errs.NewConfigMissingError("GOOGLE_CLIENT_ID"))
			return
		}

		stateCookie, err := r.Cookie(oauthStateCookie)
		state := r.URL.Query().Get("state")
		if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(stateCookie.Value), []byte(state)) != 1 {
			h.responder.WriteError(w, errs.NewOAuthStateError())
			return
		}
		http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", Path: "/auth", MaxAge: -1})

		code := r.URL.Query().Get("code")
		if code == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("code"))
			return
		}

		token, err := h.oauth.Exchange(ctx, code)
		if err != nil {
			h.responder.WriteError(w, errs.NewUpstreamError("google", 0, fmt.Errorf("exchange code: %w", err)))
			return
		}

		profile, err := h.fetchProfile(r, token)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var avatarURL *string
		if profile.Picture != "" {
			avatarURL = &profile.Picture
		}
		user, err := h.userRepo.FindOrCreateByEmail(ctx, profile.Email, profile.Name, avatarURL)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("sign in", "user", err))
			return
		}

		sessionToken, expiresAt, err := h.sessions.issue(*user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to start session", err))
			return
		}
		h.sessions.setCookie(w, sessionToken, expiresAt)

		h.logger.Info().Str("userID", user.ID).Msg("Signed in with Google")
		http.Redirect(w, r, h.frontendURL, http.StatusSeeOther)
	}
}

func (h authHandler) fetchProfile(r *http.Request, token *oauth2.Token) (*googleProfile, error) {
	client := h.oauth.Client(r.Context(), token)
	res, err := client.Get(h.userInfoURL)
	if err != nil {
		return nil, errs.NewUpstreamError("google", 0, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, errs.NewUpstreamError("google", res.StatusCode, err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, errs.NewUpstreamError("google", res.StatusCode, fmt.Errorf("userinfo: %s", body))
	}

	var profile googleProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, errs.NewUpstreamError("google", res.StatusCode, fmt.Errorf("decode userinfo: %w", err))
	}
	if profile.Email == "" || !profile.EmailVerified {
		return nil, errs.NewUnauthorizedError("google account has no verified e-mail")
	}
	return &profile, nil
}

// demoLogin signs in as the demo teacher; only available in demo mode
// @Summary Demo sign-in
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/demo [post]
func (h authHandler) demoLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.demo {
			h.responder.WriteError(w, errs.NewNotFoundError("demo sign-in is disabled"))
			return
		}

		user, err := h.userRepo.FindByID(r.Context(), database.DemoUserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find demo user", "user", err))
			return
		}
		h.startSession(w, *user)
	}
}

func (h authHandler) startSession(w http.ResponseWriter, user models.User) {
	token, expiresAt, err := h.sessions.issue(user)
	if err != nil {
		h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to start session", err))
		return
	}
	h.sessions.setCookie(w, token, expiresAt)
	h.responder.WriteJSON(w, SessionResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// me returns the signed-in user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		user, err := h.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

// logout clears the session cookie
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.sessions.clearCookie(w)
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "signed out",
		})
	}
}
