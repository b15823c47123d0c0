package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/rpupo63/vibe-gallery-backend/config"
	"github.com/rpupo63/vibe-gallery-backend/database"
	"github.com/rpupo63/vibe-gallery-backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database, c map[string]string) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(database, withConfig(c), withStartupTime(startupTime))

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

// router holds everything the handlers depend on besides the database.
// Options set in tests take precedence over values built from config.
type router struct {
	config      map[string]string
	startupTime time.Time
	now         func() time.Time
	sessions    sessionIssuer
	oauth       *oauth2.Config
	previewer   linkPreviewer
	thumbnails  services.ThumbnailStore
	mailer      *services.Mailer
	frontendURL string
	replyDelay  time.Duration
	demo        bool
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withClock(now func() time.Time) func(*router) {
	return func(r *router) {
		r.now = now
	}
}

func withPreviewer(previewer linkPreviewer) func(*router) {
	return func(r *router) {
		r.previewer = previewer
	}
}

func withThumbnailStore(store services.ThumbnailStore) func(*router) {
	return func(r *router) {
		r.thumbnails = store
	}
}

func withMailer(mailer *services.Mailer) func(*router) {
	return func(r *router) {
		r.mailer = mailer
	}
}

func newRouter(database database.Database, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	router.resolve()

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	handlers := initializeHandlers(database, router)
	authMiddleware := newAuthMiddleware(router.sessions)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	setupFrontendRoutes(chiRouter, handlers, authMiddleware, router.startupTime)

	return chiRouter
}

// resolve fills every dependency not supplied by an option from config.
func (r *router) resolve() {
	c := r.config
	if r.now == nil {
		r.now = time.Now
	}
	if r.startupTime.IsZero() {
		r.startupTime = r.now()
	}

	secret := config.GetString(c, "JWT_SECRET_KEY", "")
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET_KEY not set, sessions will not survive a restart")
	}
	r.sessions = newSessionIssuer(
		secret,
		config.GetDuration(c, "SESSION_TTL_HOURS", time.Hour, 24*time.Hour),
		config.GetBool(c, "SESSION_COOKIE_SECURE", config.IsProduction(c)),
		r.now,
	)

	r.oauth = newGoogleOAuthConfig(
		config.GetString(c, "GOOGLE_CLIENT_ID", ""),
		config.GetString(c, "GOOGLE_CLIENT_SECRET", ""),
		config.GetString(c, "GOOGLE_REDIRECT_URL", ""),
	)

	if r.previewer == nil {
		r.previewer = services.NewScreenshotClient(
			config.GetString(c, "MICROLINK_API_URL", services.DefaultMicrolinkURL),
			config.GetString(c, "MICROLINK_API_KEY", ""),
			30*time.Second,
		)
	}

	if bucket := config.GetString(c, "S3_BUCKET", ""); r.thumbnails == nil && bucket != "" {
		store, err := services.NewS3ThumbnailStore(
			context.Background(),
			bucket,
			config.GetString(c, "S3_REGION", "ap-northeast-2"),
			config.GetString(c, "S3_PUBLIC_BASE_URL", ""),
		)
		if err != nil {
			log.Warn().Err(err).Msg("Thumbnail mirroring disabled")
		} else {
			r.thumbnails = store
		}
	}

	if r.mailer == nil {
		r.mailer = services.NewMailer(
			config.GetString(c, "RESEND_API_URL", services.DefaultResendURL),
			config.GetString(c, "RESEND_API_KEY", ""),
			config.GetString(c, "RESEND_FROM_EMAIL", ""),
		)
	}
	r.frontendURL = config.GetString(c, "FRONTEND_URL", "http://localhost:5173")
	r.replyDelay = config.GetDuration(c, "CHAT_REPLY_DELAY_MS", time.Millisecond, 800*time.Millisecond)
	r.demo = database.IsDemo(c)
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}

func logNamed(handlerName string) zerolog.Logger {
	return log.With().Str("handlerName", handlerName).Logger()
}
