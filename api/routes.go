package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// setupFrontendRoutes sets up all routes. Reads are public; writes that
// belong to a member go through authenticate.
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, startupTime time.Time) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", healthHandler(startupTime))

		// Public routes; a valid session only adds liked_by_me
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.identify)

			r.Get("/projects", handlers.projectHandler.getAllProjects())
			r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
			r.Post("/projects/{projectID}/view", handlers.projectHandler.recordView())
			r.Get("/projects/{projectID}/comments", handlers.commentHandler.getComments())

			r.Get("/categories", handlers.referenceHandler.getCategories())
			r.Get("/events", handlers.referenceHandler.getEvents())
			r.Get("/licenses", handlers.referenceHandler.getLicenses())
			r.Get("/stats", handlers.referenceHandler.getStats())

			r.Post("/chat/sessions", handlers.chatHandler.createSession())
			r.Get("/chat/sessions/{sessionID}", handlers.chatHandler.getSession())
			r.Post("/chat/sessions/{sessionID}/messages", handlers.chatHandler.postMessage())
			r.Post("/chat/sessions/{sessionID}/reset", handlers.chatHandler.resetSession())
			r.Delete("/chat/sessions/{sessionID}", handlers.chatHandler.deleteSession())

			r.Get("/auth/google/login", handlers.authHandler.googleLogin())
			r.Get("/auth/google/callback", handlers.authHandler.googleCallback())
			r.Post("/auth/demo", handlers.authHandler.demoLogin())
			r.Post("/auth/logout", handlers.authHandler.logout())
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/auth/me", handlers.authHandler.me())

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
			r.Post("/projects/{projectID}/like", handlers.projectHandler.toggleLike())
			r.Post("/projects/{projectID}/comments", handlers.commentHandler.addComment())

			r.Post("/preview", handlers.previewHandler.preview())
		})
	})
}

func healthHandler(startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(logNamed("healthHandler"))
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, map[string]interface{}{
			"status":         "ok",
			"started_at":     startupTime.UTC().Format(time.RFC3339),
			"uptime_seconds": int64(time.Since(startupTime).Seconds()),
		})
	}
}
