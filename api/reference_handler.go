package api

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/vibe-gallery-backend/database"
	"github.com/rpupo63/vibe-gallery-backend/errs"
	"github.com/rpupo63/vibe-gallery-backend/services"
)

type referenceHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
	eventRepo    *database.EventRepo
	licenseRepo  *database.LicenseRepo
	projectRepo  *database.ProjectRepo
}

func newReferenceHandler(db database.Database) referenceHandler {
	logger := log.With().Str("handlerName", "referenceHandler").Logger()

	return referenceHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: db.CategoryRepo(),
		eventRepo:    db.EventRepo(),
		licenseRepo:  db.LicenseRepo(),
		projectRepo:  db.ProjectRepo(),
	}
}

// @Summary List categories
// @Tags Reference
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h referenceHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "categories", err))
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

// @Summary List events
// @Tags Reference
// @Produce json
// @Param active_only query bool false "Only events still accepting submissions"
// @Success 200 {array} models.Event
// @Router /events [get]
func (h referenceHandler) getEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := false
		if raw := r.URL.Query().Get("active_only"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("active_only", "must be true or false"))
				return
			}
			activeOnly = parsed
		}

		events, err := h.eventRepo.FindAll(r.Context(), activeOnly)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find events", "events", err))
			return
		}
		h.responder.WriteJSON(w, events)
	}
}

// @Summary List licenses
// @Tags Reference
// @Produce json
// @Success 200 {array} models.License
// @Router /licenses [get]
func (h referenceHandler) getLicenses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		licenses, err := h.licenseRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find licenses", "licenses", err))
			return
		}
		h.responder.WriteJSON(w, licenses)
	}
}

// getStats returns the totals shown above the gallery
// @Summary Gallery statistics
// @Tags Reference
// @Produce json
// @Success 200 {object} services.GalleryStats
// @Router /stats [get]
func (h referenceHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}
		h.responder.WriteJSON(w, services.Stats(projects))
	}
}
