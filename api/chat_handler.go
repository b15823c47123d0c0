package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/vibe-gallery-backend/database"
	"github.com/rpupo63/vibe-gallery-backend/errs"
	"github.com/rpupo63/vibe-gallery-backend/models"
	"github.com/rpupo63/vibe-gallery-backend/services"
)

type chatHandler struct {
	responder   Responder
	logger      zerolog.Logger
	store       *chatStore
	projectRepo *database.ProjectRepo
	replyDelay  time.Duration
}

func newChatHandler(store *chatStore, projectRepo *database.ProjectRepo, replyDelay time.Duration) chatHandler {
	logger := log.With().Str("handlerName", "chatHandler").Logger()

	return chatHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		store:       store,
		projectRepo: projectRepo,
		replyDelay:  replyDelay,
	}
}

// createSession opens a conversation with the gallery assistant
// @Summary Start chat
// @Tags Chat
// @Produce json
// @Success 201 {object} ChatSessionResponse
// @Router /chat/sessions [post]
func (h chatHandler) createSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, transcript := h.store.create()
		h.responder.WriteCreated(w, ChatSessionResponse{SessionID: id, Messages: transcript})
	}
}

// @Summary Get chat
// @Tags Chat
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} ChatSessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /chat/sessions/{sessionID} [get]
func (h chatHandler) getSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		transcript, ok := h.store.get(id)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFound("chat session"))
			return
		}
		h.responder.WriteJSON(w, ChatSessionResponse{SessionID: id, Messages: transcript})
	}
}

// postMessage answers one user message
// @Summary Send chat message
// @Tags Chat
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param message body chatMessageRequest true "Message"
// @Success 200 {object} ChatReplyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /chat/sessions/{sessionID}/messages [post]
func (h chatHandler) postMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "sessionID")

		if _, ok := h.store.get(id); !ok {
			h.responder.WriteError(w, errs.NewNotFound("chat session"))
			return
		}

		var req chatMessageRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		utterance := strings.TrimSpace(req.Content)
		if utterance == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}

		projects, err := h.projectRepo.FindAll(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		if h.replyDelay > 0 {
			timer := time.NewTimer(h.replyDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				h.logger.Debug().Str("sessionID", id).Msg("Chat request cancelled before reply")
				h.responder.WriteTimeoutError(w, h.replyDelay, r.URL.Path)
				return
			case <-timer.C:
			}
		}

		var reply string
		var intent services.Intent
		transcript, ok := h.store.update(id, func(t models.Transcript) models.Transcript {
			intent = services.Classify(t, utterance)
			var next models.Transcript
			reply, next = services.SelectReply(t, utterance, projects)
			return next
		})
		if !ok {
			h.responder.WriteError(w, errs.NewNotFound("chat session"))
			return
		}

		replyHTML, err := services.RenderReplyHTML(reply)
		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to render reply markdown")
		}

		h.responder.WriteJSON(w, ChatReplyResponse{
			SessionID: id,
			Intent:    intent.String(),
			Reply:     reply,
			ReplyHTML: replyHTML,
			Messages:  transcript,
		})
	}
}

// resetSession clears the conversation back to a single greeting
// @Summary Reset chat
// @Tags Chat
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} ChatSessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /chat/sessions/{sessionID}/reset [post]
func (h chatHandler) resetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		transcript, ok := h.store.update(id, func(models.Transcript) models.Transcript {
			return services.ResetTranscript()
		})
		if !ok {
			h.responder.WriteError(w, errs.NewNotFound("chat session"))
			return
		}
		h.responder.WriteJSON(w, ChatSessionResponse{SessionID: id, Messages: transcript})
	}
}

// @Summary End chat
// @Tags Chat
// @Param sessionID path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /chat/sessions/{sessionID} [delete]
func (h chatHandler) deleteSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.store.delete(chi.URLParam(r, "sessionID")) {
			h.responder.WriteError(w, errs.NewNotFound("chat session"))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
