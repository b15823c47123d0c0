package api

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/vibe-gallery-backend/database"
	"github.com/rpupo63/vibe-gallery-backend/errs"
	"github.com/rpupo63/vibe-gallery-backend/models"
	"github.com/rpupo63/vibe-gallery-backend/services"
)

const maxCommentRunes = 1000

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo *database.CommentRepo
	projectRepo *database.ProjectRepo
	mailer      *services.Mailer
	frontendURL string
}

func newCommentHandler(commentRepo *database.CommentRepo, projectRepo *database.ProjectRepo, mailer *services.Mailer, frontendURL string) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		commentRepo: commentRepo,
		projectRepo: projectRepo,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// getComments lists a project's comments, oldest first
// @Summary List comments
// @Tags Comments
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} CommentCollection
// @Failure 404 {object} ErrorResponse
// @Router /projects/{projectID}/comments [get]
func (h commentHandler) getComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		projectID := chi.URLParam(r, "projectID")

		if _, err := h.projectRepo.FindByID(ctx, projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		comments, err := h.commentRepo.FindByProject(ctx, projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, CommentCollection{Comments: comments, Total: len(comments)})
	}
}

// addComment posts a comment as the signed-in user
// @Summary Add comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param comment body commentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{projectID}/comments [post]
func (h commentHandler) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID, err := ctxGetUserID(ctx)
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req commentRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		content := strings.TrimSpace(req.Content)
		if content == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}
		if utf8.RuneCountInString(content) > maxCommentRunes {
			h.responder.WriteError(w, errs.NewInvalidFieldError("content", "must be at most 1000 characters"))
			return
		}

		comment := models.Comment{
			ProjectID: chi.URLParam(r, "projectID"),
			UserID:    userID,
			Content:   content,
		}
		if err := h.commentRepo.Add(ctx, &comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("add comment", "project", err))
			return
		}

		if h.mailer != nil {
			go h.notifyOwner(context.WithoutCancel(ctx), comment)
		}

		h.responder.WriteCreated(w, comment)
	}
}

func (h commentHandler) notifyOwner(ctx context.Context, comment models.Comment) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	project, err := h.projectRepo.FindByIDWithOwner(ctx, comment.ProjectID)
	if err != nil {
		h.logger.Warn().Err(err).Str("projectID", comment.ProjectID).Msg("Could not load project for comment notification")
		return
	}

	projectURL := services.BuildProjectURL(h.frontendURL, project.ID)
	if err := h.mailer.NotifyNewComment(ctx, *project, comment, projectURL); err != nil {
		h.logger.Error().Err(err).Str("projectID", project.ID).Msg("Failed to send comment notification")
	}
}
