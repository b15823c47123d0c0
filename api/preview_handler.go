package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/vibe-gallery-backend/errs"
	"github.com/rpupo63/vibe-gallery-backend/services"
)

// linkPreviewer captures what a submitted link looks like.
type linkPreviewer interface {
	Preview(ctx context.Context, pageURL string) services.LinkPreview
}

type previewHandler struct {
	responder  Responder
	logger     zerolog.Logger
	previewer  linkPreviewer
	thumbnails services.ThumbnailStore
}

func newPreviewHandler(previewer linkPreviewer, thumbnails services.ThumbnailStore) previewHandler {
	logger := log.With().Str("handlerName", "previewHandler").Logger()

	return previewHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		previewer:  previewer,
		thumbnails: thumbnails,
	}
}

// preview captures a screenshot and the page metadata of a deploy URL.
// A part that could not be fetched is left out of the response.
// @Summary Preview link
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body previewRequest true "Deploy URL"
// @Success 200 {object} PreviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /preview [post]
func (h previewHandler) preview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req previewRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		pageURL := strings.TrimSpace(req.URL)
		if pageURL == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("url"))
			return
		}
		if !isWebURL(pageURL) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("url", "must be an http or https URL"))
			return
		}

		preview := h.previewer.Preview(ctx, pageURL)

		if h.thumbnails != nil && preview.ScreenshotURL != "" {
			key := "thumbnails/" + uuid.NewString()
			mirrored, err := h.thumbnails.Mirror(ctx, key, preview.ScreenshotURL)
			if err != nil {
				h.logger.Warn().Err(err).Str("url", pageURL).Msg("Keeping upstream screenshot URL")
			} else {
				preview.ScreenshotURL = mirrored
			}
		}

		title := pageURL
		if preview.Metadata != nil && preview.Metadata.Title != "" {
			title = preview.Metadata.Title
		}

		h.responder.WriteJSON(w, PreviewResponse{
			LinkPreview:          preview,
			FallbackThumbnailURL: services.DefaultThumbnailURL(title),
		})
	}
}
