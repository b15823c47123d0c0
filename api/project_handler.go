package api

import (
	"net/http"
	"net/url"
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

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	now         func() time.Time
}

func newProjectHandler(projectRepo *database.ProjectRepo, now func() time.Time) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		now:         now,
	}
}

// getAllProjects returns the gallery view for the requested filters
// @Summary List projects
// @Description Filters by category and event ids and orders by latest, likes, views or hotness
// @Tags Projects
// @Produce json
// @Param category query string false "Category id or all"
// @Param event query string false "Event id or all"
// @Param sort query string false "latest, likes, views or hotness"
// @Success 200 {object} ProjectCollection
// @Failure 500 {object} ErrorResponse
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		projects, err := h.projectRepo.FindAll(ctx)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		query := services.ListingQuery{
			Category: r.URL.Query().Get("category"),
			Event:    r.URL.Query().Get("event"),
			Sort:     services.ParseSortMode(r.URL.Query().Get("sort")),
		}
		view := services.ComputeView(projects, query)

		liked := map[string]bool{}
		if userID, err := ctxGetUserID(ctx); err == nil {
			ids, err := h.projectRepo.LikedProjectIDs(ctx, userID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find likes", "project likes", err))
				return
			}
			for _, id := range ids {
				liked[id] = true
			}
		}

		now := h.now()
		cards := make([]ProjectCard, 0, len(view))
		for _, p := range view {
			cards = append(cards, newProjectCard(p, now, liked[p.ID]))
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: cards,
			Total:    len(cards),
			Sort:     string(query.Sort),
		})
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} ProjectCard
// @Failure 404 {object} ErrorResponse
// @Router /projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		projectID := chi.URLParam(r, "projectID")

		project, err := h.projectRepo.FindByID(ctx, projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		likedByMe := false
		if userID, err := ctxGetUserID(ctx); err == nil {
			likedByMe, err = h.projectRepo.HasLiked(ctx, projectID, userID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find like", "project like", err))
				return
			}
		}

		h.responder.WriteJSON(w, newProjectCard(*project, h.now(), likedByMe))
	}
}

// createProject submits a new project for the signed-in user
// @Summary Submit project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body projectRequest true "Project data"
// @Success 201 {object} ProjectCard
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID, err := ctxGetUserID(ctx)
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var req projectRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}
		req.normalize()
		if err := req.validate(false); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.ThumbnailURL == "" {
			req.ThumbnailURL = services.DefaultThumbnailURL(req.Title)
		}

		project := models.Project{UserID: userID}
		req.apply(&project)

		if err := h.projectRepo.Add(ctx, &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		createdProject, err := h.projectRepo.FindByID(ctx, project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created project", "project", err))
			return
		}

		h.logger.Info().Str("projectID", project.ID).Str("userID", userID).Msg("Project submitted")
		h.responder.WriteCreated(w, newProjectCard(*createdProject, h.now(), false))
	}
}

// updateProject lets the author edit their project
// @Summary Edit project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param project body projectRequest true "Updated project data"
// @Success 200 {object} ProjectCard
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID, err := ctxGetUserID(ctx)
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		projectID := chi.URLParam(r, "projectID")

		existingProject, err := h.projectRepo.FindByID(ctx, projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existingProject.UserID != userID {
			h.responder.WriteError(w, errs.NewNotOwnerError("project"))
			return
		}

		var req projectRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		req.normalize()
		if err := req.validate(true); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.ThumbnailURL == "" {
			req.ThumbnailURL = existingProject.ThumbnailURL
		}

		project := models.Project{ID: projectID, UserID: existingProject.UserID}
		req.apply(&project)

		if err := h.projectRepo.Update(ctx, &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		updatedProject, err := h.projectRepo.FindByID(ctx, projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}

		likedByMe, err := h.projectRepo.HasLiked(ctx, projectID, userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find like", "project like", err))
			return
		}

		h.responder.WriteJSON(w, newProjectCard(*updatedProject, h.now(), likedByMe))
	}
}

// deleteProject removes a project; only its author may do so
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID, err := ctxGetUserID(ctx)
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		projectID := chi.URLParam(r, "projectID")

		project, err := h.projectRepo.FindByID(ctx, projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project.UserID != userID {
			h.responder.WriteError(w, errs.NewNotOwnerError("project"))
			return
		}

		if err := h.projectRepo.Delete(ctx, projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// recordView counts one visit of the project page
// @Summary Record view
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} viewResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{projectID}/view [post]
func (h projectHandler) recordView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := h.projectRepo.IncrementViews(r.Context(), chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("record view", "project", err))
			return
		}
		h.responder.WriteJSON(w, viewResponse{ViewCount: views})
	}
}

// toggleLike likes the project or withdraws the like of the signed-in user
// @Summary Toggle like
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} likeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{projectID}/like [post]
func (h projectHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID, err := ctxGetUserID(ctx)
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		liked, count, err := h.projectRepo.ToggleLike(ctx, chi.URLParam(r, "projectID"), userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("toggle like", "project", err))
			return
		}
		h.responder.WriteJSON(w, likeResponse{Liked: liked, LikeCount: count})
	}
}

func (req *projectRequest) normalize() {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.DeployURL = strings.TrimSpace(req.DeployURL)
	req.ThumbnailURL = strings.TrimSpace(req.ThumbnailURL)
	req.AuthorName = strings.TrimSpace(req.AuthorName)
	if req.GithubURL != nil {
		trimmed := strings.TrimSpace(*req.GithubURL)
		if trimmed == "" {
			req.GithubURL = nil
		} else {
			req.GithubURL = &trimmed
		}
	}
}

func (req projectRequest) validate(requireAuthor bool) error {
	switch {
	case req.Title == "":
		return errs.NewMissingRequiredFieldError("title")
	case req.DeployURL == "":
		return errs.NewMissingRequiredFieldError("deploy_url")
	case req.Description == "":
		return errs.NewMissingRequiredFieldError("description")
	case requireAuthor && req.AuthorName == "":
		return errs.NewMissingRequiredFieldError("author_name")
	}
	if !isWebURL(req.DeployURL) {
		return errs.NewInvalidFieldError("deploy_url", "must be an http or https URL")
	}
	if req.GithubURL != nil && !isWebURL(*req.GithubURL) {
		return errs.NewInvalidFieldError("github_url", "must be an http or https URL")
	}
	if req.ThumbnailURL != "" && !isWebURL(req.ThumbnailURL) {
		return errs.NewInvalidFieldError("thumbnail_url", "must be an http or https URL")
	}
	return nil
}

func (req projectRequest) apply(p *models.Project) {
	p.Title = req.Title
	p.Description = req.Description
	p.DeployURL = req.DeployURL
	p.GithubURL = req.GithubURL
	p.ThumbnailURL = req.ThumbnailURL
	p.AuthorName = req.AuthorName
	p.CategoryID = req.CategoryID
	p.EventID = req.EventID
	p.LicenseID = req.LicenseID
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
