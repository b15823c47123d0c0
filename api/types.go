package api

import (
	"time"

	"github.com/rpupo63/vibe-gallery-backend/models"
	"github.com/rpupo63/vibe-gallery-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler   projectHandler
	commentHandler   commentHandler
	referenceHandler referenceHandler
	chatHandler      chatHandler
	previewHandler   previewHandler
	authHandler      authHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// ProjectCard is a project as the gallery grid shows it
type ProjectCard struct {
	models.Project
	AuthorDisplayName string  `json:"author_display_name"`
	Hotness           float64 `json:"hotness"`
	IsHot             bool    `json:"is_hot"`
	CreatedLabel      string  `json:"created_label"`
	LikedByMe         bool    `json:"liked_by_me"`
}

func newProjectCard(p models.Project, now time.Time, likedByMe bool) ProjectCard {
	return ProjectCard{
		Project:           p,
		AuthorDisplayName: p.AuthorDisplayName(),
		Hotness:           services.Hotness(p),
		IsHot:             services.IsHot(p),
		CreatedLabel:      services.RelativeDate(p.CreatedAt, now),
		LikedByMe:         likedByMe,
	}
}

// ProjectCollection is the response of the gallery listing
type ProjectCollection struct {
	Projects []ProjectCard `json:"projects"`
	Total    int           `json:"total"`
	Sort     string        `json:"sort"`
}

// projectRequest is the body accepted when submitting or editing a project
type projectRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	DeployURL    string  `json:"deploy_url"`
	GithubURL    *string `json:"github_url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	AuthorName   string  `json:"author_name"`
	CategoryID   *uint   `json:"category_id"`
	EventID      *uint   `json:"event_id"`
	LicenseID    *uint   `json:"license_id"`
}

type viewResponse struct {
	ViewCount int64 `json:"view_count"`
}

type likeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

type commentRequest struct {
	Content string `json:"content"`
}

// CommentCollection lists the comments of one project, oldest first
type CommentCollection struct {
	Comments []models.Comment `json:"comments"`
	Total    int              `json:"total"`
}

type chatMessageRequest struct {
	Content string `json:"content"`
}

// ChatSessionResponse is the state of one assistant conversation
type ChatSessionResponse struct {
	SessionID string            `json:"session_id"`
	Messages  models.Transcript `json:"messages"`
}

// ChatReplyResponse carries the assistant's answer to one message
type ChatReplyResponse struct {
	SessionID string            `json:"session_id"`
	Intent    string            `json:"intent"`
	Reply     string            `json:"reply"`
	ReplyHTML string            `json:"reply_html"`
	Messages  models.Transcript `json:"messages"`
}

type previewRequest struct {
	URL string `json:"url"`
}

// PreviewResponse is the screenshot and metadata captured for a link
type PreviewResponse struct {
	services.LinkPreview
	FallbackThumbnailURL string `json:"fallback_thumbnail_url"`
}

// SessionResponse is returned after a successful sign-in
type SessionResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}
