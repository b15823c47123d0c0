package api

import (
	"github.com/rpupo63/vibe-gallery-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, deps router) *routeHandlers {
	return &routeHandlers{
		projectHandler:   newProjectHandler(db.ProjectRepo(), deps.now),
		commentHandler:   newCommentHandler(db.CommentRepo(), db.ProjectRepo(), deps.mailer, deps.frontendURL),
		referenceHandler: newReferenceHandler(db),
		chatHandler:      newChatHandler(newChatStore(deps.now), db.ProjectRepo(), deps.replyDelay),
		previewHandler:   newPreviewHandler(deps.previewer, deps.thumbnails),
		authHandler:      newAuthHandler(db.UserRepo(), deps.sessions, deps.oauth, deps.frontendURL, deps.demo, deps.now),
	}
}
