package api

import (
	"github.com/anasir-dev/portfolio-backend/auth"
	"github.com/anasir-dev/portfolio-backend/database"
	"github.com/anasir-dev/portfolio-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler    authHandler
	blogHandler    blogHandler
	projectHandler projectHandler
	healthHandler  healthHandler
	uploadsHandler uploadsHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, authService *auth.Service, assets services.AssetStore, disk *services.DiskAssetStore) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(authService),
		blogHandler:    newBlogHandler(services.NewBlogService(db.BlogRepo(), assets)),
		projectHandler: newProjectHandler(services.NewProjectService(db.ProjectRepo(), assets)),
		healthHandler:  newHealthHandler(db.Kind()),
		uploadsHandler: newUploadsHandler(disk),
	}
}
