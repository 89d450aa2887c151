package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public surface and the auth-gated admin writes
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/api/admin/login", handlers.authHandler.login())

		r.Get("/api/blogs", handlers.blogHandler.getAllBlogs())
		r.Get("/api/blogs/{blogID}", handlers.blogHandler.getBlog())

		r.Get("/api/projects", handlers.projectHandler.getAllProjects())
		r.Get("/api/projects/{projectID}", handlers.projectHandler.getProject())

		r.Get("/api/health", handlers.healthHandler.health())
		r.Get("/uploads/{filename}", handlers.uploadsHandler.serveFile())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/api/blogs", handlers.blogHandler.createBlog())
		r.Put("/api/blogs/{blogID}", handlers.blogHandler.updateBlog())
		r.Delete("/api/blogs/{blogID}", handlers.blogHandler.deleteBlog())

		r.Post("/api/projects", handlers.projectHandler.createProject())
		r.Put("/api/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/api/projects/{projectID}", handlers.projectHandler.deleteProject())
	})
}
