package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anasir-dev/portfolio-backend/errs"
	"github.com/anasir-dev/portfolio-backend/services"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *services.ProjectService
}

func newProjectHandler(projects *services.ProjectService) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

func parseProjectID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		return uuid.Nil, errs.NewNotFoundError("project not found")
	}
	return id, nil
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Description Retrieves all projects sorted newest-first
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Get(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project from a multipart form
// @Summary Create project
// @Description Creates a new project with an optional image attachment
// @Tags Projects
// @Accept mpfd
// @Produce json
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - missing required field"
// @Failure 413 {object} ErrorResponse "Payload Too Large"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseMultipart(w, r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		upload, err := extractUpload(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input := services.ProjectInput{
			Title:        formString(r, "title"),
			Description:  formString(r, "description"),
			Technologies: formString(r, "technologies"),
			GithubLink:   formString(r, "githubLink"),
			LiveLink:     formString(r, "liveLink"),
		}

		project, err := h.projects.Create(r.Context(), input, upload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, project)
	}
}

// updateProject partially updates an existing project
// @Summary Update project
// @Description Merges supplied multipart fields over the existing project; omitted fields are preserved
// @Tags Projects
// @Accept mpfd
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Updated project"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := parseMultipart(w, r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		upload, err := extractUpload(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		update := services.ProjectUpdate{
			Title:        formValue(r, "title"),
			Description:  formValue(r, "description"),
			Technologies: formValue(r, "technologies"),
			GithubLink:   formValue(r, "githubLink"),
			LiveLink:     formValue(r, "liveLink"),
		}

		project, err := h.projects.Update(r.Context(), projectID, update, upload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}
