package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anasir-dev/portfolio-backend/database"
	"github.com/anasir-dev/portfolio-backend/errs"
	"github.com/anasir-dev/portfolio-backend/models"
)

// ProjectInput carries the fields of a create request. Technologies is the raw
// comma-separated form value.
type ProjectInput struct {
	Title        string
	Description  string
	Technologies string
	GithubLink   string
	LiveLink     string
}

// ProjectUpdate carries the fields of a partial update. nil keeps the current
// value; a non-nil value replaces it, including an explicit empty string for
// the links (which clears them). A non-nil technologies string is re-split.
type ProjectUpdate struct {
	Title        *string
	Description  *string
	Technologies *string
	GithubLink   *string
	LiveLink     *string
}

type ProjectService struct {
	logger zerolog.Logger
	repo   *database.ProjectRepo
	assets AssetStore
}

func NewProjectService(repo *database.ProjectRepo, assets AssetStore) *ProjectService {
	return &ProjectService{
		logger: log.With().Str("serviceName", "projectService").Logger(),
		repo:   repo,
		assets: assets,
	}
}

// List returns all projects sorted newest-first, computed at read time.
func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.NewStorageError("list", "projects", err)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

// Get returns a single project by id.
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NewNotFoundError("project not found")
		}
		return nil, errs.NewStorageError("find", "project", err)
	}
	return project, nil
}

// Create validates the input, stores the attachment if one was supplied, and
// persists a fresh record. Asset before record, as with blogs.
func (s *ProjectService) Create(ctx context.Context, input ProjectInput, upload *Upload) (*models.Project, error) {
	if input.Title == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}
	if input.Description == "" {
		return nil, errs.NewMissingRequiredFieldError("description")
	}
	if upload != nil {
		if err := ValidateUpload(upload); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	project := &models.Project{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		Technologies: ParseTechnologies(input.Technologies),
		GithubLink:   input.GithubLink,
		LiveLink:     input.LiveLink,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if upload != nil {
		ref, err := s.assets.Store(upload)
		if err != nil {
			return nil, errs.NewStorageError("store", "project image", err)
		}
		project.Image = &ref
	}

	if err := s.repo.Add(ctx, project); err != nil {
		return nil, errs.NewStorageError("create", "project", err)
	}

	s.logger.Info().Str("projectID", project.ID.String()).Msg("Created project")
	return project, nil
}

// Update merges the supplied fields over the existing record.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, update ProjectUpdate, upload *Upload) (*models.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upload != nil {
		if err := ValidateUpload(upload); err != nil {
			return nil, err
		}
	}

	if update.Title != nil {
		if *update.Title == "" {
			return nil, errs.NewInvalidFieldError("title", "cannot be empty")
		}
		project.Title = *update.Title
	}
	if update.Description != nil {
		if *update.Description == "" {
			return nil, errs.NewInvalidFieldError("description", "cannot be empty")
		}
		project.Description = *update.Description
	}
	if update.Technologies != nil {
		project.Technologies = ParseTechnologies(*update.Technologies)
	}
	if update.GithubLink != nil {
		project.GithubLink = *update.GithubLink
	}
	if update.LiveLink != nil {
		project.LiveLink = *update.LiveLink
	}

	if upload != nil {
		if project.Image != nil {
			if err := s.assets.Release(*project.Image); err != nil {
				s.logger.Error().Err(err).Str("ref", *project.Image).Msg("Failed to release replaced project image")
			}
		}
		ref, err := s.assets.Store(upload)
		if err != nil {
			return nil, errs.NewStorageError("store", "project image", err)
		}
		project.Image = &ref
	}

	project.UpdatedAt = touch(project.UpdatedAt)

	if err := s.repo.Update(ctx, project); err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NewNotFoundError("project not found")
		}
		return nil, errs.NewStorageError("update", "project", err)
	}

	return project, nil
}

// Delete removes the record and releases its file-backed asset.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	project, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errs.IsNotFound(err) {
			return errs.NewNotFoundError("project not found")
		}
		return errs.NewStorageError("delete", "project", err)
	}

	if project.Image != nil {
		if err := s.assets.Release(*project.Image); err != nil {
			s.logger.Error().Err(err).Str("ref", *project.Image).Msg("Failed to release deleted project image")
		}
	}

	s.logger.Info().Str("projectID", id.String()).Msg("Deleted project")
	return nil
}
