package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/anasir-dev/portfolio-backend/models"
)

type ProjectRepo struct {
	projects collection[models.Project]
}

func NewProjectRepo(store Store) *ProjectRepo {
	return &ProjectRepo{projects: collection[models.Project]{store: store, name: CollectionProjects}}
}

// FindAll returns all projects in storage order.
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	return r.projects.findAll(ctx)
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return r.projects.findByID(ctx, id.String())
}

// Add inserts a new project
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.projects.insert(ctx, project.ID.String(), project)
}

// Update replaces an existing project
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.projects.replace(ctx, project.ID.String(), project)
}

// Delete removes a project by id
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.projects.remove(ctx, id.String())
}
