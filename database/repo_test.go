package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anasir-dev/portfolio-backend/errs"
	"github.com/anasir-dev/portfolio-backend/models"
)

func TestBlogRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := New(NewMemoryStore())
	repo := db.BlogRepo()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	blogPost := &models.BlogPost{
		ID:        uuid.New(),
		Title:     "Hello",
		Content:   "body",
		Excerpt:   "body...",
		Author:    "Admin",
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, repo.Add(ctx, blogPost))

	found, err := repo.FindByID(ctx, blogPost.ID)
	require.NoError(t, err)
	assert.Equal(t, blogPost, found)

	blogPost.Title = "Changed"
	require.NoError(t, repo.Update(ctx, blogPost))

	found, err = repo.FindByID(ctx, blogPost.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", found.Title)

	require.NoError(t, repo.Delete(ctx, blogPost.ID))
	_, err = repo.FindByID(ctx, blogPost.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestProjectRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := New(NewMemoryStore())
	repo := db.ProjectRepo()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	project := &models.Project{
		ID:           uuid.New(),
		Title:        "Site",
		Description:  "a site",
		Technologies: []string{"Go"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	require.NoError(t, repo.Add(ctx, project))

	found, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project, found)
}

func TestAdminRepoSingleRecord(t *testing.T) {
	ctx := context.Background()
	db := New(NewMemoryStore())
	repo := db.AdminRepo()

	_, err := repo.Get(ctx)
	assert.True(t, errs.IsNotFound(err))

	admin := &models.Admin{Username: "admin", PasswordHash: "$2a$12$fake"}
	require.NoError(t, repo.Put(ctx, admin))

	found, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, admin, found)

	// Seeding is strictly write-once.
	err = repo.Put(ctx, &models.Admin{Username: "other"})
	assert.True(t, errs.IsAlreadyExists(err))
}
