package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/anasir-dev/portfolio-backend/models"
)

type BlogRepo struct {
	blogs collection[models.BlogPost]
}

func NewBlogRepo(store Store) *BlogRepo {
	return &BlogRepo{blogs: collection[models.BlogPost]{store: store, name: CollectionBlogs}}
}

// FindAll returns all blog posts in storage order.
func (r *BlogRepo) FindAll(ctx context.Context) ([]*models.BlogPost, error) {
	return r.blogs.findAll(ctx)
}

// FindByID returns a blog post by its ID
func (r *BlogRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	return r.blogs.findByID(ctx, id.String())
}

// Add inserts a new blog post
func (r *BlogRepo) Add(ctx context.Context, blogPost *models.BlogPost) error {
	return r.blogs.insert(ctx, blogPost.ID.String(), blogPost)
}

// Update replaces an existing blog post
func (r *BlogRepo) Update(ctx context.Context, blogPost *models.BlogPost) error {
	return r.blogs.replace(ctx, blogPost.ID.String(), blogPost)
}

// Delete removes a blog post by id
func (r *BlogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.blogs.remove(ctx, id.String())
}
