package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anasir-dev/portfolio-backend/database"
	"github.com/anasir-dev/portfolio-backend/errs"
	"github.com/anasir-dev/portfolio-backend/models"
)

// excerptLength is how much of the content becomes the derived excerpt.
const excerptLength = 150

const defaultAuthor = "Admin"

// BlogInput carries the fields of a create request.
type BlogInput struct {
	Title   string
	Content string
	Excerpt string
	Author  string
}

// BlogUpdate carries the fields of a partial update. nil means the field was
// omitted from the request and keeps its current value; a non-nil value
// replaces it. Required fields reject an explicit empty string.
type BlogUpdate struct {
	Title   *string
	Content *string
	Excerpt *string
	Author  *string
}

type BlogService struct {
	logger zerolog.Logger
	repo   *database.BlogRepo
	assets AssetStore
}

func NewBlogService(repo *database.BlogRepo, assets AssetStore) *BlogService {
	return &BlogService{
		logger: log.With().Str("serviceName", "blogService").Logger(),
		repo:   repo,
		assets: assets,
	}
}

// List returns all blog posts sorted newest-first. The sort happens at read
// time; ties at timestamp resolution may reorder.
func (s *BlogService) List(ctx context.Context) ([]*models.BlogPost, error) {
	blogPosts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.NewStorageError("list", "blog posts", err)
	}

	sort.Slice(blogPosts, func(i, j int) bool {
		return blogPosts[i].CreatedAt.After(blogPosts[j].CreatedAt)
	})
	return blogPosts, nil
}

// Get returns a single blog post by id.
func (s *BlogService) Get(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	blogPost, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NewNotFoundError("blog not found")
		}
		return nil, errs.NewStorageError("find", "blog post", err)
	}
	return blogPost, nil
}

// Create validates the input, stores the attachment if one was supplied, and
// persists a fresh record. The asset is written before the record so a failed
// record write can never leave a record pointing at a nonexistent asset.
func (s *BlogService) Create(ctx context.Context, input BlogInput, upload *Upload) (*models.BlogPost, error) {
	if input.Title == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}
	if input.Content == "" {
		return nil, errs.NewMissingRequiredFieldError("content")
	}
	if upload != nil {
		if err := ValidateUpload(upload); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	blogPost := &models.BlogPost{
		ID:        uuid.New(),
		Title:     input.Title,
		Content:   input.Content,
		Excerpt:   input.Excerpt,
		Author:    input.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if blogPost.Excerpt == "" {
		blogPost.Excerpt = deriveExcerpt(input.Content)
	}
	if blogPost.Author == "" {
		blogPost.Author = defaultAuthor
	}

	if upload != nil {
		ref, err := s.assets.Store(upload)
		if err != nil {
			return nil, errs.NewStorageError("store", "blog image", err)
		}
		blogPost.Image = &ref
	}

	if err := s.repo.Add(ctx, blogPost); err != nil {
		return nil, errs.NewStorageError("create", "blog post", err)
	}

	s.logger.Info().Str("blogID", blogPost.ID.String()).Msg("Created blog post")
	return blogPost, nil
}

// Update merges the supplied fields over the existing record. A new attachment
// releases the previous file-backed asset before the replacement is stored.
func (s *BlogService) Update(ctx context.Context, id uuid.UUID, update BlogUpdate, upload *Upload) (*models.BlogPost, error) {
	blogPost, err := s.Get(ctx, id)
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
		blogPost.Title = *update.Title
	}
	if update.Content != nil {
		if *update.Content == "" {
			return nil, errs.NewInvalidFieldError("content", "cannot be empty")
		}
		blogPost.Content = *update.Content
	}
	if update.Excerpt != nil {
		blogPost.Excerpt = *update.Excerpt
	}
	if update.Author != nil {
		blogPost.Author = *update.Author
	}

	if upload != nil {
		if blogPost.Image != nil {
			if err := s.assets.Release(*blogPost.Image); err != nil {
				s.logger.Error().Err(err).Str("ref", *blogPost.Image).Msg("Failed to release replaced blog image")
			}
		}
		ref, err := s.assets.Store(upload)
		if err != nil {
			return nil, errs.NewStorageError("store", "blog image", err)
		}
		blogPost.Image = &ref
	}

	blogPost.UpdatedAt = touch(blogPost.UpdatedAt)

	if err := s.repo.Update(ctx, blogPost); err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NewNotFoundError("blog not found")
		}
		return nil, errs.NewStorageError("update", "blog post", err)
	}

	return blogPost, nil
}

// Delete removes the record and releases its file-backed asset.
func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	blogPost, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errs.IsNotFound(err) {
			return errs.NewNotFoundError("blog not found")
		}
		return errs.NewStorageError("delete", "blog post", err)
	}

	if blogPost.Image != nil {
		if err := s.assets.Release(*blogPost.Image); err != nil {
			s.logger.Error().Err(err).Str("ref", *blogPost.Image).Msg("Failed to release deleted blog image")
		}
	}

	s.logger.Info().Str("blogID", id.String()).Msg("Deleted blog post")
	return nil
}

// deriveExcerpt takes the first 150 characters of content plus an ellipsis.
func deriveExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + "..."
}

// touch returns the current time, nudged forward when the clock has not moved
// past the previous timestamp, so updatedAt strictly increases.
func touch(previous time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(previous) {
		now = previous.Add(time.Millisecond)
	}
	return now
}

// ParseTechnologies splits a comma-separated list, trimming each entry and
// dropping empties. An empty input yields an empty list.
func ParseTechnologies(raw string) []string {
	technologies := []string{}
	for _, entry := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			technologies = append(technologies, trimmed)
		}
	}
	return technologies
}
