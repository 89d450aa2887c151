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

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogs     *services.BlogService
}

func newBlogHandler(blogs *services.BlogService) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogs:     blogs,
	}
}

// An id that is not even a UUID cannot name any record, so it reads as 404
// rather than 400.
func parseBlogID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "blogID"))
	if err != nil {
		return uuid.Nil, errs.NewNotFoundError("blog not found")
	}
	return id, nil
}

// getAllBlogs retrieves all blog posts
// @Summary Get all blog posts
// @Description Retrieves all blog posts sorted newest-first
// @Tags Blogs
// @Produce json
// @Success 200 {array} models.BlogPost "List of blog posts"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /api/blogs [get]
func (h blogHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPosts, err := h.blogs.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, blogPosts)
	}
}

// getBlog retrieves a specific blog post by ID
// @Summary Get blog post
// @Tags Blogs
// @Produce json
// @Param blogID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} models.BlogPost "Blog post details"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/blogs/{blogID} [get]
func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := parseBlogID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.blogs.Get(r.Context(), blogID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, blogPost)
	}
}

// createBlog creates a new blog post from a multipart form
// @Summary Create blog post
// @Description Creates a new blog post with an optional image attachment
// @Tags Blogs
// @Accept mpfd
// @Produce json
// @Success 201 {object} models.BlogPost "Created blog post"
// @Failure 400 {object} ErrorResponse "Bad Request - missing required field"
// @Failure 413 {object} ErrorResponse "Payload Too Large"
// @Router /api/blogs [post]
func (h blogHandler) createBlog() http.HandlerFunc {
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

		input := services.BlogInput{
			Title:   formString(r, "title"),
			Content: formString(r, "content"),
			Excerpt: formString(r, "excerpt"),
			Author:  formString(r, "author"),
		}

		blogPost, err := h.blogs.Create(r.Context(), input, upload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, blogPost)
	}
}

// updateBlog partially updates an existing blog post
// @Summary Update blog post
// @Description Merges supplied multipart fields over the existing blog post; omitted fields are preserved
// @Tags Blogs
// @Accept mpfd
// @Produce json
// @Param blogID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} models.BlogPost "Updated blog post"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/blogs/{blogID} [put]
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := parseBlogID(r)
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

		update := services.BlogUpdate{
			Title:   formValue(r, "title"),
			Content: formValue(r, "content"),
			Excerpt: formValue(r, "excerpt"),
			Author:  formValue(r, "author"),
		}

		blogPost, err := h.blogs.Update(r.Context(), blogID, update, upload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, blogPost)
	}
}

// deleteBlog deletes a blog post by ID
// @Summary Delete blog post
// @Tags Blogs
// @Produce json
// @Param blogID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/blogs/{blogID} [delete]
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := parseBlogID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogs.Delete(r.Context(), blogID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog deleted successfully",
		})
	}
}
