// Package content implements the blog and comment repositories. They sit
// between the command/TUI layer and the API client: input validation and
// permission checks run here, before any network call is issued.
package content

import (
	"context"
	"strings"

	"github.com/DJRivera25/blogctl/internal/api"
	"github.com/DJRivera25/blogctl/internal/errors"
	"github.com/DJRivera25/blogctl/internal/log"
	"github.com/DJRivera25/blogctl/internal/permission"
	"github.com/DJRivera25/blogctl/internal/session"
)

// BlogRepository performs CRUD against the blog collection
type BlogRepository struct {
	client  *api.Client
	session *session.Store
	logger  *log.Logger
}

// NewBlogRepository creates a blog repository bound to a session
func NewBlogRepository(client *api.Client, sess *session.Store, logger *log.Logger) *BlogRepository {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &BlogRepository{client: client, session: sess, logger: logger}
}

// validateBlogFields trims both fields and rejects empties before any
// network traffic.
func validateBlogFields(fields api.BlogFields) (api.BlogFields, error) {
	fields.Title = strings.TrimSpace(fields.Title)
	fields.Content = strings.TrimSpace(fields.Content)

	if fields.Title == "" {
		return fields, errors.New(errors.ErrCodeEmptyTitle, "title cannot be empty")
	}
	if fields.Content == "" {
		return fields, errors.New(errors.ErrCodeEmptyContent, "content cannot be empty")
	}
	return fields, nil
}

// List returns all blog posts. Ordering is the backend's concern.
func (r *BlogRepository) List(ctx context.Context) ([]api.Blog, error) {
	return r.client.ListBlogs(ctx)
}

// Get returns one blog post by id
func (r *BlogRepository) Get(ctx context.Context, id string) (*api.Blog, error) {
	return r.client.GetBlog(ctx, id)
}

// Create publishes a new blog post as the current user
func (r *BlogRepository) Create(ctx context.Context, fields api.BlogFields) (*api.Blog, error) {
	fields, err := validateBlogFields(fields)
	if err != nil {
		return nil, err
	}

	if !permission.CanCreateBlog(r.session.Identity()) {
		return nil, errors.NewNoTokenError("creating a blog")
	}

	return r.client.CreateBlog(ctx, fields)
}

// Update replaces a blog's writable fields. The caller supplies the blog as
// currently displayed so ownership can be checked without another read.
func (r *BlogRepository) Update(ctx context.Context, blog *api.Blog, fields api.BlogFields) (*api.Blog, error) {
	fields, err := validateBlogFields(fields)
	if err != nil {
		return nil, err
	}

	if !permission.CanEditBlog(r.session.Identity(), blog) {
		return nil, errors.NewForbiddenError("edit this blog")
	}

	return r.client.UpdateBlog(ctx, blog.ID, fields)
}

// Delete removes a blog post. A NotFound from the server means the post is
// already gone, which is the outcome the caller wanted; it is not an error.
func (r *BlogRepository) Delete(ctx context.Context, blog *api.Blog) error {
	if !permission.CanDeleteBlog(r.session.Identity(), blog) {
		return errors.NewForbiddenError("delete this blog")
	}

	err := r.client.DeleteBlog(ctx, blog.ID)
	if errors.IsNotFound(err) {
		r.logger.Debug("blog already deleted", "blog_id", blog.ID)
		return nil
	}
	return err
}
