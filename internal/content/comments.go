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

// CommentRepository performs CRUD against the comment sub-resource of a blog
type CommentRepository struct {
	client  *api.Client
	session *session.Store
	logger  *log.Logger
}

// NewCommentRepository creates a comment repository bound to a session
func NewCommentRepository(client *api.Client, sess *session.Store, logger *log.Logger) *CommentRepository {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &CommentRepository{client: client, session: sess, logger: logger}
}

func validateCommentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New(errors.ErrCodeEmptyComment, "comment cannot be empty")
	}
	return text, nil
}

// ListForBlog returns the comments on one blog. Reading comments requires a
// token; on Unauthorized the caller shows "comments unavailable" instead of a
// hard error.
func (r *CommentRepository) ListForBlog(ctx context.Context, blogID string) ([]api.Comment, error) {
	return r.client.ListComments(ctx, blogID)
}

// Create posts a new comment on a blog as the current user
func (r *CommentRepository) Create(ctx context.Context, blogID, text string) (*api.Comment, error) {
	text, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}

	if !r.session.Identity().Authenticated() {
		return nil, errors.NewNoTokenError("posting a comment")
	}

	return r.client.CreateComment(ctx, blogID, text)
}

// Update replaces a comment's text. Only the comment's own author may.
func (r *CommentRepository) Update(ctx context.Context, comment *api.Comment, text string) (*api.Comment, error) {
	text, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}

	if !permission.CanEditComment(r.session.Identity(), comment) {
		return nil, errors.NewForbiddenError("edit this comment")
	}

	return r.client.UpdateComment(ctx, comment.ID, text)
}

// Delete removes a comment. Allowed for the comment's author, the enclosing
// blog's author, or an admin. NotFound means already gone and is not an error.
func (r *CommentRepository) Delete(ctx context.Context, blog *api.Blog, comment *api.Comment) error {
	if !permission.CanDeleteComment(r.session.Identity(), blog, comment) {
		return errors.NewForbiddenError("delete this comment")
	}

	err := r.client.DeleteComment(ctx, comment.ID)
	if errors.IsNotFound(err) {
		r.logger.Debug("comment already deleted", "comment_id", comment.ID)
		return nil
	}
	return err
}
