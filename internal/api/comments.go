package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/DJRivera25/blogctl/internal/errors"
)

type commentBody struct {
	Comment string `json:"comment"`
}

// ListComments retrieves the comments of one blog post. Reading comments
// requires a valid token; callers degrade to "comments unavailable" on
// Unauthorized rather than treating it as a hard failure.
func (c *Client) ListComments(ctx context.Context, blogID string) ([]Comment, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/comments/%s", blogID), nil)
	if err != nil {
		return nil, err
	}

	var comments []Comment
	if err := parseResponse(resp, &comments, errors.ErrCodeBlogNotFound); err != nil {
		return nil, err
	}

	return comments, nil
}

// CreateComment posts a new comment on a blog
func (c *Client) CreateComment(ctx context.Context, blogID, text string) (*Comment, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/comments/%s", blogID), commentBody{Comment: text})
	if err != nil {
		return nil, err
	}

	var comment Comment
	if err := parseResponse(resp, &comment, errors.ErrCodeBlogNotFound); err != nil {
		return nil, err
	}

	return &comment, nil
}

// UpdateComment replaces the text of an existing comment
func (c *Client) UpdateComment(ctx context.Context, commentID, text string) (*Comment, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/comments/update/%s", commentID), commentBody{Comment: text})
	if err != nil {
		return nil, err
	}

	var comment Comment
	if err := parseResponse(resp, &comment, errors.ErrCodeCommentNotFound); err != nil {
		return nil, err
	}

	return &comment, nil
}

// DeleteComment deletes a comment by id
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/comments/delete/%s", commentID), nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil, errors.ErrCodeCommentNotFound)
}
