package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/DJRivera25/blogctl/internal/errors"
)

// BlogFields carries the writable fields of a blog post
type BlogFields struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListBlogs retrieves all blog posts. No authentication required; ordering is
// whatever the backend returns.
func (c *Client) ListBlogs(ctx context.Context) ([]Blog, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/blogs", nil)
	if err != nil {
		return nil, err
	}

	var blogs []Blog
	if err := parseResponse(resp, &blogs, errors.ErrCodeBlogNotFound); err != nil {
		return nil, err
	}

	return blogs, nil
}

// GetBlog retrieves a single blog post by id. No authentication required.
func (c *Client) GetBlog(ctx context.Context, id string) (*Blog, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/blogs/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var blog Blog
	if err := parseResponse(resp, &blog, errors.ErrCodeBlogNotFound); err != nil {
		return nil, err
	}

	return &blog, nil
}

// CreateBlog creates a new blog post owned by the authenticated user
func (c *Client) CreateBlog(ctx context.Context, fields BlogFields) (*Blog, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/blogs", fields)
	if err != nil {
		return nil, err
	}

	var blog Blog
	if err := parseResponse(resp, &blog, errors.ErrCodeBlogNotFound); err != nil {
		return nil, err
	}

	return &blog, nil
}

// UpdateBlog replaces the writable fields of an existing blog post
func (c *Client) UpdateBlog(ctx context.Context, id string, fields BlogFields) (*Blog, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/blogs/%s", id), fields)
	if err != nil {
		return nil, err
	}

	var blog Blog
	if err := parseResponse(resp, &blog, errors.ErrCodeBlogNotFound); err != nil {
		return nil, err
	}

	return &blog, nil
}

// DeleteBlog deletes a blog post. Deletion is terminal; a repeat delete of the
// same id surfaces as NotFound.
func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/blogs/%s", id), nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil, errors.ErrCodeBlogNotFound)
}
