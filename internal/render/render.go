// Package render converts blog content to export formats.
package render

import (
	"bytes"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/DJRivera25/blogctl/internal/api"
	"github.com/DJRivera25/blogctl/internal/errors"
)

// Renderer turns a blog's Markdown content into sanitized HTML. The
// sanitization pass runs after Markdown rendering so raw HTML embedded in
// the source is subject to the same allowlist.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds a renderer with GFM extensions and an allowlist
// policy suitable for untrusted blog content.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			htmlrenderer.WithUnsafe(),
		),
	)

	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em", "del",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	p.AllowURLSchemeWithCustomPolicy("https", func(u *url.URL) bool {
		return true
	})
	p.AllowURLSchemeWithCustomPolicy("http", func(u *url.URL) bool {
		return true
	})

	return &Renderer{md: md, policy: p}
}

// HTML renders Markdown source to sanitized HTML.
func (r *Renderer) HTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", errors.Wrap(errors.ErrCodeRenderFailed, "failed to render markdown", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// Document renders a full standalone HTML page for a blog, including
// title, author, and timestamp metadata.
func (r *Renderer) Document(blog *api.Blog) (string, error) {
	body, err := r.HTML(blog.Content)
	if err != nil {
		return "", err
	}

	author := "unknown"
	if blog.Author != nil && blog.Author.FullName != "" {
		author = blog.Author.FullName
	}

	var b strings.Builder
	b.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(blog.Title))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(blog.Title))
	fmt.Fprintf(&b, "<p><em>by %s", html.EscapeString(author))
	if blog.CreatedAt != "" {
		fmt.Fprintf(&b, " — %s", html.EscapeString(blog.CreatedAt))
	}
	b.WriteString("</em></p>\n")
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>\n")
	return b.String(), nil
}
