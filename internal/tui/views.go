package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

const contentPreviewLen = 120

// truncate shortens s to at most limit runes, appending an ellipsis when it
// cuts. Counting runes keeps multibyte text intact.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "…"
}

// renderList renders the blog list view
func (m BrowseModel) renderList() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("📝 blogctl"))
	b.WriteString("\n\n")
	b.WriteString(m.renderSessionLine())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.styles.Muted.Render("Loading blogs..."))
		b.WriteString("\n")
	} else if len(m.blogs) == 0 {
		b.WriteString(m.styles.Muted.Render("No blogs yet."))
		b.WriteString("\n")
	}

	for i, blog := range m.blogs {
		author := "unknown"
		if blog.Author != nil && blog.Author.FullName != "" {
			author = blog.Author.FullName
		}
		line := fmt.Sprintf("%s  %s", blog.Title, m.styles.Muted.Render("by "+author))
		if i == m.cursor {
			b.WriteString(m.styles.Highlighted.Render("▸ " + blog.Title))
			b.WriteString("  " + m.styles.Muted.Render("by "+author))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusLine())
	b.WriteString(m.renderHelpLine(
		keys.Up, keys.Down, keys.Open, keys.New, keys.Refresh, keys.Help, keys.Quit,
	))
	return b.String()
}

// renderDetail renders one blog with its comments
func (m BrowseModel) renderDetail() string {
	d := m.detail
	if d == nil {
		return "No blog selected"
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render(d.blog.Title))
	b.WriteString("\n")

	author := "unknown"
	if d.blog.Author != nil && d.blog.Author.FullName != "" {
		author = d.blog.Author.FullName
	}
	meta := "by " + author
	if d.blog.CreatedAt != "" {
		meta += " · " + d.blog.CreatedAt
	}
	if d.blog.UpdatedAt != "" && d.blog.UpdatedAt != d.blog.CreatedAt {
		meta += " · updated " + d.blog.UpdatedAt
	}
	b.WriteString(m.styles.Subtitle.Render(meta))
	b.WriteString("\n\n")

	b.WriteString(d.blog.Content)
	b.WriteString("\n\n")

	b.WriteString(m.styles.Status.Render("Comments"))
	b.WriteString("\n")

	switch {
	case d.commentsHidden:
		b.WriteString(m.styles.Muted.Render("Log in to read comments."))
		b.WriteString("\n")
	case len(d.comments) == 0:
		b.WriteString(m.styles.Muted.Render("No comments yet."))
		b.WriteString("\n")
	default:
		for i, c := range d.comments {
			name := "unknown"
			if c.Author != nil && c.Author.FullName != "" {
				name = c.Author.FullName
			}
			text := truncate(c.Comment, contentPreviewLen)
			line := fmt.Sprintf("%s: %s", m.styles.Key.Render(name), text)
			if i == m.commentCursor {
				b.WriteString("▸ " + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(m.renderStatusLine())
	b.WriteString(m.renderHelpLine(
		keys.Back, keys.Edit, keys.Delete, keys.Comment, keys.Refresh, keys.Quit,
	))
	return b.String()
}

// renderForm renders the active input form
func (m BrowseModel) renderForm() string {
	if m.form == nil {
		return ""
	}
	return m.form.View()
}

// renderHelp renders the full help screen
func (m BrowseModel) renderHelp() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	rows := []struct{ key, desc string }{
		{"↑/k ↓/j", "move cursor"},
		{"enter", "open blog"},
		{"esc", "back to list"},
		{"n", "write a new blog"},
		{"e", "edit the open blog (author only)"},
		{"d", "delete the open blog (author or admin)"},
		{"c", "add a comment"},
		{"E", "edit the selected comment (author only)"},
		{"D", "delete the selected comment"},
		{"r", "refresh"},
		{"?", "toggle help"},
		{"q", "quit"},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			m.styles.Key.Render(fmt.Sprintf("%-8s", row.key)),
			m.styles.KeyDesc.Render(row.desc)))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("Press ? or esc to return"))
	return b.String()
}

// renderSessionLine shows who is signed in
func (m BrowseModel) renderSessionLine() string {
	ident := m.deps.Session.Identity()
	if !ident.Authenticated() {
		return m.styles.Muted.Render("browsing anonymously · log in with: blogctl auth login")
	}
	who := ident.Email
	if who == "" {
		who = ident.ID
	}
	if ident.IsAdmin {
		return m.styles.Subtitle.Render("signed in as " + who + " (admin)")
	}
	return m.styles.Subtitle.Render("signed in as " + who)
}

// renderStatusLine shows the last operation result or error
func (m BrowseModel) renderStatusLine() string {
	var b strings.Builder
	b.WriteString("\n")
	if m.lastError != "" {
		b.WriteString(m.styles.Error.Render("✗ " + m.lastError))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Success.Render("✓ " + m.status))
		b.WriteString("\n")
	}
	return b.String()
}

// renderHelpLine renders a one-line key hint bar
func (m BrowseModel) renderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts,
			m.styles.Key.Render(h.Key)+" "+m.styles.KeyDesc.Render(h.Desc))
	}
	return m.styles.Help.Render(strings.Join(parts, "  "))
}
