// Package tui implements the interactive blog browser.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/DJRivera25/blogctl/internal/api"
	"github.com/DJRivera25/blogctl/internal/content"
	"github.com/DJRivera25/blogctl/internal/editflow"
	"github.com/DJRivera25/blogctl/internal/permission"
	"github.com/DJRivera25/blogctl/internal/session"
)

// ViewType represents the current view being displayed
type ViewType int

// View type constants
const (
	// ViewList shows all blogs
	ViewList ViewType = iota
	// ViewDetail shows one blog with its comments
	ViewDetail
	// ViewForm hosts an input form (edit, compose, comment, confirm)
	ViewForm
	// ViewHelp is the help screen
	ViewHelp
)

type formKind int

const (
	formNone formKind = iota
	formNewBlog
	formEditBlog
	formNewComment
	formEditComment
	formConfirmDeleteBlog
	formConfirmDeleteComment
)

// Deps carries the services the browser operates on
type Deps struct {
	Session  *session.Store
	Blogs    *content.BlogRepository
	Comments *content.CommentRepository
}

// detailState holds the currently open blog. The edit machines close
// over this struct so a refetch replaces what the view renders.
type detailState struct {
	blog           *api.Blog
	comments       []api.Comment
	commentsHidden bool
	machine        *editflow.Machine
}

// keyMap defines the keyboard shortcuts
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Comment key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new blog")),
	Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Comment: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// BrowseModel represents the blog browser state
type BrowseModel struct {
	deps Deps

	// List state
	blogs  []api.Blog
	cursor int

	// Detail state
	detail        *detailState
	commentCursor int

	// Form state
	form      *huh.Form
	formKind  formKind
	prevView  ViewType
	dTitle    *string
	dContent  *string
	dComment  *string
	dConfirm  *bool
	editTheme *huh.Theme

	// Target of a pending comment edit or delete
	targetComment *api.Comment

	// UI state
	currentView ViewType
	width       int
	height      int
	ready       bool
	loading     bool
	quitting    bool
	status      string
	lastError   string

	styles Styles
}

// NewBrowseModel creates a new blog browser
func NewBrowseModel(deps Deps) BrowseModel {
	return BrowseModel{
		deps:        deps,
		currentView: ViewList,
		styles:      DefaultStyles(),
		dTitle:      new(string),
		dContent:    new(string),
		dComment:    new(string),
		dConfirm:    new(bool),
		editTheme:   huh.ThemeCharm(),
	}
}

// Init initializes the TUI model (required by Bubble Tea)
func (m BrowseModel) Init() tea.Cmd {
	return m.loadBlogsCmd()
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.form != nil {
			form, cmd := m.form.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				m.form = f
			}
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewForm {
			return m.updateForm(msg)
		}
		return m.handleKeyPress(msg)

	case blogsLoadedMsg:
		m.loading = false
		m.blogs = msg.blogs
		if m.cursor >= len(m.blogs) {
			m.cursor = 0
		}
		return m, nil

	case blogOpenedMsg:
		m.loading = false
		m.detail = msg.detail
		m.commentCursor = 0
		m.currentView = ViewDetail
		return m, nil

	case commentsReloadedMsg:
		if m.detail != nil {
			m.detail.comments = msg.comments
			m.detail.commentsHidden = msg.hidden
			if m.commentCursor >= len(msg.comments) {
				m.commentCursor = 0
			}
		}
		return m, nil

	case opDoneMsg:
		m.loading = false
		m.status = msg.note
		m.lastError = ""
		var cmds []tea.Cmd
		if msg.reloadList {
			cmds = append(cmds, m.loadBlogsCmd())
		}
		if msg.reloadComments && m.detail != nil {
			cmds = append(cmds, m.reloadCommentsCmd())
		}
		if msg.closeDetail {
			m.detail = nil
			m.currentView = ViewList
		}
		return m, tea.Batch(cmds...)

	case errMsg:
		m.loading = false
		m.lastError = msg.err.Error()
		m.status = ""
		return m, nil
	}

	if m.currentView == ViewForm && m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// View renders the TUI (required by Bubble Tea)
func (m BrowseModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	switch m.currentView {
	case ViewList:
		return m.renderList()
	case ViewDetail:
		return m.renderDetail()
	case ViewForm:
		return m.renderForm()
	case ViewHelp:
		return m.renderHelp()
	default:
		return "Unknown view"
	}
}

func (m BrowseModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, keys.Help) {
		if m.currentView == ViewHelp {
			m.currentView = ViewList
		} else {
			m.currentView = ViewHelp
		}
		return m, nil
	}

	switch m.currentView {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewHelp:
		if key.Matches(msg, keys.Back) {
			m.currentView = ViewList
		}
	}
	return m, nil
}

func (m BrowseModel) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.blogs)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Open):
		if len(m.blogs) > 0 {
			m.loading = true
			return m, m.openBlogCmd(m.blogs[m.cursor].ID)
		}
	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, m.loadBlogsCmd()
	case key.Matches(msg, keys.New):
		if !m.deps.Session.Identity().Authenticated() {
			m.lastError = "log in to write a blog"
			return m, nil
		}
		return m.openComposeForm()
	}
	return m, nil
}

func (m BrowseModel) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.detail
	if d == nil {
		m.currentView = ViewList
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		m.detail = nil
		m.currentView = ViewList
		return m, m.loadBlogsCmd()

	case key.Matches(msg, keys.Up):
		if m.commentCursor > 0 {
			m.commentCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.commentCursor < len(d.comments)-1 {
			m.commentCursor++
		}

	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, m.openBlogCmd(d.blog.ID)

	case key.Matches(msg, keys.Edit):
		if err := d.machine.BeginEdit(); err != nil {
			m.lastError = err.Error()
			return m, nil
		}
		return m.openEditBlogForm(d.machine.Draft())

	case key.Matches(msg, keys.Delete):
		if !d.machine.CanDelete() {
			m.lastError = "you cannot delete this blog"
			return m, nil
		}
		return m.openConfirmForm(formConfirmDeleteBlog, "Delete this blog?")

	case key.Matches(msg, keys.Comment):
		if !m.deps.Session.Identity().Authenticated() {
			m.lastError = "log in to comment"
			return m, nil
		}
		return m.openCommentForm()

	case msg.String() == "E":
		return m.beginCommentEdit()

	case msg.String() == "D":
		return m.beginCommentDelete()
	}
	return m, nil
}

// beginCommentEdit targets the comment under the cursor
func (m BrowseModel) beginCommentEdit() (tea.Model, tea.Cmd) {
	d := m.detail
	if len(d.comments) == 0 {
		return m, nil
	}
	c := &d.comments[m.commentCursor]
	if !permission.CanEditComment(m.deps.Session.Identity(), c) {
		m.lastError = "you cannot edit this comment"
		return m, nil
	}
	m.targetComment = c
	*m.dComment = c.Comment
	m.formKind = formEditComment
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewText().Title("Edit comment").Value(m.dComment),
	)).WithTheme(m.editTheme)
	m.prevView = m.currentView
	m.currentView = ViewForm
	return m, m.form.Init()
}

// beginCommentDelete targets the comment under the cursor
func (m BrowseModel) beginCommentDelete() (tea.Model, tea.Cmd) {
	d := m.detail
	if len(d.comments) == 0 {
		return m, nil
	}
	c := &d.comments[m.commentCursor]
	if !permission.CanDeleteComment(m.deps.Session.Identity(), d.blog, c) {
		m.lastError = "you cannot delete this comment"
		return m, nil
	}
	m.targetComment = c
	return m.openConfirmForm(formConfirmDeleteComment, "Delete this comment?")
}

func (m BrowseModel) openComposeForm() (tea.Model, tea.Cmd) {
	*m.dTitle = ""
	*m.dContent = ""
	m.formKind = formNewBlog
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(m.dTitle),
		huh.NewText().Title("Content").Value(m.dContent),
	)).WithTheme(m.editTheme)
	m.prevView = m.currentView
	m.currentView = ViewForm
	return m, m.form.Init()
}

func (m BrowseModel) openEditBlogForm(draft editflow.Draft) (tea.Model, tea.Cmd) {
	*m.dTitle = draft["title"]
	*m.dContent = draft["content"]
	m.formKind = formEditBlog
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(m.dTitle),
		huh.NewText().Title("Content").Value(m.dContent),
	)).WithTheme(m.editTheme)
	m.prevView = m.currentView
	m.currentView = ViewForm
	return m, m.form.Init()
}

func (m BrowseModel) openCommentForm() (tea.Model, tea.Cmd) {
	*m.dComment = ""
	m.formKind = formNewComment
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewText().Title("Add a comment").Value(m.dComment),
	)).WithTheme(m.editTheme)
	m.prevView = m.currentView
	m.currentView = ViewForm
	return m, m.form.Init()
}

func (m BrowseModel) openConfirmForm(kind formKind, title string) (tea.Model, tea.Cmd) {
	*m.dConfirm = false
	m.formKind = kind
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Affirmative("Delete").Negative("Keep").Value(m.dConfirm),
	)).WithTheme(m.editTheme)
	m.prevView = m.currentView
	m.currentView = ViewForm
	return m, m.form.Init()
}

func (m BrowseModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.completeForm()
	case huh.StateAborted:
		return m.abortForm()
	}
	return m, cmd
}

func (m BrowseModel) abortForm() (tea.Model, tea.Cmd) {
	if m.formKind == formEditBlog && m.detail != nil {
		// Discard the draft without touching the network
		if err := m.detail.machine.Cancel(); err != nil {
			m.lastError = err.Error()
		}
	}
	m.form = nil
	m.formKind = formNone
	m.targetComment = nil
	m.currentView = m.prevView
	return m, nil
}

func (m BrowseModel) completeForm() (tea.Model, tea.Cmd) {
	kind := m.formKind
	m.form = nil
	m.formKind = formNone
	m.currentView = m.prevView
	m.loading = true

	switch kind {
	case formNewBlog:
		return m, m.createBlogCmd(*m.dTitle, *m.dContent)

	case formEditBlog:
		d := m.detail
		if err := d.machine.ChangeDraft("title", *m.dTitle); err != nil {
			m.loading = false
			m.lastError = err.Error()
			return m, nil
		}
		if err := d.machine.ChangeDraft("content", *m.dContent); err != nil {
			m.loading = false
			m.lastError = err.Error()
			return m, nil
		}
		return m, m.submitBlogCmd()

	case formNewComment:
		return m, m.addCommentCmd(*m.dComment)

	case formEditComment:
		c := m.targetComment
		m.targetComment = nil
		return m, m.updateCommentCmd(c, *m.dComment)

	case formConfirmDeleteBlog:
		return m, m.deleteBlogCmd(*m.dConfirm)

	case formConfirmDeleteComment:
		c := m.targetComment
		m.targetComment = nil
		return m, m.deleteCommentCmd(c, *m.dConfirm)
	}

	m.loading = false
	return m, nil
}

// newBlogMachine wires the edit flow for the open blog. The confirm
// gate replays the answer the confirm form already collected.
func newBlogMachine(deps Deps, d *detailState, confirmed *bool) *editflow.Machine {
	return editflow.New(editflow.Config{
		Snapshot: func() editflow.Draft {
			return editflow.Draft{"title": d.blog.Title, "content": d.blog.Content}
		},
		CanEdit: func() bool {
			return permission.CanEditBlog(deps.Session.Identity(), d.blog)
		},
		CanDelete: func() bool {
			return permission.CanDeleteBlog(deps.Session.Identity(), d.blog)
		},
		Save: func(ctx context.Context, draft editflow.Draft) error {
			_, err := deps.Blogs.Update(ctx, d.blog, api.BlogFields{
				Title:   draft["title"],
				Content: draft["content"],
			})
			return err
		},
		Refetch: func(ctx context.Context) error {
			fresh, err := deps.Blogs.Get(ctx, d.blog.ID)
			if err != nil {
				return err
			}
			*d.blog = *fresh
			return nil
		},
		Delete: func(ctx context.Context) error {
			return deps.Blogs.Delete(ctx, d.blog)
		},
		Confirm: func(context.Context, string, string) (bool, error) {
			return *confirmed, nil
		},
		ConfirmTitle:   "Delete blog",
		ConfirmMessage: "This cannot be undone",
	})
}

// Commands

func (m BrowseModel) loadBlogsCmd() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		blogs, err := deps.Blogs.List(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return blogsLoadedMsg{blogs: blogs}
	}
}

func (m BrowseModel) openBlogCmd(id string) tea.Cmd {
	deps := m.deps
	confirmed := m.dConfirm
	return func() tea.Msg {
		ctx := context.Background()
		blog, err := deps.Blogs.Get(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		d := &detailState{blog: blog}
		comments, err := deps.Comments.ListForBlog(ctx, id)
		if err != nil {
			// Anonymous sessions cannot read comments; the blog
			// itself still renders.
			d.commentsHidden = true
		} else {
			d.comments = comments
		}
		d.machine = newBlogMachine(deps, d, confirmed)
		return blogOpenedMsg{detail: d}
	}
}

func (m BrowseModel) reloadCommentsCmd() tea.Cmd {
	deps := m.deps
	id := m.detail.blog.ID
	return func() tea.Msg {
		comments, err := deps.Comments.ListForBlog(context.Background(), id)
		if err != nil {
			return commentsReloadedMsg{hidden: true}
		}
		return commentsReloadedMsg{comments: comments}
	}
}

func (m BrowseModel) createBlogCmd(title, content string) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		_, err := deps.Blogs.Create(context.Background(), api.BlogFields{Title: title, Content: content})
		if err != nil {
			return errMsg{err}
		}
		return opDoneMsg{note: "blog published", reloadList: true}
	}
}

func (m BrowseModel) submitBlogCmd() tea.Cmd {
	machine := m.detail.machine
	return func() tea.Msg {
		if err := machine.Submit(context.Background()); err != nil {
			return errMsg{err}
		}
		return opDoneMsg{note: "blog saved"}
	}
}

func (m BrowseModel) deleteBlogCmd(confirmed bool) tea.Cmd {
	machine := m.detail.machine
	answer := m.dConfirm
	return func() tea.Msg {
		*answer = confirmed
		if err := machine.RequestDelete(context.Background()); err != nil {
			return errMsg{err}
		}
		if machine.State() != editflow.StateRemoved {
			return opDoneMsg{note: "kept"}
		}
		return opDoneMsg{note: "blog deleted", reloadList: true, closeDetail: true}
	}
}

func (m BrowseModel) addCommentCmd(text string) tea.Cmd {
	deps := m.deps
	id := m.detail.blog.ID
	return func() tea.Msg {
		_, err := deps.Comments.Create(context.Background(), id, text)
		if err != nil {
			return errMsg{err}
		}
		return opDoneMsg{note: "comment added", reloadComments: true}
	}
}

func (m BrowseModel) updateCommentCmd(c *api.Comment, text string) tea.Cmd {
	machine := m.newCommentMachine(c)
	return func() tea.Msg {
		if err := machine.BeginEdit(); err != nil {
			return errMsg{err}
		}
		if err := machine.ChangeDraft("comment", text); err != nil {
			return errMsg{err}
		}
		if err := machine.Submit(context.Background()); err != nil {
			return errMsg{err}
		}
		return opDoneMsg{note: "comment updated", reloadComments: true}
	}
}

func (m BrowseModel) deleteCommentCmd(c *api.Comment, confirmed bool) tea.Cmd {
	machine := m.newCommentMachine(c)
	answer := m.dConfirm
	return func() tea.Msg {
		*answer = confirmed
		if err := machine.RequestDelete(context.Background()); err != nil {
			return errMsg{err}
		}
		if machine.State() != editflow.StateRemoved {
			return opDoneMsg{note: "kept"}
		}
		return opDoneMsg{note: "comment deleted", reloadComments: true}
	}
}

// newCommentMachine wires the edit flow for one comment
func (m BrowseModel) newCommentMachine(c *api.Comment) *editflow.Machine {
	deps := m.deps
	d := m.detail
	confirmed := m.dConfirm
	return editflow.New(editflow.Config{
		Snapshot: func() editflow.Draft {
			return editflow.Draft{"comment": c.Comment}
		},
		CanEdit: func() bool {
			return permission.CanEditComment(deps.Session.Identity(), c)
		},
		CanDelete: func() bool {
			return permission.CanDeleteComment(deps.Session.Identity(), d.blog, c)
		},
		Save: func(ctx context.Context, draft editflow.Draft) error {
			_, err := deps.Comments.Update(ctx, c, draft["comment"])
			return err
		},
		Refetch: func(ctx context.Context) error {
			fresh, err := deps.Comments.ListForBlog(ctx, d.blog.ID)
			if err != nil {
				return err
			}
			d.comments = fresh
			return nil
		},
		Delete: func(ctx context.Context) error {
			return deps.Comments.Delete(ctx, d.blog, c)
		},
		Confirm: func(context.Context, string, string) (bool, error) {
			return *confirmed, nil
		},
		ConfirmTitle:   "Delete comment",
		ConfirmMessage: "This cannot be undone",
	})
}

// Run starts the browser and blocks until it exits
func Run(deps Deps) error {
	p := tea.NewProgram(NewBrowseModel(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}

// Custom messages for browser events

type blogsLoadedMsg struct {
	blogs []api.Blog
}

type blogOpenedMsg struct {
	detail *detailState
}

type commentsReloadedMsg struct {
	comments []api.Comment
	hidden   bool
}

type opDoneMsg struct {
	note           string
	reloadList     bool
	reloadComments bool
	closeDetail    bool
}

type errMsg struct {
	err error
}
