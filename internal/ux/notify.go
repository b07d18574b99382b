package ux

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Notifier is the notification sink: it receives success and error messages
// from the edit flows. Delivery is fire-and-forget and never blocks or fails
// the calling flow.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ConsoleNotifier prints notifications to a writer, one line each
type ConsoleNotifier struct {
	w       io.Writer
	noColor bool

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewConsoleNotifier creates a notifier writing to w (stderr when nil)
func NewConsoleNotifier(w io.Writer, noColor bool) *ConsoleNotifier {
	if w == nil {
		w = os.Stderr
	}
	return &ConsoleNotifier{
		w:       w,
		noColor: noColor,
		successStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		errorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
	}
}

// Success reports a completed operation
func (n *ConsoleNotifier) Success(msg string) {
	if n.noColor {
		fmt.Fprintf(n.w, "✓ %s\n", msg)
		return
	}
	fmt.Fprintln(n.w, n.successStyle.Render("✓ "+msg))
}

// Error reports a failed operation
func (n *ConsoleNotifier) Error(msg string) {
	if n.noColor {
		fmt.Fprintf(n.w, "✗ %s\n", msg)
		return
	}
	fmt.Fprintln(n.w, n.errorStyle.Render("✗ "+msg))
}

// NopNotifier drops every notification; useful in tests and quiet mode
type NopNotifier struct{}

// Success implements Notifier
func (NopNotifier) Success(string) {}

// Error implements Notifier
func (NopNotifier) Error(string) {}

var (
	_ Notifier = (*ConsoleNotifier)(nil)
	_ Notifier = NopNotifier{}
)
