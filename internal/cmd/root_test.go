package cmd

import (
	"testing"
)

// TestRootSubcommands tests that the top-level commands are registered
func TestRootSubcommands(t *testing.T) {
	subcommands := map[string]bool{
		"auth":       false,
		"blogs":      false,
		"comments":   false,
		"browse":     false,
		"config":     false,
		"version":    false,
		"completion": false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, exists := subcommands[cmd.Name()]; exists {
			subcommands[cmd.Name()] = true
		}
	}

	for name, found := range subcommands {
		if !found {
			t.Errorf("subcommand '%s' not found on root command", name)
		}
	}
}

// TestRootPersistentFlags tests that global flags are registered
func TestRootPersistentFlags(t *testing.T) {
	for _, name := range []string{"api-url", "output", "no-color", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag '%s' not found on root command", name)
		}
	}
}

// TestBlogsSubcommands tests that the blogs subcommands are registered
func TestBlogsSubcommands(t *testing.T) {
	subcommands := map[string]bool{
		"list":   false,
		"get":    false,
		"create": false,
		"update": false,
		"delete": false,
		"export": false,
	}

	for _, cmd := range blogsCmd.Commands() {
		if _, exists := subcommands[cmd.Name()]; exists {
			subcommands[cmd.Name()] = true
		}
	}

	for name, found := range subcommands {
		if !found {
			t.Errorf("subcommand '%s' not found on blogs command", name)
		}
	}
}

// TestCommentsSubcommands tests that the comments subcommands are registered
func TestCommentsSubcommands(t *testing.T) {
	subcommands := map[string]bool{
		"list":   false,
		"add":    false,
		"edit":   false,
		"delete": false,
	}

	for _, cmd := range commentsCmd.Commands() {
		if _, exists := subcommands[cmd.Name()]; exists {
			subcommands[cmd.Name()] = true
		}
	}

	for name, found := range subcommands {
		if !found {
			t.Errorf("subcommand '%s' not found on comments command", name)
		}
	}
}

// TestDeleteCommandsHaveYesFlag tests the confirmation bypass flag
func TestDeleteCommandsHaveYesFlag(t *testing.T) {
	if blogsDeleteCmd.Flags().Lookup("yes") == nil {
		t.Error("flag 'yes' not found on blogs delete command")
	}
	if commentsDeleteCmd.Flags().Lookup("yes") == nil {
		t.Error("flag 'yes' not found on comments delete command")
	}
}
