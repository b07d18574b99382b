package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DJRivera25/blogctl/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse blogs interactively",
	Long: `Open the interactive blog browser.

Navigate the blog list, read posts and comment threads, and, when
logged in, write, edit, comment, and moderate without leaving the
terminal. Keys are shown in-app; press ? for help.

Examples:
  blogctl browse`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !tui.IsInteractive() {
		return fmt.Errorf("browse requires an interactive terminal")
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	return tui.Run(tui.Deps{
		Session:  a.session,
		Blogs:    a.blogs,
		Comments: a.comments,
	})
}
