package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DJRivera25/blogctl/internal/api"
	"github.com/DJRivera25/blogctl/internal/editflow"
	"github.com/DJRivera25/blogctl/internal/errors"
	"github.com/DJRivera25/blogctl/internal/permission"
	"github.com/DJRivera25/blogctl/internal/tui"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and manage comments",
	Long: `Read and manage comments on a blog.

Reading comments requires a login. Editing is restricted to the
comment's author; deleting is allowed for the comment's author, the
blog's author, and admins.

Examples:
  blogctl comments list 64f1c0a2
  blogctl comments add 64f1c0a2 --message "Great read"
  blogctl comments edit 64f1c0a2 6500beef --message "Great read!"
  blogctl comments delete 64f1c0a2 6500beef`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var commentsListCmd = &cobra.Command{
	Use:   "list <blog-id>",
	Short: "List comments on a blog",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsList,
}

var commentsAddCmd = &cobra.Command{
	Use:   "add <blog-id>",
	Short: "Comment on a blog",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsAdd,
}

var commentsEditCmd = &cobra.Command{
	Use:   "edit <blog-id> <comment-id>",
	Short: "Edit one of your comments",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommentsEdit,
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete <blog-id> <comment-id>",
	Short: "Delete a comment",
	Long:  `Delete a comment. Asks for confirmation unless --yes is passed.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runCommentsDelete,
}

func init() {
	commentsAddCmd.Flags().StringP("message", "m", "", "comment text")
	commentsEditCmd.Flags().StringP("message", "m", "", "new comment text")
	commentsDeleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsAddCmd)
	commentsCmd.AddCommand(commentsEditCmd)
	commentsCmd.AddCommand(commentsDeleteCmd)
	rootCmd.AddCommand(commentsCmd)
}

func runCommentsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	comments, err := a.comments.ListForBlog(ctx, args[0])
	if err != nil {
		if errors.IsUnauthorized(err) {
			fmt.Println("Log in to read comments.")
			return nil
		}
		return err
	}

	if !textOutput() {
		f, err := a.formatter()
		if err != nil {
			return err
		}
		return f.Format(comments)
	}

	if len(comments) == 0 {
		fmt.Println("No comments yet.")
		return nil
	}
	for _, c := range comments {
		name := "unknown"
		if c.Author != nil && c.Author.FullName != "" {
			name = c.Author.FullName
		}
		fmt.Printf("%s  %s: %s\n", c.ID, name, c.Comment)
	}
	return nil
}

func runCommentsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	text, _ := cmd.Flags().GetString("message")
	if text == "" && tui.ShouldPrompt() {
		text, err = tui.PromptForText("Comment", "")
		if err != nil {
			return err
		}
	}

	comment, err := a.comments.Create(ctx, args[0], text)
	if err != nil {
		a.notifier.Error("comment failed")
		return err
	}

	a.notifier.Success("comment added")
	fmt.Printf("ID: %s\n", comment.ID)
	return nil
}

// findComment locates a comment in a blog's thread by id
func findComment(comments []api.Comment, id string) (*api.Comment, error) {
	for i := range comments {
		if comments[i].ID == id {
			return &comments[i], nil
		}
	}
	return nil, errors.NewCommentNotFoundError(id)
}

// cliCommentMachine hosts the edit flow for one comment in a CLI invocation
func cliCommentMachine(a *app, blog *api.Blog, comment *api.Comment, confirm editflow.ConfirmFunc) *editflow.Machine {
	return editflow.New(editflow.Config{
		Snapshot: func() editflow.Draft {
			return editflow.Draft{"comment": comment.Comment}
		},
		CanEdit: func() bool {
			return permission.CanEditComment(a.session.Identity(), comment)
		},
		CanDelete: func() bool {
			return permission.CanDeleteComment(a.session.Identity(), blog, comment)
		},
		Save: func(ctx context.Context, draft editflow.Draft) error {
			_, err := a.comments.Update(ctx, comment, draft["comment"])
			return err
		},
		Refetch: func(ctx context.Context) error {
			fresh, err := a.comments.ListForBlog(ctx, comment.BlogID)
			if err != nil {
				return err
			}
			if updated, err := findComment(fresh, comment.ID); err == nil {
				*comment = *updated
			}
			return nil
		},
		Delete: func(ctx context.Context) error {
			return a.comments.Delete(ctx, blog, comment)
		},
		Confirm:        confirm,
		ConfirmTitle:   "Delete comment",
		ConfirmMessage: "This cannot be undone",
	})
}

func runCommentsEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	blog, err := a.blogs.Get(ctx, args[0])
	if err != nil {
		return err
	}
	comments, err := a.comments.ListForBlog(ctx, args[0])
	if err != nil {
		return err
	}
	comment, err := findComment(comments, args[1])
	if err != nil {
		return err
	}

	machine := cliCommentMachine(a, blog, comment, tui.ConfirmDelete)
	if err := machine.BeginEdit(); err != nil {
		return err
	}

	text, _ := cmd.Flags().GetString("message")
	if text == "" && tui.ShouldPrompt() {
		text, err = tui.PromptForText("Comment", machine.Draft()["comment"])
		if err != nil {
			return err
		}
	}
	if err := machine.ChangeDraft("comment", text); err != nil {
		return err
	}

	if err := machine.Submit(ctx); err != nil {
		a.notifier.Error("save failed")
		return err
	}

	a.notifier.Success("comment updated")
	return nil
}

func runCommentsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	blog, err := a.blogs.Get(ctx, args[0])
	if err != nil {
		return err
	}
	comments, err := a.comments.ListForBlog(ctx, args[0])
	if err != nil {
		return err
	}
	comment, err := findComment(comments, args[1])
	if err != nil {
		return err
	}

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	confirm := tui.ConfirmDelete
	if skipConfirm {
		confirm = func(context.Context, string, string) (bool, error) { return true, nil }
	}

	machine := cliCommentMachine(a, blog, comment, confirm)
	if err := machine.RequestDelete(ctx); err != nil {
		a.notifier.Error("delete failed")
		return err
	}

	if machine.State() != editflow.StateRemoved {
		fmt.Println("Kept.")
		return nil
	}
	a.notifier.Success("comment deleted")
	return nil
}
