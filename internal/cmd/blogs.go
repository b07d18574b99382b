package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DJRivera25/blogctl/internal/api"
	"github.com/DJRivera25/blogctl/internal/editflow"
	"github.com/DJRivera25/blogctl/internal/permission"
	"github.com/DJRivera25/blogctl/internal/render"
	"github.com/DJRivera25/blogctl/internal/tui"
)

var blogsCmd = &cobra.Command{
	Use:   "blogs",
	Short: "Read and manage blogs",
	Long: `Read and manage blogs on the platform.

Reading is open to everyone. Creating requires a login; editing is
restricted to the author, and deleting to the author or an admin.

Examples:
  blogctl blogs list
  blogctl blogs get 64f1c0a2
  blogctl blogs create --title "Hello" --content "First post"
  blogctl blogs update 64f1c0a2 --title "Hello again"
  blogctl blogs delete 64f1c0a2
  blogctl blogs export 64f1c0a2 --file post.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var blogsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all blogs",
	RunE:  runBlogsList,
}

var blogsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one blog",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlogsGet,
}

var blogsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new blog",
	Long: `Publish a new blog. Title and content are prompted
interactively when not passed as flags.`,
	RunE: runBlogsCreate,
}

var blogsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit one of your blogs",
	Long: `Edit a blog you wrote. Fields not passed as flags keep their
current value. After a successful save the blog is re-read from the
platform and printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runBlogsUpdate,
}

var blogsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a blog",
	Long: `Delete a blog you wrote, or any blog if you are an admin.
Asks for confirmation unless --yes is passed.`,
	Args: cobra.ExactArgs(1),
	RunE: runBlogsDelete,
}

var blogsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a blog as sanitized HTML",
	Long: `Render a blog's Markdown content to a standalone HTML page.
Embedded scripts and event handlers are stripped. Writes to stdout
unless --file is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runBlogsExport,
}

func init() {
	blogsCreateCmd.Flags().String("title", "", "blog title")
	blogsCreateCmd.Flags().String("content", "", "blog content (markdown)")

	blogsUpdateCmd.Flags().String("title", "", "new title")
	blogsUpdateCmd.Flags().String("content", "", "new content (markdown)")

	blogsDeleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	blogsExportCmd.Flags().StringP("file", "f", "", "write the HTML to this file")

	blogsCmd.AddCommand(blogsListCmd)
	blogsCmd.AddCommand(blogsGetCmd)
	blogsCmd.AddCommand(blogsCreateCmd)
	blogsCmd.AddCommand(blogsUpdateCmd)
	blogsCmd.AddCommand(blogsDeleteCmd)
	blogsCmd.AddCommand(blogsExportCmd)
	rootCmd.AddCommand(blogsCmd)
}

func runBlogsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	blogs, err := a.blogs.List(ctx)
	if err != nil {
		return err
	}

	if !textOutput() {
		f, err := a.formatter()
		if err != nil {
			return err
		}
		return f.Format(blogs)
	}

	if len(blogs) == 0 {
		fmt.Println("No blogs yet.")
		return nil
	}
	for _, b := range blogs {
		author := "unknown"
		if b.Author != nil && b.Author.FullName != "" {
			author = b.Author.FullName
		}
		fmt.Printf("%s  %s  (by %s)\n", b.ID, b.Title, author)
	}
	return nil
}

func runBlogsGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	blog, err := a.blogs.Get(ctx, args[0])
	if err != nil {
		return err
	}

	if !textOutput() {
		f, err := a.formatter()
		if err != nil {
			return err
		}
		return f.Format(blog)
	}

	printBlog(blog)
	return nil
}

func printBlog(blog *api.Blog) {
	fmt.Println(blog.Title)
	author := "unknown"
	if blog.Author != nil && blog.Author.FullName != "" {
		author = blog.Author.FullName
	}
	meta := "by " + author
	if blog.CreatedAt != "" {
		meta += " · " + blog.CreatedAt
	}
	if blog.UpdatedAt != "" && blog.UpdatedAt != blog.CreatedAt {
		meta += " · updated " + blog.UpdatedAt
	}
	fmt.Println(meta)
	fmt.Println()
	fmt.Println(blog.Content)
}

func runBlogsCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	content, _ := cmd.Flags().GetString("content")

	if title == "" && tui.ShouldPrompt() {
		title, err = tui.PromptForString(tui.Prompt{Message: "Title", Required: true})
		if err != nil {
			return err
		}
	}
	if content == "" && tui.ShouldPrompt() {
		content, err = tui.PromptForText("Content (markdown)", "")
		if err != nil {
			return err
		}
	}

	blog, err := a.blogs.Create(ctx, api.BlogFields{Title: title, Content: content})
	if err != nil {
		a.notifier.Error("publish failed")
		return err
	}

	a.notifier.Success("blog published")
	fmt.Printf("ID: %s\n", blog.ID)
	return nil
}

// cliBlogMachine hosts the edit flow for one blog in a CLI invocation
func cliBlogMachine(a *app, blog *api.Blog, confirm editflow.ConfirmFunc) *editflow.Machine {
	return editflow.New(editflow.Config{
		Snapshot: func() editflow.Draft {
			return editflow.Draft{"title": blog.Title, "content": blog.Content}
		},
		CanEdit: func() bool {
			return permission.CanEditBlog(a.session.Identity(), blog)
		},
		CanDelete: func() bool {
			return permission.CanDeleteBlog(a.session.Identity(), blog)
		},
		Save: func(ctx context.Context, draft editflow.Draft) error {
			_, err := a.blogs.Update(ctx, blog, api.BlogFields{
				Title:   draft["title"],
				Content: draft["content"],
			})
			return err
		},
		Refetch: func(ctx context.Context) error {
			fresh, err := a.blogs.Get(ctx, blog.ID)
			if err != nil {
				return err
			}
			*blog = *fresh
			return nil
		},
		Delete: func(ctx context.Context) error {
			return a.blogs.Delete(ctx, blog)
		},
		Confirm:        confirm,
		ConfirmTitle:   "Delete blog",
		ConfirmMessage: "This cannot be undone",
	})
}

func runBlogsUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	blog, err := a.blogs.Get(ctx, args[0])
	if err != nil {
		return err
	}

	machine := cliBlogMachine(a, blog, tui.ConfirmDelete)
	if err := machine.BeginEdit(); err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	content, _ := cmd.Flags().GetString("content")

	if title == "" && content == "" && tui.ShouldPrompt() {
		draft := machine.Draft()
		title, err = tui.PromptForString(tui.Prompt{Message: "Title", Default: draft["title"], Required: true})
		if err != nil {
			return err
		}
		content, err = tui.PromptForText("Content (markdown)", draft["content"])
		if err != nil {
			return err
		}
	}

	if title != "" {
		if err := machine.ChangeDraft("title", title); err != nil {
			return err
		}
	}
	if content != "" {
		if err := machine.ChangeDraft("content", content); err != nil {
			return err
		}
	}

	if err := machine.Submit(ctx); err != nil {
		a.notifier.Error("save failed")
		return err
	}

	a.notifier.Success("blog saved")
	printBlog(blog)
	return nil
}

func runBlogsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	blog, err := a.blogs.Get(ctx, args[0])
	if err != nil {
		return err
	}

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	confirm := tui.ConfirmDelete
	if skipConfirm {
		confirm = func(context.Context, string, string) (bool, error) { return true, nil }
	}

	machine := cliBlogMachine(a, blog, confirm)
	if err := machine.RequestDelete(ctx); err != nil {
		a.notifier.Error("delete failed")
		return err
	}

	if machine.State() != editflow.StateRemoved {
		fmt.Println("Kept.")
		return nil
	}
	a.notifier.Success("blog deleted")
	return nil
}

func runBlogsExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	blog, err := a.blogs.Get(ctx, args[0])
	if err != nil {
		return err
	}

	doc, err := render.NewRenderer().Document(blog)
	if err != nil {
		return err
	}

	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		fmt.Print(doc)
		return nil
	}
	if err := os.WriteFile(file, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	a.notifier.Success("exported to " + file)
	return nil
}
