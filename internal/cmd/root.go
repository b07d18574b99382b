// Package cmd implements the blogctl command-line interface.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/DJRivera25/blogctl/internal/api"
	"github.com/DJRivera25/blogctl/internal/config"
	"github.com/DJRivera25/blogctl/internal/content"
	"github.com/DJRivera25/blogctl/internal/log"
	"github.com/DJRivera25/blogctl/internal/session"
	"github.com/DJRivera25/blogctl/internal/ux"
	"github.com/DJRivera25/blogctl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Read, write, and moderate blogs from the terminal",
	Long: `blogctl is a command-line client for the blog platform.
It lets you browse published blogs, read and join comment threads,
and manage your own posts, with an interactive TUI for everything
at once.

Anyone can read blogs without an account. Writing, commenting, and
moderation require logging in with 'blogctl auth login'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagAPIURL  string
	flagOutput  string
	flagNoColor bool
	flagVerbose bool
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "override the platform API URL")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// app bundles the wired services behind every command
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	client   *api.Client
	session  *session.Store
	blogs    *content.BlogRepository
	comments *content.CommentRepository
	notifier ux.Notifier
}

// newApp wires configuration, logging, the API client, and the session.
// A persisted token that no longer resolves is discarded and the app
// continues anonymously.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if flagNoColor {
		cfg.NoColor = true
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	if flagVerbose {
		logCfg.Level = log.LevelDebug
	}
	logCfg.Format = log.FormatText
	logCfg.Output = log.OutputStderr()
	logCfg.ServiceVersion = version.GetInfo().Short()
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	storage := session.NewFileStorage(session.DefaultDir())

	// The client reads its token from the session store; the store
	// resolves identities through the client.
	var store *session.Store
	client := api.NewClient(cfg.APIURL,
		api.WithTokenSource(func() string { return store.Token() }),
		api.WithLogger(logger),
	)
	store = session.NewStore(client, storage, logger)

	if err := store.Init(ctx); err != nil {
		logger.Warn("stored session no longer valid, continuing anonymously", "error", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		session:  store,
		blogs:    content.NewBlogRepository(client, store, logger),
		comments: content.NewCommentRepository(client, store, logger),
		notifier: ux.NewConsoleNotifier(nil, cfg.NoColor),
	}, nil
}

// formatter builds the output formatter for the --output flag
func (a *app) formatter() (ux.Formatter, error) {
	return ux.NewFormatter(flagOutput, &ux.FormatterOptions{NoColor: a.cfg.NoColor})
}

// textOutput reports whether the default human-readable format is active
func textOutput() bool {
	return flagOutput == "" || flagOutput == "text"
}
