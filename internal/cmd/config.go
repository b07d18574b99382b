package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DJRivera25/blogctl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or edit blogctl configuration",
	Long: `Manage blogctl configuration stored at ~/.blogctl/config.yaml

Configuration keys:
  api_url    Base URL of the blog platform API
  log_level  Log verbosity: debug, info, warn, error
  no_color   Disable colored output

Environment variables BLOGCTL_API_URL, BLOGCTL_LOG_LEVEL, and
BLOGCTL_NO_COLOR override the file.

Examples:
  blogctl config view
  blogctl config get api_url
  blogctl config set api_url https://blog.example.com
  blogctl config path`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display current configuration",
	RunE:  runConfigView,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigView(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	fmt.Printf("api_url:   %s\n", cfg.APIURL)
	fmt.Printf("log_level: %s\n", cfg.LogLevel)
	fmt.Printf("no_color:  %v\n", cfg.NoColor)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	value, err := cfg.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := config.DefaultPath()
	if err != nil {
		return err
	}

	// Edit the file contents without environment overrides, so a set
	// value is not clobbered by what happens to be exported right now.
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}
	if err := cfg.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}

	fmt.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
