package cmd

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DJRivera25/blogctl/internal/api"
	"github.com/DJRivera25/blogctl/internal/errors"
	"github.com/DJRivera25/blogctl/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication credentials",
	Long: `Manage authentication credentials for the blog platform.

Credentials are stored in ~/.blogctl/auth.json. Logging in saves an
access token; all later commands send it automatically.

Subcommands:
  register  Register a new user account
  login     Login with email and password
  logout    Logout and remove credentials
  status    Show current authentication status

Examples:
  blogctl auth register --full-name "Ada Lovelace" --email ada@example.com --mobile 09171234567
  blogctl auth login --email ada@example.com
  blogctl auth status
  blogctl auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the platform",
	Long: `Login to the blog platform with your email and password.

The password is prompted interactively when not passed as a flag.

Examples:
  blogctl auth login --email ada@example.com`,
	RunE: runAuthLogin,
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user account",
	Long: `Register a new user account with the blog platform.

Registration requires a full name, a valid email address, an
11-digit mobile number starting with 09, and a password of at
least 8 characters.

Examples:
  blogctl auth register --full-name "Ada Lovelace" --email ada@example.com --mobile 09171234567`,
	RunE: runAuthRegister,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and remove credentials",
	Long: `Logout and remove the stored access token.

Examples:
  blogctl auth logout`,
	RunE: runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Show the current authentication status and user information.

Examples:
  blogctl auth status`,
	RunE: runAuthStatus,
}

var mobilePattern = regexp.MustCompile(`^09\d{9}$`)

func init() {
	authLoginCmd.Flags().String("email", "", "account email address")
	authLoginCmd.Flags().String("password", "", "account password (prompted when omitted)")

	authRegisterCmd.Flags().String("full-name", "", "full name")
	authRegisterCmd.Flags().String("email", "", "email address")
	authRegisterCmd.Flags().String("mobile", "", "mobile number (09xxxxxxxxx)")
	authRegisterCmd.Flags().String("password", "", "password (prompted when omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if email == "" {
		if !tui.ShouldPrompt() {
			return errors.New(errors.ErrCodeBadCredentials, "--email is required")
		}
		email, err = tui.PromptForString(tui.Prompt{Message: "Email", Required: true})
		if err != nil {
			return err
		}
	}
	if password == "" {
		if !tui.ShouldPrompt() {
			return errors.New(errors.ErrCodeBadCredentials, "--password is required")
		}
		password, err = tui.PromptForPassword("Password")
		if err != nil {
			return err
		}
	}

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.notifier.Error("login failed")
		return err
	}

	// Persists the token and resolves the identity; a token that does
	// not resolve is discarded again.
	if err := a.session.SetToken(ctx, token); err != nil {
		a.notifier.Error("login failed")
		return err
	}

	ident := a.session.Identity()
	if ident.IsAdmin {
		a.notifier.Success(fmt.Sprintf("logged in as %s (admin)", email))
	} else {
		a.notifier.Success("logged in as " + email)
	}
	return nil
}

func runAuthRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	fullName, _ := cmd.Flags().GetString("full-name")
	email, _ := cmd.Flags().GetString("email")
	mobile, _ := cmd.Flags().GetString("mobile")
	password, _ := cmd.Flags().GetString("password")

	if password == "" && tui.ShouldPrompt() {
		password, err = tui.PromptForPassword("Password (min 8 characters)")
		if err != nil {
			return err
		}
	}

	if err := validateRegistration(fullName, email, mobile, password); err != nil {
		return err
	}

	req := api.RegisterRequest{
		FullName: strings.TrimSpace(fullName),
		Email:    email,
		MobileNo: mobile,
		Password: password,
	}
	if err := a.client.Register(ctx, req); err != nil {
		a.notifier.Error("registration failed")
		return err
	}

	a.notifier.Success("account created")
	fmt.Println("Use 'blogctl auth login' to sign in.")
	return nil
}

// validateRegistration enforces the platform's signup rules locally so
// bad requests never reach the network.
func validateRegistration(fullName, email, mobile, password string) error {
	if strings.TrimSpace(fullName) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "full name is required")
	}
	if !strings.Contains(email, "@") {
		return errors.New(errors.ErrCodeInvalidInput, "email address is not valid").
			WithSuggestion("Use a full address like ada@example.com")
	}
	if !mobilePattern.MatchString(mobile) {
		return errors.New(errors.ErrCodeInvalidInput, "mobile number must be 11 digits starting with 09")
	}
	if len(password) < 8 {
		return errors.New(errors.ErrCodeInvalidInput, "password must be at least 8 characters")
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	ident := a.session.Identity()
	if !ident.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}

	a.session.Logout()
	a.notifier.Success("logged out")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	ident := a.session.Identity()
	if !ident.Authenticated() {
		fmt.Println("Not logged in.")
		fmt.Println("Use 'blogctl auth login' to authenticate.")
		return nil
	}

	details, err := a.client.GetUserDetails(ctx)
	if err != nil {
		fmt.Println("Token may be expired or invalid.")
		fmt.Println("Use 'blogctl auth login' to re-authenticate.")
		return nil
	}

	fmt.Println("Logged in")
	fmt.Printf("User ID: %s\n", details.ID)
	fmt.Printf("Email:   %s\n", details.Email)
	if details.FullName != "" {
		fmt.Printf("Name:    %s\n", details.FullName)
	}
	if details.IsAdmin {
		fmt.Println("Role:    admin")
	}
	return nil
}
