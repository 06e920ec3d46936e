package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/postchat-labs/postchat-cli/internal/core/domain"
)

var (
	loginEmail    string
	loginProvider string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your PostChat account",
	Long: `Sign in with email and password, or with an OAuth provider.

Examples:
  # Email and password (prompted)
  postchat login

  # Email given, password prompted
  postchat login --email you@example.com

  # Browser-based OAuth
  postchat login --provider google`,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new PostChat account",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the cached session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runWhoami,
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password [email]",
	Short: "Request a password reset email",
	Args:  cobra.ExactArgs(1),
	RunE:  runResetPassword,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginProvider, "provider", "", "OAuth provider (google, github)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(resetPasswordCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	ctx := cmd.Context()

	if loginProvider != "" {
		cmd.Printf("Opening your browser to sign in with %s...\n", loginProvider)
		session, err := sessionService.SignInWithOAuth(ctx, loginProvider)
		if err != nil {
			return fmt.Errorf("oauth sign-in failed: %w", err)
		}
		cmd.Printf("Signed in as %s\n", session.Email)
		return nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	email := loginEmail
	if email == "" {
		email = promptLine(cmd, reader, "Email: ")
	}
	password := promptPassword(cmd, reader, "Password: ")

	session, err := sessionService.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return errors.New("invalid email or password")
		}
		if errors.Is(err, domain.ErrEmailNotConfirmed) {
			return errors.New("confirm your email before signing in")
		}
		return fmt.Errorf("sign-in failed: %w", err)
	}

	cmd.Printf("Signed in as %s\n", session.Email)
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	email := promptLine(cmd, reader, "Email: ")
	name := promptLine(cmd, reader, "Display name (optional): ")
	password := promptPassword(cmd, reader, "Password: ")
	confirm := promptPassword(cmd, reader, "Confirm password: ")
	if password != confirm {
		return errors.New("passwords do not match")
	}

	result, err := sessionService.SignUp(cmd.Context(), email, password, name)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if result.ConfirmationRequired {
		cmd.Println("Account created. Check your inbox to confirm your email, then run 'postchat login'.")
		return nil
	}

	cmd.Printf("Signed in as %s\n", result.Session.Email)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if err := sessionService.SignOut(cmd.Context()); err != nil {
		return fmt.Errorf("sign-out failed: %w", err)
	}
	cmd.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	session, err := sessionService.Current(cmd.Context())
	if err != nil {
		return fmt.Errorf("checking session: %w", err)
	}
	if session == nil {
		cmd.Println("Not signed in.")
		return nil
	}

	cmd.Printf("Signed in as %s", session.Email)
	if session.DisplayName != "" {
		cmd.Printf(" (%s)", session.DisplayName)
	}
	cmd.Println()
	return nil
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	if err := sessionService.ResetPassword(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("requesting password reset: %w", err)
	}
	cmd.Printf("If an account exists for %s, a reset email is on its way.\n", args[0])
	return nil
}

// The reader is shared across prompts: a fresh bufio.Reader per prompt
// would buffer ahead and swallow the following answers.
//
//nolint:errcheck // CLI helper, error ignored for UX
func promptLine(cmd *cobra.Command, reader *bufio.Reader, prompt string) string {
	cmd.Print(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func promptPassword(cmd *cobra.Command, reader *bufio.Reader, prompt string) string {
	cmd.Print(prompt)
	// Read without echo when attached to a terminal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err == nil {
			return string(password)
		}
	}
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
