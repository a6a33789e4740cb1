package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docdesk-cli/internal/core/services"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with your phone number and a one-time password",
	Long: `Log in to the document API.

An OTP is sent to the phone number and then exchanged for a session token,
which is stored locally and used by every other command.

Examples:
  # Interactive
  docdesk login

  # Two steps, for scripts
  docdesk login --phone 9876543210 --request-only
  docdesk login --phone 9876543210 --otp 123456`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether you are logged in",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

// Flags for login.
var (
	loginPhone       string
	loginOTP         string
	loginRequestOnly bool
)

func init() {
	loginCmd.Flags().StringVar(&loginPhone, "phone", "", "10-digit phone number")
	loginCmd.Flags().StringVar(&loginOTP, "otp", "", "6-digit OTP (skips sending a new one)")
	loginCmd.Flags().BoolVar(&loginRequestOnly, "request-only", false, "send the OTP and exit")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}
	ctx := cmd.Context()
	reader := bufio.NewReader(cmd.InOrStdin())

	phone := strings.TrimSpace(loginPhone)
	if phone == "" {
		cmd.Print("Phone number: ")
		phone = readLine(reader)
	}

	if loginOTP == "" {
		if err := authService.RequestOTP(ctx, phone); err != nil {
			return presentError(err, services.MsgGenerateOTPServer)
		}
		cmd.Printf("OTP sent to %s\n", phone)
		if loginRequestOnly {
			return nil
		}
	}

	otp := strings.TrimSpace(loginOTP)
	if otp == "" {
		cmd.Print("OTP: ")
		otp = readSecret(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	session, err := authService.ValidateOTP(ctx, phone, otp)
	if err != nil {
		return presentError(err, services.MsgInvalidOTP)
	}

	cmd.Printf("Logged in as %s\n", session.Phone)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}
	if err := authService.Logout(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Logged out.")
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	session := authService.Status(cmd.Context())
	if !session.Authenticated() {
		cmd.Println("Not logged in. Run 'docdesk login'.")
		return nil
	}

	cmd.Printf("Logged in as %s\n", session.Phone)
	if !session.CreatedAt.IsZero() {
		cmd.Printf("Since: %s\n", session.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readSecret reads without echo when in is a terminal, otherwise a plain line.
func readSecret(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}
