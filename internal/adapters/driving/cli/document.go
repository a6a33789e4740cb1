package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [file-url]",
	Short: "Open a document with the default application",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

var downloadCmd = &cobra.Command{
	Use:   "download [file-url]",
	Short: "Download a document to a local directory",
	Long: `Download a document by its file URL, as printed by 'docdesk search'.

The file keeps the name from its URL. Without --dir it is written to the
configured download directory, or the current directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

var copyLinkCmd = &cobra.Command{
	Use:   "copy-link [file-url]",
	Short: "Copy a document link to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runCopyLink,
}

// downloadDir is a flag for the download command.
var downloadDir string

func init() {
	downloadCmd.Flags().StringVarP(&downloadDir, "dir", "d", "", "target directory")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(copyLinkCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if actionService == nil {
		return errors.New("document action service not configured")
	}

	if err := actionService.View(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	cmd.Println("Opened document in default application.")
	return nil
}

func runDownload(cmd *cobra.Command, args []string) error {
	if actionService == nil {
		return errors.New("document action service not configured")
	}

	path, err := actionService.Download(cmd.Context(), args[0], downloadDir)
	if err != nil {
		return fmt.Errorf("failed to download document: %w", err)
	}

	cmd.Printf("Saved to %s\n", path)
	return nil
}

func runCopyLink(cmd *cobra.Command, args []string) error {
	if actionService == nil {
		return errors.New("document action service not configured")
	}

	if err := actionService.CopyLink(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to copy link: %w", err)
	}

	cmd.Println("Link copied to clipboard.")
	return nil
}
