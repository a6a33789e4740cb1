package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/services"
)

// dateLayout is the date format accepted on the command line.
const dateLayout = "2006-01-02"

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a PDF or image",
	Long: `Upload a document with its category, tags and remarks.

The category is Personal (minor head is a name) or Professional (minor head is
a department). Only PDF and image files are accepted.

Examples:
  docdesk upload invoice.pdf --minor Riya --tag invoice --tag 2024
  docdesk upload scan.png --category Professional --minor HR --date 2024-02-14`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

// Flags for upload.
var (
	uploadDate     string
	uploadCategory string
	uploadMinor    string
	uploadTags     []string
	uploadRemarks  string
)

func init() {
	uploadCmd.Flags().StringVar(&uploadDate, "date", "", "document date YYYY-MM-DD (default today)")
	uploadCmd.Flags().StringVarP(&uploadCategory, "category", "c", string(domain.MajorHeadPersonal),
		"major head: Personal or Professional")
	uploadCmd.Flags().StringVarP(&uploadMinor, "minor", "m", "", "name (Personal) or department (Professional)")
	uploadCmd.Flags().StringArrayVarP(&uploadTags, "tag", "t", nil, "tag to attach (repeatable)")
	uploadCmd.Flags().StringVarP(&uploadRemarks, "remarks", "r", "", "free text remarks")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}
	if loadFile == nil {
		return errors.New("file loader not configured")
	}
	ctx := cmd.Context()
	if err := requireLogin(ctx); err != nil {
		return err
	}

	form, err := buildUploadForm(args[0], time.Now())
	if err != nil {
		return err
	}

	if err := uploadService.Upload(ctx, form); err != nil {
		return presentError(err, services.MsgUploadServer)
	}

	cmd.Printf("Uploaded %s (%s / %s)\n", form.File().Name, form.MajorHead(), form.MinorHead())
	return nil
}

// buildUploadForm fills a form from the upload flags.
func buildUploadForm(path string, now time.Time) (*domain.UploadForm, error) {
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if uploadDate != "" {
		parsed, err := time.Parse(dateLayout, uploadDate)
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q: use YYYY-MM-DD", uploadDate)
		}
		date = parsed
	}
	form := domain.NewUploadForm(date)

	major, err := parseMajorHead(uploadCategory)
	if err != nil {
		return nil, err
	}
	if major != "" {
		form.SetMajorHead(major)
	}

	if uploadMinor != "" {
		minor, ok := matchOption(uploadMinor, form.MinorOptions())
		if !ok {
			return nil, fmt.Errorf("invalid --minor %q for %s: choose one of %s",
				uploadMinor, major, strings.Join(form.MinorOptions(), ", "))
		}
		form.SetMinorHead(minor)
	}

	for _, tag := range uploadTags {
		form.AddTag(tag)
	}
	form.Remarks = uploadRemarks

	file, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if err := form.SelectFile(file); err != nil {
		return nil, errors.New(form.Error)
	}
	return form, nil
}

// parseMajorHead matches a category name case-insensitively. Empty means any.
func parseMajorHead(value string) (domain.MajorHead, error) {
	if value == "" {
		return "", nil
	}
	for _, m := range domain.MajorHeads() {
		if strings.EqualFold(value, m.String()) {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid category %q: choose Personal or Professional", value)
}

func matchOption(value string, options []string) (string, bool) {
	for _, opt := range options {
		if strings.EqualFold(value, opt) {
			return opt, true
		}
	}
	return "", false
}
