package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// Ensure DocumentActionService implements the interface.
var _ driving.DocumentActionService = (*DocumentActionService)(nil)

// fallbackFileName is used when a file URL has no usable base name.
const fallbackFileName = "document"

// DocumentActionService provides actions on a search result's file.
type DocumentActionService struct {
	api         driven.DocumentAPI
	desktop     driven.Desktop
	downloadDir string
}

// NewDocumentActionService creates a new document action service.
// downloadDir is used when Download is called without a directory; empty
// means the working directory.
func NewDocumentActionService(
	api driven.DocumentAPI,
	desktop driven.Desktop,
	downloadDir string,
) *DocumentActionService {
	return &DocumentActionService{
		api:         api,
		desktop:     desktop,
		downloadDir: downloadDir,
	}
}

// View opens the file URL with the system handler.
func (s *DocumentActionService) View(ctx context.Context, fileURL string) error {
	if _, err := parseFileURL(fileURL); err != nil {
		return err
	}
	logger.Debug("Opening %s", fileURL)
	return s.desktop.Open(ctx, fileURL)
}

// CopyLink places the file URL on the system clipboard.
func (s *DocumentActionService) CopyLink(ctx context.Context, fileURL string) error {
	if _, err := parseFileURL(fileURL); err != nil {
		return err
	}
	return s.desktop.Copy(ctx, fileURL)
}

// Download writes the file into dir and returns the written path. An existing
// file is never replaced; the name gets a " (n)" suffix instead.
func (s *DocumentActionService) Download(ctx context.Context, fileURL, dir string) (string, error) {
	u, err := parseFileURL(fileURL)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = s.downloadDir
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	body, err := s.api.Fetch(ctx, fileURL)
	if err != nil {
		return "", fmt.Errorf("fetch document: %w", err)
	}
	defer body.Close()

	tmp, err := os.CreateTemp(dir, ".docdesk-download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	target, err := freePath(dir, downloadName(u))
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("move document: %w", err)
	}

	logger.Debug("Downloaded %d bytes to %s", n, target)
	return target, nil
}

func parseFileURL(fileURL string) (*url.URL, error) {
	if strings.TrimSpace(fileURL) == "" {
		return nil, fmt.Errorf("%w: empty file url", domain.ErrInvalidInput)
	}
	u, err := url.Parse(fileURL)
	if err != nil || u.Scheme == "" {
		return nil, fmt.Errorf("%w: file url %q", domain.ErrInvalidInput, fileURL)
	}
	return u, nil
}

// maxNameSuffix bounds the " (n)" suffixes tried by freePath.
const maxNameSuffix = 999

// freePath returns a path in dir for name that no existing file uses.
func freePath(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i <= maxNameSuffix; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		p := filepath.Join(dir, candidate)
		_, err := os.Lstat(p)
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		if err != nil {
			return "", fmt.Errorf("check download path: %w", err)
		}
	}
	return "", fmt.Errorf("no free file name for %s in %s", name, dir)
}

// downloadName picks a safe local file name from the URL path.
func downloadName(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return fallbackFileName
	}
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return fallbackFileName
	}
	return name
}
