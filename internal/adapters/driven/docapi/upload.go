package docapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// UploadDocument posts meta as the "data" part and file as the "file" part.
func (c *Client) UploadDocument(
	ctx context.Context,
	token string,
	meta domain.UploadMetadata,
	file *domain.UploadFile,
) error {
	if file == nil || file.Open == nil {
		return fmt.Errorf("%w: no file to upload", domain.ErrMissingFields)
	}

	body, contentType, err := buildMultipart(meta, file)
	if err != nil {
		return err
	}

	_, err = c.post(ctx, endpointUpload, token, contentType, body)
	return err
}

// buildMultipart encodes the upload body. The file is read fully so the
// request has a known length.
func buildMultipart(meta domain.UploadMetadata, file *domain.UploadFile) (*bytes.Buffer, string, error) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, "", fmt.Errorf("marshal metadata: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("data", string(metaJSON)); err != nil {
		return nil, "", fmt.Errorf("write data part: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	header.Set("Content-Type", file.MIMEType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer src.Close()
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", file.Name, err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
