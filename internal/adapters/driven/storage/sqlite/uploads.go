package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
)

// uploadHistoryStore implements driven.UploadHistoryStore.
type uploadHistoryStore struct {
	store *Store
}

var _ driven.UploadHistoryStore = (*uploadHistoryStore)(nil)

// Record appends an upload.
func (s *uploadHistoryStore) Record(ctx context.Context, record domain.UploadRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	tags := record.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO uploads (id, document_date, major_head, minor_head, tags, remarks, file_name, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.DocumentDate, record.MajorHead, record.MinorHead,
		string(tagsJSON), record.Remarks, record.FileName, formatTime(record.UploadedAt))
	if err != nil {
		return fmt.Errorf("saving upload: %w", err)
	}
	return nil
}

// List returns up to limit uploads, newest first.
func (s *uploadHistoryStore) List(ctx context.Context, limit int) ([]domain.UploadRecord, error) {
	query := `
		SELECT id, document_date, major_head, minor_head, tags, remarks, file_name, uploaded_at
		FROM uploads
		ORDER BY uploaded_at DESC, rowid DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying uploads: %w", err)
	}
	defer rows.Close()

	return scanUploads(rows)
}

func scanUploads(rows *sql.Rows) ([]domain.UploadRecord, error) {
	records := []domain.UploadRecord{}
	for rows.Next() {
		var rec domain.UploadRecord
		var tagsJSON, uploadedAt string
		if err := rows.Scan(&rec.ID, &rec.DocumentDate, &rec.MajorHead, &rec.MinorHead,
			&tagsJSON, &rec.Remarks, &rec.FileName, &uploadedAt); err != nil {
			return nil, fmt.Errorf("scanning upload: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &rec.Tags); err != nil {
			return nil, fmt.Errorf("unmarshalling tags: %w", err)
		}
		t, err := parseTime(uploadedAt)
		if err != nil {
			return nil, err
		}
		rec.UploadedAt = t
		records = append(records, rec)
	}
	return records, rows.Err()
}
