package domain

import "time"

// UploadRecord is a locally kept entry for a successful upload.
type UploadRecord struct {
	ID           string
	DocumentDate string
	MajorHead    string
	MinorHead    string
	Tags         []string
	Remarks      string
	FileName     string
	UploadedAt   time.Time
}
