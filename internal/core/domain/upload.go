package domain

import (
	"io"
	"strings"
	"time"
)

// MajorHead is the top level of the document category taxonomy.
type MajorHead string

// Available major heads.
const (
	MajorHeadPersonal     MajorHead = "Personal"
	MajorHeadProfessional MajorHead = "Professional"
)

// MajorHeads lists the major heads in display order.
func MajorHeads() []MajorHead {
	return []MajorHead{MajorHeadPersonal, MajorHeadProfessional}
}

// IsValid returns true if the major head is recognised.
func (m MajorHead) IsValid() bool {
	return m == MajorHeadPersonal || m == MajorHeadProfessional
}

// String returns the string representation.
func (m MajorHead) String() string {
	return string(m)
}

// MinorHeadLabel returns the label for the minor head selector.
func (m MajorHead) MinorHeadLabel() string {
	if m == MajorHeadPersonal {
		return "Name"
	}
	return "Department"
}

// MinorHeadOptions returns the valid minor heads for a major head.
func MinorHeadOptions(m MajorHead) []string {
	switch m {
	case MajorHeadPersonal:
		return []string{"Anmol", "Riya", "Amit", "Priya"}
	case MajorHeadProfessional:
		return []string{"IT", "Admin", "HR", "Finance"}
	default:
		return nil
	}
}

// AllowedUploadType reports whether a MIME type may be uploaded.
func AllowedUploadType(mimeType string) bool {
	return mimeType == "application/pdf" || strings.HasPrefix(mimeType, "image/")
}

// UploadFile is a file chosen for upload.
type UploadFile struct {
	// Name is the base file name sent with the multipart part.
	Name string

	// MIMEType is the detected content type.
	MIMEType string

	// Size is the file size in bytes.
	Size int64

	// Open returns a fresh reader over the file contents.
	Open func() (io.ReadCloser, error)
}

// UploadMetadata is the JSON document sent as the "data" multipart part.
type UploadMetadata struct {
	DocumentDate    string   `json:"document_date"`
	MajorHead       string   `json:"major_head"`
	MinorHead       string   `json:"minor_head"`
	Tags            []string `json:"tags"`
	DocumentRemarks string   `json:"document_remarks"`
	UserID          string   `json:"user_id"`
}

// isoMillis matches the ISO-8601 form browsers produce for dates.
const isoMillis = "2006-01-02T15:04:05.000Z"

// UploadForm is the state of the document upload screen.
type UploadForm struct {
	Date    *time.Time
	Remarks string
	Error   string

	majorHead    MajorHead
	minorHead    string
	minorOptions []string
	tags         TagSet
	file         *UploadFile
}

// NewUploadForm returns a form dated today with the Personal major head.
func NewUploadForm(now time.Time) *UploadForm {
	return &UploadForm{
		Date:         &now,
		majorHead:    MajorHeadPersonal,
		minorOptions: MinorHeadOptions(MajorHeadPersonal),
	}
}

// MajorHead returns the selected major head.
func (f *UploadForm) MajorHead() MajorHead {
	return f.majorHead
}

// SetMajorHead changes the major head. A change replaces the minor head options
// and clears the selected minor head.
func (f *UploadForm) SetMajorHead(m MajorHead) {
	if m == f.majorHead {
		return
	}
	f.majorHead = m
	f.minorOptions = MinorHeadOptions(m)
	f.minorHead = ""
}

// MinorHead returns the selected minor head.
func (f *UploadForm) MinorHead() string {
	return f.minorHead
}

// MinorOptions returns the minor heads valid for the current major head.
func (f *UploadForm) MinorOptions() []string {
	out := make([]string, len(f.minorOptions))
	copy(out, f.minorOptions)
	return out
}

// SetMinorHead selects a minor head. Values outside the current options, other
// than the empty string, are rejected.
func (f *UploadForm) SetMinorHead(v string) bool {
	if v == "" {
		f.minorHead = ""
		return true
	}
	for _, opt := range f.minorOptions {
		if opt == v {
			f.minorHead = v
			return true
		}
	}
	return false
}

// Tags returns the tags in insertion order.
func (f *UploadForm) Tags() []string {
	return f.tags.Values()
}

// AddTag adds text as a tag. Blank or duplicate text is a no-op.
func (f *UploadForm) AddTag(text string) bool {
	return f.tags.Add(text)
}

// RemoveTag removes a tag by value.
func (f *UploadForm) RemoveTag(tag string) bool {
	return f.tags.Remove(tag)
}

// File returns the selected file, or nil.
func (f *UploadForm) File() *UploadFile {
	return f.file
}

// SelectFile sets the file to upload. Files that are neither PDF nor image are
// rejected with ErrUnsupportedFileType and the previous selection is kept.
func (f *UploadForm) SelectFile(file *UploadFile) error {
	if file == nil || !AllowedUploadType(file.MIMEType) {
		f.Error = Capitalise(ErrUnsupportedFileType.Error())
		return ErrUnsupportedFileType
	}
	f.file = file
	f.Error = ""
	return nil
}

// Validate returns ErrMissingFields unless a file, minor head and date are set.
func (f *UploadForm) Validate() error {
	if f.file == nil || f.minorHead == "" || f.Date == nil {
		return ErrMissingFields
	}
	return nil
}

// Metadata builds the JSON metadata for the upload request.
func (f *UploadForm) Metadata(userID string) UploadMetadata {
	date := ""
	if f.Date != nil {
		date = f.Date.UTC().Format(isoMillis)
	}
	tags := f.tags.Values()
	return UploadMetadata{
		DocumentDate:    date,
		MajorHead:       f.majorHead.String(),
		MinorHead:       f.minorHead,
		Tags:            tags,
		DocumentRemarks: f.Remarks,
		UserID:          userID,
	}
}
