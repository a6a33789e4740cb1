package domain

import "time"

// Search pagination is fixed; the remote API pages server side.
const (
	SearchStart  = 0
	SearchLength = 500
)

// dayFirst is the date layout the search endpoint expects.
const dayFirst = "02-01-2006"

// SearchFilter holds the criteria of the document search screen.
type SearchFilter struct {
	// MajorHead restricts results to a category. Empty means any.
	MajorHead MajorHead

	// Tags restricts results to documents carrying these tags.
	Tags TagSet

	// From and To bound the document date. Nil means unbounded.
	From *time.Time
	To   *time.Time
}

// TagFilter is a single tag criterion in the search payload.
type TagFilter struct {
	TagName string `json:"tag_name"`
}

// SearchValue is the free text criterion in the search payload.
type SearchValue struct {
	Value string `json:"value"`
}

// SearchPayload is the request body of the search endpoint.
type SearchPayload struct {
	MajorHead  string      `json:"major_head"`
	MinorHead  string      `json:"minor_head"`
	FromDate   string      `json:"from_date"`
	ToDate     string      `json:"to_date"`
	Tags       []TagFilter `json:"tags"`
	UploadedBy string      `json:"uploaded_by"`
	Start      int         `json:"start"`
	Length     int         `json:"length"`
	FilterID   string      `json:"filterId"`
	Search     SearchValue `json:"search"`
}

// Payload builds the request body for the filter.
func (f *SearchFilter) Payload() SearchPayload {
	values := f.Tags.Values()
	tags := make([]TagFilter, 0, len(values))
	for _, t := range values {
		tags = append(tags, TagFilter{TagName: t})
	}
	return SearchPayload{
		MajorHead: f.MajorHead.String(),
		MinorHead: "",
		FromDate:  FormatDayFirst(f.From),
		ToDate:    FormatDayFirst(f.To),
		Tags:      tags,
		Start:     SearchStart,
		Length:    SearchLength,
		Search:    SearchValue{},
	}
}

// FormatDayFirst formats t as DD-MM-YYYY, or "" when t is nil.
func FormatDayFirst(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dayFirst)
}

// DocumentRecord is a document entry returned by the search endpoint.
type DocumentRecord struct {
	DocumentID      string `json:"document_id"`
	MajorHead       string `json:"major_head"`
	MinorHead       string `json:"minor_head"`
	DocumentRemarks string `json:"document_remarks"`
	UploadedBy      string `json:"uploaded_by"`
	UploadTime      string `json:"upload_time"`
	DocumentDate    string `json:"document_date"`
	FileURL         string `json:"file_url"`
}

// UploadDay returns the date part of the upload time.
func (d DocumentRecord) UploadDay() string {
	return datePart(d.UploadTime)
}

// DocumentDay returns the date part of the document date.
func (d DocumentRecord) DocumentDay() string {
	return datePart(d.DocumentDate)
}

func datePart(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
