package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDayFirst(t *testing.T) {
	d := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "31-01-2024", FormatDayFirst(&d))
	assert.Equal(t, "", FormatDayFirst(nil))
}

func TestSearchFilter_Payload(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	f := SearchFilter{
		MajorHead: MajorHeadPersonal,
		Tags:      NewTagSet("invoice"),
		From:      &from,
		To:        &to,
	}

	p := f.Payload()
	assert.Equal(t, "Personal", p.MajorHead)
	assert.Equal(t, "", p.MinorHead)
	assert.Equal(t, "01-01-2024", p.FromDate)
	assert.Equal(t, "31-01-2024", p.ToDate)
	assert.Equal(t, []TagFilter{{TagName: "invoice"}}, p.Tags)
	assert.Equal(t, 0, p.Start)
	assert.Equal(t, 500, p.Length)
}

func TestSearchFilter_PayloadJSON(t *testing.T) {
	var f SearchFilter
	raw, err := json.Marshal(f.Payload())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "", got["major_head"])
	assert.Equal(t, "", got["from_date"])
	assert.Equal(t, "", got["to_date"])
	assert.Equal(t, []any{}, got["tags"])
	assert.Equal(t, "", got["uploaded_by"])
	assert.Equal(t, "", got["filterId"])
	assert.Equal(t, float64(500), got["length"])
	assert.Equal(t, map[string]any{"value": ""}, got["search"])
}

func TestDocumentRecord_Days(t *testing.T) {
	d := DocumentRecord{
		UploadTime:   "2024-02-03T10:11:12.000Z",
		DocumentDate: "2024-01-15",
	}
	assert.Equal(t, "2024-02-03", d.UploadDay())
	assert.Equal(t, "2024-01-15", d.DocumentDay())
	assert.Equal(t, "", DocumentRecord{}.UploadDay())
}

func TestDocumentRecord_JSON(t *testing.T) {
	raw := `{"document_id":"42","major_head":"Professional","minor_head":"HR",
		"document_remarks":"offer","uploaded_by":"anmol",
		"upload_time":"2024-02-03T10:11:12Z","file_url":"https://files/x.pdf"}`

	var d DocumentRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	assert.Equal(t, "42", d.DocumentID)
	assert.Equal(t, "HR", d.MinorHead)
	assert.Equal(t, "https://files/x.pdf", d.FileURL)
}
