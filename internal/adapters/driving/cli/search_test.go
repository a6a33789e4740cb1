package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

var sampleRecords = []domain.DocumentRecord{
	{
		DocumentID:      "7",
		MajorHead:       "Personal",
		MinorHead:       "Riya",
		DocumentRemarks: "passport",
		UploadedBy:      "anmol",
		UploadTime:      "2024-03-02T10:00:00",
		DocumentDate:    "2024-03-01T00:00:00",
		FileURL:         "https://files.example.com/7.pdf",
	},
	{
		DocumentID:   "8",
		MajorHead:    "Professional",
		MinorHead:    "IT",
		UploadedBy:   "anmol",
		UploadTime:   "2024-03-05T10:00:00",
		DocumentDate: "2024-03-04T00:00:00",
	},
}

func TestSearchCmd_Flags(t *testing.T) {
	assert.Equal(t, "search", searchCmd.Use)
	flag := searchCmd.Flags().Lookup("tag")
	require.NotNil(t, flag)
	assert.Equal(t, "t", flag.Shorthand)
	for _, name := range []string{"category", "from", "to", "json"} {
		assert.NotNil(t, searchCmd.Flags().Lookup(name), name)
	}
}

func TestSearchCmd_RejectsArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "search", "free text")

	assert.Error(t, err)
}

func TestSearchCmd_Table(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	searchService.(*mockSearchService).results = sampleRecords

	out, err := execute(t, "", "search")

	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 documents")
	assert.Contains(t, out, "[1] Personal / Riya  (document date 2024-03-01)")
	assert.Contains(t, out, "passport")
	assert.Contains(t, out, "Uploaded 2024-03-05 by anmol")
	assert.Contains(t, out, "https://files.example.com/7.pdf")
}

func TestSearchCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "search")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents found.")
}

func TestSearchCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	searchService.(*mockSearchService).results = sampleRecords

	out, err := execute(t, "", "search", "--json")

	require.NoError(t, err)
	var got []domain.DocumentRecord
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, sampleRecords, got)
}

func TestSearchCmd_BuildsFilter(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	search := searchService.(*mockSearchService)

	_, err := execute(t, "", "search", "-c", "Professional", "-t", "hr", "-t", "2024",
		"--from", "2024-01-01", "--to", "2024-01-31")

	require.NoError(t, err)
	f := search.lastFilter
	assert.Equal(t, domain.MajorHeadProfessional, f.MajorHead)
	assert.Equal(t, []string{"hr", "2024"}, f.Tags.Values())
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.From)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *f.To)

	payload := f.Payload()
	assert.Equal(t, "01-01-2024", payload.FromDate)
	assert.Equal(t, "31-01-2024", payload.ToDate)
}

func TestSearchCmd_InvalidDate(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "search", "--from", "01/01/2024")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --from")
	assert.Equal(t, 0, searchService.(*mockSearchService).calls)
}

func TestSearchCmd_NotLoggedIn(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	authService.(*mockAuthService).session = domain.Session{}

	_, err := execute(t, "", "search")

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestSearchCmd_ServerError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	searchService.(*mockSearchService).err = &domain.APIError{Status: 502}

	_, err := execute(t, "", "search")

	require.Error(t, err)
	assert.Equal(t, "Server error during search.", err.Error())
}

func TestSearchCmd_SessionExpired(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	searchService.(*mockSearchService).err = domain.ErrNotAuthenticated

	_, err := execute(t, "", "search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "docdesk login")
}
