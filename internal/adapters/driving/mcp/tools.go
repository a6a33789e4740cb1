package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

const dateLayout = "2006-01-02"

// SearchInput is the input schema for the search_documents tool.
type SearchInput struct {
	Category string   `json:"category,omitempty" jsonschema:"major head to restrict to: Personal or Professional"`
	Tags     []string `json:"tags,omitempty" jsonschema:"documents must carry these tags"`
	From     string   `json:"from,omitempty" jsonschema:"earliest document date as YYYY-MM-DD"`
	To       string   `json:"to,omitempty" jsonschema:"latest document date as YYYY-MM-DD"`
}

// SearchOutput is the output schema for the search_documents tool.
type SearchOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput is a single document in a search result.
type DocumentOutput struct {
	DocumentID   string `json:"document_id"`
	MajorHead    string `json:"major_head"`
	MinorHead    string `json:"minor_head"`
	DocumentDate string `json:"document_date"`
	Remarks      string `json:"remarks,omitempty"`
	UploadedBy   string `json:"uploaded_by,omitempty"`
	UploadDate   string `json:"upload_date,omitempty"`
	FileURL      string `json:"file_url,omitempty"`
}

// SuggestInput is the input schema for the suggest_tags tool.
type SuggestInput struct {
	Term string `json:"term" jsonschema:"partial tag text to complete"`
}

// SuggestOutput is the output schema for the suggest_tags tool.
type SuggestOutput struct {
	Suggestions []string `json:"suggestions"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search uploaded documents by category, tags and document date range",
	}, s.handleSearch)

	if s.ports.Tags != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "suggest_tags",
			Description: "Suggest existing tags that match a partial term",
		}, s.handleSuggest)
	}
}

// handleSearch handles the search_documents tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	filter, err := searchFilter(input)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	results, err := s.ports.Search.Search(ctx, filter)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("searching documents: %w", err)
	}

	output := SearchOutput{
		Documents: make([]DocumentOutput, len(results)),
		Count:     len(results),
	}
	for i := range results {
		doc := results[i]
		output.Documents[i] = DocumentOutput{
			DocumentID:   doc.DocumentID,
			MajorHead:    doc.MajorHead,
			MinorHead:    doc.MinorHead,
			DocumentDate: doc.DocumentDay(),
			Remarks:      doc.DocumentRemarks,
			UploadedBy:   doc.UploadedBy,
			UploadDate:   doc.UploadDay(),
			FileURL:      doc.FileURL,
		}
	}

	return nil, output, nil
}

// handleSuggest handles the suggest_tags tool invocation.
func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	if s.ports.Tags == nil {
		return nil, SuggestOutput{}, ErrMissingTagService
	}

	suggestions, err := s.ports.Tags.Suggest(ctx, input.Term)
	if err != nil {
		return nil, SuggestOutput{}, fmt.Errorf("suggesting tags: %w", err)
	}

	output := SuggestOutput{Suggestions: make([]string, 0, len(suggestions))}
	for _, sg := range suggestions {
		output.Suggestions = append(output.Suggestions, sg.Label)
	}
	return nil, output, nil
}

// searchFilter converts tool input into a domain filter.
func searchFilter(input SearchInput) (domain.SearchFilter, error) {
	var filter domain.SearchFilter

	if input.Category != "" {
		major, ok := matchMajorHead(input.Category)
		if !ok {
			return filter, fmt.Errorf("invalid category %q: use Personal or Professional", input.Category)
		}
		filter.MajorHead = major
	}
	filter.Tags = domain.NewTagSet(input.Tags...)

	var err error
	if filter.From, err = parseDate("from", input.From); err != nil {
		return filter, err
	}
	if filter.To, err = parseDate("to", input.To); err != nil {
		return filter, err
	}
	return filter, nil
}

func matchMajorHead(value string) (domain.MajorHead, bool) {
	for _, m := range domain.MajorHeads() {
		if strings.EqualFold(value, m.String()) {
			return m, true
		}
	}
	return "", false
}

func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q: use YYYY-MM-DD", field, value)
	}
	return &t, nil
}
