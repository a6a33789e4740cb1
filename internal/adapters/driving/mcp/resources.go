package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

const (
	uriScheme = "docdesk://"

	defaultUploadsLimit = 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "Major heads and the minor heads each one accepts",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "uploads",
		Name:        "uploads",
		Description: "Documents recently uploaded from this machine",
		MIMEType:    "application/json",
	}, s.handleUploadsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "uploads/{limit}",
		Name:        "uploads-limited",
		Description: "The given number of most recent uploads",
		MIMEType:    "application/json",
	}, s.handleUploadsResource)
}

type categoryInfo struct {
	MajorHead      string   `json:"major_head"`
	MinorHeadLabel string   `json:"minor_head_label"`
	MinorHeads     []string `json:"minor_heads"`
}

// handleCategoriesResource lists the upload categories.
func (s *Server) handleCategoriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	heads := domain.MajorHeads()
	infos := make([]categoryInfo, len(heads))
	for i, m := range heads {
		infos[i] = categoryInfo{
			MajorHead:      m.String(),
			MinorHeadLabel: m.MinorHeadLabel(),
			MinorHeads:     domain.MinorHeadOptions(m),
		}
	}
	return jsonResult(req.Params.URI, infos, "categories")
}

type uploadInfo struct {
	ID           string   `json:"id"`
	FileName     string   `json:"file_name"`
	DocumentDate string   `json:"document_date"`
	MajorHead    string   `json:"major_head"`
	MinorHead    string   `json:"minor_head"`
	Tags         []string `json:"tags"`
	Remarks      string   `json:"remarks,omitempty"`
	UploadedAt   string   `json:"uploaded_at"`
}

// handleUploadsResource lists local upload history.
func (s *Server) handleUploadsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	limit, ok := extractLimit(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if s.ports.History == nil {
		return jsonResult(req.Params.URI, []uploadInfo{}, "uploads")
	}

	records, err := s.ports.History.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing uploads: %w", err)
	}

	infos := make([]uploadInfo, len(records))
	for i := range records {
		r := records[i]
		tags := r.Tags
		if tags == nil {
			tags = []string{}
		}
		infos[i] = uploadInfo{
			ID:           r.ID,
			FileName:     r.FileName,
			DocumentDate: r.DocumentDate,
			MajorHead:    r.MajorHead,
			MinorHead:    r.MinorHead,
			Tags:         tags,
			Remarks:      r.Remarks,
			UploadedAt:   r.UploadedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return jsonResult(req.Params.URI, infos, "uploads")
}

func jsonResult(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractLimit reads the limit from docdesk://uploads or docdesk://uploads/{limit}.
func extractLimit(uri string) (int, bool) {
	const base = uriScheme + "uploads"

	if uri == base {
		return defaultUploadsLimit, true
	}
	rest, found := strings.CutPrefix(uri, base+"/")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
