package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/services"
)

// Flags for search.
var (
	searchCategory string
	searchTags     []string
	searchFrom     string
	searchTo       string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search uploaded documents",
	Long: `Search documents by category, tags and document date range.
All filters are optional; without any, every document is returned.

Examples:
  docdesk search --category Professional --tag hr
  docdesk search --from 2024-01-01 --to 2024-01-31 --json`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "major head: Personal or Professional")
	searchCmd.Flags().StringArrayVarP(&searchTags, "tag", "t", nil, "tag filter (repeatable)")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "earliest document date YYYY-MM-DD")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "latest document date YYYY-MM-DD")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}
	ctx := cmd.Context()
	if err := requireLogin(ctx); err != nil {
		return err
	}

	filter, err := buildSearchFilter()
	if err != nil {
		return err
	}

	results, err := searchService.Search(ctx, filter)
	if err != nil {
		return presentError(err, services.MsgSearchServer)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func buildSearchFilter() (domain.SearchFilter, error) {
	var filter domain.SearchFilter

	major, err := parseMajorHead(searchCategory)
	if err != nil {
		return filter, err
	}
	filter.MajorHead = major
	filter.Tags = domain.NewTagSet(searchTags...)

	if filter.From, err = parseDateFlag("from", searchFrom); err != nil {
		return filter, err
	}
	if filter.To, err = parseDateFlag("to", searchTo); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", name, value)
	}
	return &t, nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.DocumentRecord) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.DocumentRecord) error {
	if len(results) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	cmd.Printf("Found %d documents:\n\n", len(results))
	for i := range results {
		doc := results[i]
		cmd.Printf("  [%d] %s / %s  (document date %s)\n", i+1, doc.MajorHead, doc.MinorHead, doc.DocumentDay())
		if doc.DocumentRemarks != "" {
			cmd.Printf("      %s\n", doc.DocumentRemarks)
		}
		cmd.Printf("      Uploaded %s by %s\n", doc.UploadDay(), doc.UploadedBy)
		if doc.FileURL != "" {
			cmd.Printf("      %s\n", doc.FileURL)
		}
		cmd.Println()
	}
	return nil
}
