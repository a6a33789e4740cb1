package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags [term]",
	Short: "Suggest existing tags matching a term",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errors.New("tag service not configured")
	}

	suggestions, err := tagService.Suggest(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(suggestions) == 0 {
		cmd.Println("No matching tags.")
		return nil
	}
	for _, s := range suggestions {
		cmd.Println(s.Label)
	}
	return nil
}
