package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-its/internal/adapters/driving/render"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Preview the records of an export",
	Long: `Parses a Jira XML export and prints one normalised record per issue
item without storing anything. A single malformed item fails the whole file.

Mapping flags override the configured label mapping for this run:
  sercha-its parse export.xml --map-priority
  sercha-its parse export.xml --map-type=false`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "output records as JSON")
	addMappingFlags(parseCmd)
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return fmt.Errorf("import %w", errNotConfigured)
	}

	issues, err := importService.Preview(context.Background(), args[0], mappingOverrides(cmd))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if parseJSON {
		return printJSON(cmd, issues)
	}

	if len(issues) == 0 {
		cmd.Println("No issues found.")
		return nil
	}

	cmd.Println(render.IssueTable(render.DefaultStyles(), issues))
	cmd.Printf("%d issues\n", len(issues))
	return nil
}
