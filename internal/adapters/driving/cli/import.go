package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-its/internal/adapters/driving/render"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import an export into the local store",
	Long: `Parses a Jira XML export and stores the normalised records as a new
import. Nothing is stored when any item fails to map.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	addMappingFlags(importCmd)
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return fmt.Errorf("import %w", errNotConfigured)
	}

	result, err := importService.Import(context.Background(), args[0], mappingOverrides(cmd))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	styles := render.DefaultStyles()
	cmd.Printf("Imported %d issues from %s\n", result.Import.IssueCount, result.Import.Path)
	cmd.Printf("Import ID: %s\n", result.Import.ID)
	cmd.Println()
	cmd.Println(render.Summary(styles, result.Summary))
	return nil
}
