package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-its/internal/connectors/exportdir"
	"github.com/custodia-labs/sercha-its/internal/core/ports/driving"
)

var (
	watchExisting bool
	watchSettle   time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import exports as they appear in a directory",
	Long: `Watches a directory and imports every *.xml export that is created or
rewritten in it. Files are imported once writes have settled.
Use --existing to also import the exports already in the directory.

Stop watching with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "import exports already in the directory first")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", exportdir.DefaultSettle, "quiet period before a changed file is imported")
	addMappingFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return fmt.Errorf("import %w", errNotConfigured)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := exportdir.New(args[0], exportdir.WithSettle(watchSettle))
	defer watcher.Close()

	overrides := mappingOverrides(cmd)

	if watchExisting {
		paths, err := watcher.Existing()
		if err != nil {
			return err
		}
		for _, path := range paths {
			importWatched(ctx, cmd, importService, path, overrides)
		}
	}

	changes, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s for exports (Ctrl+C to stop)\n", watcher.Root())
	for change := range changes {
		importWatched(ctx, cmd, importService, change.Path, overrides)
	}

	cmd.Println("Stopped watching.")
	return nil
}

// importWatched imports one export. Failures are reported and watching continues.
func importWatched(
	ctx context.Context,
	cmd *cobra.Command,
	svc driving.ImportService,
	path string,
	overrides driving.MappingOverrides,
) {
	result, err := svc.Import(ctx, path, overrides)
	if err != nil {
		cmd.PrintErrf("Failed to import %s: %v\n", path, err)
		return
	}
	cmd.Printf("Imported %d issues from %s (%s)\n", result.Import.IssueCount, path, result.Import.ID)
}
