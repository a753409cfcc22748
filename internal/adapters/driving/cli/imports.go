package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-its/internal/adapters/driving/render"
)

var (
	importsJSON bool
	deleteYes   bool
)

var importsCmd = &cobra.Command{
	Use:   "imports",
	Short: "Manage stored imports",
	Long:  `List, inspect and delete the imports held in the local store.`,
	RunE:  runImportsList,
}

var importsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored imports",
	RunE:  runImportsList,
}

var importsShowCmd = &cobra.Command{
	Use:   "show [import-id]",
	Short: "Show an import",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportsShow,
}

var importsDeleteCmd = &cobra.Command{
	Use:   "delete [import-id]",
	Short: "Delete an import and its issues",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportsDelete,
}

func init() {
	importsListCmd.Flags().BoolVar(&importsJSON, "json", false, "output imports as JSON")
	importsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without confirmation")
	importsCmd.AddCommand(importsListCmd)
	importsCmd.AddCommand(importsShowCmd)
	importsCmd.AddCommand(importsDeleteCmd)
	rootCmd.AddCommand(importsCmd)
}

func runImportsList(cmd *cobra.Command, _ []string) error {
	if importService == nil {
		return fmt.Errorf("import %w", errNotConfigured)
	}

	imports, err := importService.Imports(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list imports: %w", err)
	}

	if importsJSON {
		return printJSON(cmd, imports)
	}

	if len(imports) == 0 {
		cmd.Println("No imports stored.")
		return nil
	}

	cmd.Print(render.ImportList(render.DefaultStyles(), imports))
	return nil
}

func runImportsShow(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return fmt.Errorf("import %w", errNotConfigured)
	}

	ctx := context.Background()
	imp, err := importService.GetImport(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get import: %w", err)
	}

	issues, err := importService.Issues(ctx, imp.ID)
	if err != nil {
		return fmt.Errorf("failed to list issues: %w", err)
	}

	styles := render.DefaultStyles()
	cmd.Println(render.ImportDetail(styles, imp))
	cmd.Print(render.Summary(styles, summarise(issues)))
	return nil
}

func runImportsDelete(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return fmt.Errorf("import %w", errNotConfigured)
	}

	id := args[0]
	if !deleteYes && term.IsTerminal(int(os.Stdin.Fd())) {
		cmd.Printf("Delete import %s and all of its issues? [y/N]: ", id)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := importService.Delete(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete import: %w", err)
	}

	cmd.Printf("Import %s deleted.\n", id)
	return nil
}
