package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-its/internal/adapters/driving/render"
	"github.com/custodia-labs/sercha-its/internal/core/domain"
)

var (
	issuesJSON   bool
	issuesStatus string
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Browse the issues of a stored import",
}

var issuesListCmd = &cobra.Command{
	Use:   "list [import-id]",
	Short: "List the issues of an import",
	Long: `Lists the issues of an import in export order.
Use --status to only show issues with one status, e.g. --status OPEN.`,
	Args: cobra.ExactArgs(1),
	RunE: runIssuesList,
}

var issuesShowCmd = &cobra.Command{
	Use:   "show [import-id] [issue-key]",
	Short: "Show one issue",
	Args:  cobra.ExactArgs(2),
	RunE:  runIssuesShow,
}

func init() {
	issuesListCmd.Flags().BoolVar(&issuesJSON, "json", false, "output issues as JSON")
	issuesListCmd.Flags().StringVarP(&issuesStatus, "status", "s", "", "only list issues with this status")
	issuesShowCmd.Flags().BoolVar(&issuesJSON, "json", false, "output the issue as JSON")
	issuesCmd.AddCommand(issuesListCmd)
	issuesCmd.AddCommand(issuesShowCmd)
	rootCmd.AddCommand(issuesCmd)
}

func runIssuesList(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return fmt.Errorf("import %w", errNotConfigured)
	}

	issues, err := importService.Issues(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list issues: %w", err)
	}

	if issuesStatus != "" {
		status, ok := domain.ParseStatus(issuesStatus)
		if !ok {
			return fmt.Errorf("unknown status %q", issuesStatus)
		}
		issues = filterStatus(issues, status)
	}

	if issuesJSON {
		return printJSON(cmd, issues)
	}

	if len(issues) == 0 {
		cmd.Println("No issues found.")
		return nil
	}

	cmd.Println(render.IssueTable(render.DefaultStyles(), issues))
	return nil
}

func runIssuesShow(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return fmt.Errorf("import %w", errNotConfigured)
	}

	issue, err := importService.Issue(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to get issue: %w", err)
	}

	if issuesJSON {
		return printJSON(cmd, issue)
	}

	cmd.Print(render.IssueDetail(render.DefaultStyles(), issue))
	return nil
}

func filterStatus(issues []domain.Issue, status domain.Status) []domain.Issue {
	filtered := make([]domain.Issue, 0, len(issues))
	for i := range issues {
		if issues[i].Status == status {
			filtered = append(filtered, issues[i])
		}
	}
	return filtered
}

func summarise(issues []domain.Issue) domain.ImportSummary {
	return domain.Summarise(issues)
}

// printJSON writes v to stdout; cobra's Println goes to stderr.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
