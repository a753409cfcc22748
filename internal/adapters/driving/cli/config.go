package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
)

var mapRemove bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the label mapping configuration",
	Long: `View and edit the label mapping dictionary and the fields it applies to.

Settings are stored in ~/.sercha-its/config.toml unless --config-dir is set.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Available keys:
  mapping.priority    - map priority labels (true/false)
  mapping.type        - map issue type labels (true/false)
  mapping.resolution  - map resolution labels (true/false)
  import.workers      - number of items mapped concurrently (>= 1)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configMapCmd = &cobra.Command{
	Use:   "map [category] [labels...]",
	Short: "Map source labels onto a category",
	Long: `Replace the labels of a category in the label mapping dictionary.
New categories are appended; earlier categories win when a label is listed twice.

Examples:
  sercha-its config map HIGH Critical Blocker
  sercha-its config map HIGH --remove`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConfigMap,
}

func init() {
	configMapCmd.Flags().BoolVar(&mapRemove, "remove", false, "remove the category from the dictionary")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configMapCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings %w", errNotConfigured)
	}

	opts, err := settingsService.MappingOptions()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[Mapping]")
	cmd.Printf("  Priority:   %s\n", enabledText(opts.PriorityEnabled))
	cmd.Printf("  Type:       %s\n", enabledText(opts.TypeEnabled))
	cmd.Printf("  Resolution: %s\n", enabledText(opts.ResolutionEnabled))
	cmd.Println()

	cmd.Println("[Label Mapping]")
	if opts.Mapping.Len() == 0 {
		cmd.Println("  (empty)")
	}
	for _, entry := range opts.Mapping.Entries() {
		cmd.Printf("  %s: %s\n", entry.Category, strings.Join(entry.Labels, ", "))
	}
	cmd.Println()

	cmd.Println("[Import]")
	cmd.Printf("  Workers: %d\n", settingsService.Workers())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings %w", errNotConfigured)
	}

	key, value := args[0], args[1]

	if key == "import.workers" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid worker count %q", value)
		}
		if err := settingsService.SetWorkers(n); err != nil {
			return fmt.Errorf("failed to set workers: %w", err)
		}
		cmd.Printf("Workers set to %d\n", n)
		return nil
	}

	field, ok := strings.CutPrefix(key, "mapping.")
	if !ok || !domain.MappedField(field).IsValid() {
		return fmt.Errorf("unknown key %q", key)
	}

	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: expected true or false", value, key)
	}
	if err := settingsService.SetMappingEnabled(domain.MappedField(field), enabled); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s mapping %s\n", field, enabledText(enabled))
	return nil
}

func runConfigMap(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings %w", errNotConfigured)
	}

	category := args[0]

	if mapRemove {
		if err := settingsService.RemoveLabelMapping(category); err != nil {
			return fmt.Errorf("failed to remove %s: %w", category, err)
		}
		cmd.Printf("Removed %s from label mapping\n", category)
		return nil
	}

	labels := args[1:]
	if len(labels) == 0 {
		return fmt.Errorf("at least one label is required for %s", category)
	}
	if err := settingsService.SetLabelMapping(category, labels); err != nil {
		return fmt.Errorf("failed to map %s: %w", category, err)
	}

	cmd.Printf("Mapped %s -> %s\n", strings.Join(labels, ", "), category)
	return nil
}

func enabledText(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
