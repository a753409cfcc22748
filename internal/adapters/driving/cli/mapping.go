package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-its/internal/core/ports/driving"
)

// Flag names shared by the commands that read exports.
const (
	flagMapPriority   = "map-priority"
	flagMapType       = "map-type"
	flagMapResolution = "map-resolution"
)

// addMappingFlags registers the per-invocation mapping overrides on cmd.
func addMappingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool(flagMapPriority, false, "map priority labels through the label mapping")
	cmd.Flags().Bool(flagMapType, false, "map issue type labels through the label mapping")
	cmd.Flags().Bool(flagMapResolution, false, "map resolution labels through the label mapping")
}

// mappingOverrides returns overrides for the mapping flags that were set
// explicitly. Unset flags keep the configured value.
func mappingOverrides(cmd *cobra.Command) driving.MappingOverrides {
	return driving.MappingOverrides{
		Priority:   changedBool(cmd, flagMapPriority),
		Type:       changedBool(cmd, flagMapType),
		Resolution: changedBool(cmd, flagMapResolution),
	}
}

func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}
