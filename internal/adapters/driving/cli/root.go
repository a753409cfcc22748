// Package cli provides the sercha-its command line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-its/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-its/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services holds the driving ports used by the commands.
type Services struct {
	Import   driving.ImportService
	Settings driving.SettingsService
}

// Options carries the global flag values needed to build services.
type Options struct {
	ConfigDir string
	DataDir   string
}

// BootstrapFunc builds the services for a command invocation. The returned
// cleanup function releases whatever the services hold open.
type BootstrapFunc func(opts Options) (*Services, func(), error)

var (
	importService   driving.ImportService
	settingsService driving.SettingsService

	bootstrap BootstrapFunc
	cleanup   func()
)

var (
	verbose   bool
	configDir string
	dataDir   string
)

// errNotConfigured is returned when a command runs without its service.
var errNotConfigured = errors.New("service not configured")

var rootCmd = &cobra.Command{
	Use:   "sercha-its",
	Short: "Ingest issue tracker XML exports",
	Long: `sercha-its reads Jira XML exports and turns every issue item into a
normalised record with canonical status, priority, type and resolution
values. Records can be previewed, stored as imports and served to AI
assistants over MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		teardown()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	flags.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sercha-its)")
	flags.StringVar(&dataDir, "data-dir", "", "data directory (default ~/.sercha-its/data)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects the services used by the commands. Injected services
// take precedence over the bootstrap function.
func SetServices(s *Services) {
	if s == nil {
		importService = nil
		settingsService = nil
		return
	}
	importService = s.Import
	settingsService = s.Settings
}

// SetBootstrap registers the function that builds services on demand.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// Execute runs the root command.
func Execute() error {
	defer teardown()
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd == versionCmd || importService != nil || bootstrap == nil {
		return nil
	}

	logger.Section("Bootstrap")
	services, release, err := bootstrap(Options{ConfigDir: configDir, DataDir: dataDir})
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(services)
	cleanup = release
	return nil
}

func teardown() {
	if cleanup == nil {
		return
	}
	cleanup()
	cleanup = nil
	SetServices(nil)
}
