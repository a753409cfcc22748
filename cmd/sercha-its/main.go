// Command sercha-its ingests Jira XML exports into normalised issue records.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/sercha-its/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-its/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-its/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-its/internal/core/services"
	"github.com/custodia-labs/sercha-its/internal/normalisers/jira"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the config store, issue store and parser into services.
func bootstrap(opts cli.Options) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settings := services.NewSettingsService(configStore)

	store, err := sqlite.NewStore(opts.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	parser := jira.NewParser(jira.WithWorkers(settings.Workers()))

	return &cli.Services{
			Import:   services.NewImportService(parser, store.IssueStore(), settings),
			Settings: settings,
		}, func() {
			store.Close() //nolint:errcheck
		}, nil
}
