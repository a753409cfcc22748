package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-its/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "sercha-its", rootCmd.Use)
}

func TestRootCmd_HasGlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config-dir", "data-dir"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "%s flag should exist", name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, name := range []string{"parse", "import", "imports", "issues", "config", "watch", "mcp", "version"} {
		assert.True(t, names[name], "missing subcommand %s", name)
	}
}

func TestRootCmd_BootstrapsServicesOnDemand(t *testing.T) {
	restore := setupServices(nil, nil)
	defer restore()

	var got Options
	released := false
	SetBootstrap(func(opts Options) (*Services, func(), error) {
		got = opts
		return &Services{Import: &mockImportService{}, Settings: &mockSettingsService{}},
			func() { released = true }, nil
	})
	defer SetBootstrap(nil)

	out, err := execute("--config-dir", "/tmp/cfg", "--data-dir", "/tmp/data", "imports", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No imports stored.")
	assert.Equal(t, Options{ConfigDir: "/tmp/cfg", DataDir: "/tmp/data"}, got)
	assert.True(t, released)
	assert.Nil(t, importService)
}

func TestRootCmd_BootstrapError(t *testing.T) {
	restore := setupServices(nil, nil)
	defer restore()

	SetBootstrap(func(Options) (*Services, func(), error) {
		return nil, nil, errors.New("disk full")
	})
	defer SetBootstrap(nil)

	_, err := execute("imports", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialise")
	assert.Contains(t, err.Error(), "disk full")
}

func TestRootCmd_VersionSkipsBootstrap(t *testing.T) {
	restore := setupServices(nil, nil)
	defer restore()

	called := false
	SetBootstrap(func(Options) (*Services, func(), error) {
		called = true
		return &Services{}, func() {}, nil
	})
	defer SetBootstrap(nil)

	_, err := execute("version")

	require.NoError(t, err)
	assert.False(t, called)
}

func TestRootCmd_InjectedServicesSkipBootstrap(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	SetBootstrap(func(Options) (*Services, func(), error) {
		t.Fatal("bootstrap should not run")
		return nil, nil, nil
	})
	defer SetBootstrap(nil)

	_, err := execute("imports", "list")
	assert.NoError(t, err)
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	defer logger.SetVerbose(false)

	_, err := execute("--verbose", "version")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestSetServices(t *testing.T) {
	restore := setupServices(nil, nil)
	defer restore()

	imp := &mockImportService{}
	SetServices(&Services{Import: imp})
	assert.Equal(t, imp, importService)
	assert.Nil(t, settingsService)

	SetServices(nil)
	assert.Nil(t, importService)
}
