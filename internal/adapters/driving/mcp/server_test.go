package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil import service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingImportService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Import: &mockImportService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil import service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingImportService)
	})

	t.Run("import only is valid", func(t *testing.T) {
		ports := &Ports{
			Import: &mockImportService{},
		}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Import:   &mockImportService{},
			Settings: &mockSettingsService{},
		}
		assert.NoError(t, ports.Validate())
	})
}
