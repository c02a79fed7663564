package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/mediamatch/internal/config"
	"github.com/amaumene/mediamatch/internal/constants"
)

func TestNewContainer(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = constants.StorageDriverMemory
	require.NoError(t, cfg.Validate())

	c, err := NewContainer(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, c.Catalog)
	require.NotNil(t, c.Account)
	assert.False(t, c.Account.IsAuthenticated())

	require.NoError(t, c.Start(context.Background()))
	assert.NoError(t, c.Close())
}

func TestNewContainerUnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "sqlite"
	_, err := NewContainer(cfg, nil)
	assert.Error(t, err)
}
