package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_LockTTLs(t *testing.T) {
	t.Setenv("TOKEN_LOCK_TTL", "45s")
	t.Setenv("SYNC_LOCK_TTL", "40m")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.TokenLockTTL)
	assert.Equal(t, 40*time.Minute, cfg.SyncLockTTL)
}

func TestLoadConfig_InvalidSyncLockTTLFallsBack(t *testing.T) {
	t.Setenv("SYNC_LOCK_TTL", "forever")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.SyncLockTTL)
}
