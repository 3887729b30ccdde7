package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", cfg.Persona.Model)
	assert.Equal(t, int64(50000), cfg.Faucet.Amount)
	assert.Equal(t, 30, cfg.Activity.WindowDays)
	assert.Equal(t, 30, cfg.Tiers.Elite)
	assert.Equal(t, 15, cfg.Tiers.Detective)
	assert.Equal(t, 5, cfg.Tiers.Helper)
	assert.Equal(t, 10080, cfg.Bot.AutoArchiveMinutes)
	assert.True(t, cfg.Bot.DiscoveryEmbed)
}
