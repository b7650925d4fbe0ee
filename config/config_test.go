/* config_test.go
 * Contains unit tests for config.go
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every config key for the duration of a test
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range defaults {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// region Load tests

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("POOL", "march-2022")
	t.Setenv("SCENARIO_DEPTH", "2")
	t.Setenv("DEBUG", "true")
	t.Setenv("DISCORD_BETA_TOKEN", "beta")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "march-2022", cfg.Pool)
	assert.Equal(t, "bracket-bot", cfg.DBName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 2, cfg.ScenarioDepth)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "beta", cfg.DiscordToken(true))
	assert.Equal(t, "", cfg.DiscordToken(false))
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("POOL", "from-environment")

	path := filepath.Join(t.TempDir(), ".env")
	contents := "MONGO_URI=mongodb://file:27017\nPOOL=from-file\nLIQUIPEDIA_PAGE=Tournament/2022\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://file:27017", cfg.MongoURI)
	assert.Equal(t, "from-environment", cfg.Pool)
	assert.Equal(t, "Tournament/2022", cfg.LiquipediaPage)
	assert.Equal(t, 3, cfg.ScenarioDepth)
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("POOL", "pool")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoad_MissingRequired(t *testing.T) {
	clearEnv(t)
	t.Setenv("POOL", "pool")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}

// endregion

// region Validate tests

func TestValidate(t *testing.T) {
	valid := Config{MongoURI: "mongodb://x", DBName: "db", Pool: "p", ScenarioDepth: 3}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing db", func(c *Config) { c.DBName = "" }, "DB_NAME"},
		{"missing pool", func(c *Config) { c.Pool = "" }, "POOL"},
		{"negative depth", func(c *Config) { c.ScenarioDepth = -1 }, "SCENARIO_DEPTH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// endregion
