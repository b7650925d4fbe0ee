/* config.go
 * Loads the bot's configuration from a .env file and the environment
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting read from the environment
type Config struct {
	DiscordProdToken string `mapstructure:"DISCORD_PROD_TOKEN"`
	DiscordBetaToken string `mapstructure:"DISCORD_BETA_TOKEN"`
	MongoURI         string `mapstructure:"MONGO_URI"`
	DBName           string `mapstructure:"DB_NAME"`
	Pool             string `mapstructure:"POOL"`
	EntryURL         string `mapstructure:"BRACKET_URL"`
	Rounds           int    `mapstructure:"ROUNDS"`
	LiquipediaWiki   string `mapstructure:"LIQUIPEDIA_WIKI"`
	LiquipediaPage   string `mapstructure:"LIQUIPEDIA_PAGE"`
	LiquipediaAPIKey string `mapstructure:"LIQUIPEDIADB_API_KEY"`
	HTTPAddr         string `mapstructure:"HTTP_ADDR"`
	S3Bucket         string `mapstructure:"S3_BUCKET"`
	S3Prefix         string `mapstructure:"S3_PREFIX"`
	DataDir          string `mapstructure:"DATA_DIR"`
	ScenarioDepth    int    `mapstructure:"SCENARIO_DEPTH"`
	Debug            bool   `mapstructure:"DEBUG"`
}

var defaults = map[string]any{
	"DISCORD_PROD_TOKEN":   "",
	"DISCORD_BETA_TOKEN":   "",
	"MONGO_URI":            "",
	"DB_NAME":              "bracket-bot",
	"POOL":                 "",
	"BRACKET_URL":          "",
	"ROUNDS":               0,
	"LIQUIPEDIA_WIKI":      "",
	"LIQUIPEDIA_PAGE":      "",
	"LIQUIPEDIADB_API_KEY": "",
	"HTTP_ADDR":            ":8080",
	"S3_BUCKET":            "",
	"S3_PREFIX":            "",
	"DATA_DIR":             "",
	"SCENARIO_DEPTH":       3,
	"DEBUG":                false,
}

// Load reads envFile into the process environment if it exists, then binds the environment into a Config.
// Variables already set in the environment take precedence over the file.
// Preconditions: Receives the path of a .env file, which need not exist
// Postconditions: Returns the config, or an error if the file is malformed or a required setting is missing
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings every run needs
func (c *Config) Validate() error {
	switch {
	case c.MongoURI == "":
		return fmt.Errorf("MONGO_URI is required")
	case c.DBName == "":
		return fmt.Errorf("DB_NAME is required")
	case c.Pool == "":
		return fmt.Errorf("POOL is required")
	case c.ScenarioDepth < 0:
		return fmt.Errorf("SCENARIO_DEPTH must not be negative, got %d", c.ScenarioDepth)
	}
	return nil
}

// DiscordToken returns the production or beta bot token
func (c *Config) DiscordToken(test bool) string {
	if test {
		return c.DiscordBetaToken
	}
	return c.DiscordProdToken
}

