package config

import (
	"fmt"
	"log"
	"strings"

	"community-bot/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from .env, config.yaml, and the environment, in
// that order; environment variables override file settings. A missing config
// file is fine, a malformed one is fatal. The result is a snapshot: nothing
// reads viper again after startup.
func Load() (*models.Settings, error) {
	// Load environment variables from .env, ignore a missing file.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, skipping.")
	}

	viper.SetConfigName("config") // config file name (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("No config.yaml found, using environment variables and defaults.")
		} else {
			return nil, fmt.Errorf("fatal error reading config file: %w", err)
		}
	}

	var settings models.Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return &settings, nil
}

// Commands returns the commands section (auth lists) of the configuration.
func Commands() (models.CommandsConfig, error) {
	var cfg models.CommandsConfig
	if err := viper.UnmarshalKey("commands", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal commands config: %w", err)
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("database.path", "data/community.db")
	viper.SetDefault("bot.discoveryEmbed", true)
	viper.SetDefault("bot.autoArchiveMinutes", 10080)
	viper.SetDefault("faucet.amount", 50000)
	viper.SetDefault("activity.windowDays", 30)
	viper.SetDefault("tiers.elite", 30)
	viper.SetDefault("tiers.detective", 15)
	viper.SetDefault("tiers.helper", 5)
	viper.SetDefault("persona.model", "gemini-2.0-flash")
}
