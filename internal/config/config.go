// Package config loads settings from a .dayplan config file, DAYPLAN_*
// environment variables, and defaults, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// DataPath is the directory the key-value store writes under.
	DataPath string
	// HorizonDays bounds recurring-task expansion.
	HorizonDays int
	// WeekStartsMonday switches week math and the week view between
	// Monday-first and Sunday-first.
	WeekStartsMonday bool
	// GeminiAPIKey enables AI suggestions when non-empty. Also read from
	// GEMINI_API_KEY for parity with the usual Gemini tooling.
	GeminiAPIKey string
	// GeminiModel is the generateContent model name.
	GeminiModel string
	// SuggestTimeout caps one suggestion round trip.
	SuggestTimeout time.Duration
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("data_path", defaultDataPath())
	v.SetDefault("horizon_days", 30)
	v.SetDefault("week_starts_monday", true)
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("suggest_timeout", "10s")

	v.SetConfigName(".dayplan")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("DAYPLAN")
	v.AutomaticEnv()

	if override := os.Getenv("DAYPLAN_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	cfg := &Config{
		DataPath:         v.GetString("data_path"),
		HorizonDays:      v.GetInt("horizon_days"),
		WeekStartsMonday: v.GetBool("week_starts_monday"),
		GeminiAPIKey:     v.GetString("gemini_api_key"),
		GeminiModel:      v.GetString("gemini_model"),
		SuggestTimeout:   v.GetDuration("suggest_timeout"),
	}
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.HorizonDays <= 0 {
		return nil, fmt.Errorf("config: horizon_days must be positive, got %d", cfg.HorizonDays)
	}
	return cfg, nil
}

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dayplan.db"
	}
	return filepath.Join(home, ".dayplan.db")
}
