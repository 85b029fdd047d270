package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DAYPLAN_CONFIG_PATH", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HorizonDays != 30 {
		t.Errorf("HorizonDays = %d, want 30", cfg.HorizonDays)
	}
	if !cfg.WeekStartsMonday {
		t.Error("WeekStartsMonday should default to true")
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.SuggestTimeout != 10*time.Second {
		t.Errorf("SuggestTimeout = %v, want 10s", cfg.SuggestTimeout)
	}
	if cfg.DataPath == "" {
		t.Error("DataPath should never be empty")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DAYPLAN_CONFIG_PATH", t.TempDir())
	t.Setenv("DAYPLAN_HORIZON_DAYS", "14")
	t.Setenv("DAYPLAN_WEEK_STARTS_MONDAY", "false")
	t.Setenv("DAYPLAN_DATA_PATH", "/tmp/plans")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HorizonDays != 14 {
		t.Errorf("HorizonDays = %d, want 14", cfg.HorizonDays)
	}
	if cfg.WeekStartsMonday {
		t.Error("WeekStartsMonday should be overridden to false")
	}
	if cfg.DataPath != "/tmp/plans" {
		t.Errorf("DataPath = %q", cfg.DataPath)
	}
}

func TestLoadGeminiKeyFallback(t *testing.T) {
	t.Setenv("DAYPLAN_CONFIG_PATH", t.TempDir())
	t.Setenv("DAYPLAN_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "shared-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GeminiAPIKey != "shared-key" {
		t.Errorf("GeminiAPIKey = %q, want the GEMINI_API_KEY fallback", cfg.GeminiAPIKey)
	}
}

func TestLoadRejectsNonPositiveHorizon(t *testing.T) {
	t.Setenv("DAYPLAN_CONFIG_PATH", t.TempDir())
	t.Setenv("DAYPLAN_HORIZON_DAYS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for horizon_days = 0")
	}
}
