// Package commands is the cobra command tree for the dayplan binary.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dayplan/internal/app"
	"dayplan/internal/config"
	"dayplan/internal/notify"
	"dayplan/internal/reminder"
	"dayplan/internal/storage"
	"dayplan/internal/suggest"
	"dayplan/internal/timeutil"
)

var dataPath string

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dayplan",
		Short:         "Plan your day: tasks, spaces, recurring schedules, and reminders.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&dataPath, "data", "", "data directory (overrides config)")

	addAdd(cmd)
	addList(cmd)
	addSpaces(cmd)
	addComplete(cmd)
	addDelete(cmd)
	addSuggest(cmd)
	addReset(cmd)
	addTUI(cmd)
	addMCP(cmd)
	return cmd
}

// env is the shared runtime behind every subcommand.
type env struct {
	cfg      *config.Config
	store    *storage.Store
	svc      *app.Service
	suggests *suggest.Service
	logger   *slog.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	clock := timeutil.RealClock{}
	store := storage.NewStore(storage.NewDiskvKV(cfg.DataPath), logger)

	// The config key wins; the onboarding-stored profile key is the fallback.
	apiKey := cfg.GeminiAPIKey
	if profile, ok := store.Profile(); ok && apiKey == "" {
		apiKey = profile.GeminiAPIKey
	}
	var generator suggest.Generator
	if apiKey != "" && store.Settings().AISuggestionsEnabled {
		generator = suggest.NewGeminiClient(apiKey, cfg.GeminiModel, cfg.SuggestTimeout)
	}
	suggests := suggest.NewService(generator, suggest.NewCache(clock, suggest.DefaultTTL), cfg.SuggestTimeout)

	// One-shot commands run without a live notification engine; the TUI
	// builds its own engine-backed service via withEngine.
	svc := app.NewService(store, nil, clock, logger, cfg.HorizonDays)

	return &env{cfg: cfg, store: store, svc: svc, suggests: suggests, logger: logger}, nil
}

// withEngine builds the long-running variant: an in-process notification
// engine with reminders synced through it, over the same store.
func (e *env) withEngine() (*app.Service, *notify.Engine) {
	engine := notify.NewEngine(32)
	clock := timeutil.RealClock{}
	reminders := reminder.NewScheduler(engine, e.suggests, clock, e.logger)
	return app.NewService(e.store, reminders, clock, e.logger, e.cfg.HorizonDays), engine
}
