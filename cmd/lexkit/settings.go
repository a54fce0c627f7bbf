package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lexkit/internal/config"
	"lexkit/internal/driver"
)

// settings is lexkit.toml with command-line overrides applied.
type settings struct {
	driver  driver.Options
	format  string
	trivia  bool
	timings bool
	ui      string
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}

// resolveSettings merges the config file with flags. A flag wins only when
// it was set explicitly.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return settings{}, err
	}
	return applyFlags(cmd, cfg)
}

func applyFlags(cmd *cobra.Command, cfg config.Config) (settings, error) {
	flags := cmd.Flags()
	persistent := cmd.Root().PersistentFlags()

	if flags.Changed("grammar") {
		cfg.Lexer.Grammar, _ = flags.GetString("grammar")
	}
	if flags.Changed("log") {
		cfg.Lexer.Log, _ = flags.GetBool("log")
	}
	if flags.Changed("nfc") {
		cfg.Lexer.NormalizeNFC, _ = flags.GetBool("nfc")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("jobs") {
		cfg.Run.Jobs, _ = flags.GetInt("jobs")
	}
	if persistent.Changed("max-diagnostics") {
		cfg.Output.MaxDiagnostics, _ = persistent.GetInt("max-diagnostics")
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	s := settings{
		driver: driver.OptionsFromConfig(cfg),
		format: cfg.Output.Format,
	}
	s.driver.Ext, _ = flags.GetString("ext")
	s.trivia, _ = flags.GetBool("trivia")
	s.ui, _ = flags.GetString("ui")
	switch s.ui {
	case "auto", "on", "off":
	default:
		return settings{}, fmt.Errorf("invalid settings: ui must be auto, on or off, got %q", s.ui)
	}
	s.timings, _ = persistent.GetBool("timings")
	// trivia can only be shown from the log
	if s.trivia {
		s.driver.Log = true
	}
	return s, nil
}
