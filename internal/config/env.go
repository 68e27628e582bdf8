package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TICKLIST_FILE"); v != "" {
		cfg.TaskFile = v
	}
	if v := os.Getenv("TICKLIST_JOURNAL_DIR"); v != "" {
		cfg.JournalDir = v
	}
	if v := os.Getenv("TICKLIST_TEMPLATE_DIR"); v != "" {
		cfg.TemplateDir = v
	}
	if v := os.Getenv("TICKLIST_HOOK"); v != "" {
		cfg.HookCommand = v
	}
	if v := os.Getenv("TICKLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TICKLIST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TICKLIST_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
}

func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
