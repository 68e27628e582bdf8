package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// defaults, user config file, project config file, environment variables,
// then CLI flags registered on fs.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	setDefaults(cfg)

	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.JournalDir = DefaultJournalDir
	cfg.LogLevel = "info"
	cfg.LogFormat = "text"
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// parseFlags registers config flags on fs and parses args. Flags override
// every other source.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.TaskFile, "file", cfg.TaskFile, "Task document path")
	fs.StringVar(&cfg.JournalDir, "journal-dir", cfg.JournalDir, "Journal base directory")
	fs.StringVar(&cfg.TemplateDir, "template-dir", cfg.TemplateDir, "Directory of template overrides for init")
	fs.StringVar(&cfg.HookCommand, "hook", cfg.HookCommand, "Command to run after each completion")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	return fs.Parse(args)
}

// finalizeConfig computes derived values and resolves paths.
func finalizeConfig(cfg *Config) error {
	cfg.JournalDir = expandPath(cfg.JournalDir)

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	if !filepath.IsAbs(cfg.TaskFile) {
		cfg.TaskFile = filepath.Join(cfg.ProjectRoot, cfg.TaskFile)
	}

	if cfg.TemplateDir != "" {
		cfg.TemplateDir = expandPath(cfg.TemplateDir)
		if !filepath.IsAbs(cfg.TemplateDir) {
			cfg.TemplateDir = filepath.Join(cfg.ProjectRoot, cfg.TemplateDir)
		}
	}

	return nil
}

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{"ticklist.toml", ".ticklist.toml"}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file. Checks
// ~/.ticklist/ticklist.toml first, then the OS-specific config directory.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, ".ticklist", "ticklist.toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, "ticklist", "ticklist.toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory, or "" if
// it cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}
