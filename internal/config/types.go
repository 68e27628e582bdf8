package config

// Default values.
const (
	DefaultTaskFile   = "to-do.md"
	DefaultJournalDir = "~/.ticklist"
)

// Config holds the full configuration for ticklist.
type Config struct {
	// Paths
	TaskFile    string `toml:"task_file"`
	JournalDir  string `toml:"journal_dir"`
	TemplateDir string `toml:"template_dir"`

	// Hooks
	HookCommand string `toml:"hook_command"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}
