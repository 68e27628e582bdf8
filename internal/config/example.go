package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Ticklist configuration file
# Values can be overridden by TICKLIST_* environment variables or CLI flags

# Task document (relative to project root)
task_file = "to-do.md"

# Journal base directory (supports ~ expansion)
journal_dir = "~/.ticklist"

# Directory of template overrides for 'ticklist init' (optional);
# a <name>.md file there shadows the bundled template of the same name
# template_dir = "templates"

# Command to run after each completion; receives <seq> <description> <document>
# hook_command = "/path/to/hook.sh"

# Logging
log_level = "info"       # debug|info|warn|error
log_format = "text"      # text|json|logfmt
log_timestamps = false
`
}
