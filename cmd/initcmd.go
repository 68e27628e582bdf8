package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ticklist/ticklist-go/internal/config"
	"github.com/ticklist/ticklist-go/internal/docstore"
	"github.com/ticklist/ticklist-go/internal/templates"
)

// initCommand creates a task document from a template.
func initCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("ticklist init", flag.ContinueOnError)
	templateName := fs.String("template", templates.BlankTemplate, "Template name (blank|feature|bugfix)")
	writeConfig := fs.Bool("config", false, "Also write an example ticklist.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	title := projectTitle(cfg.ProjectRoot)
	if len(remaining) == 1 {
		title = remaining[0]
	}

	if docstore.Exists(cfg.TaskFile) {
		return fmt.Errorf("task file already exists: %s", cfg.TaskFile)
	}

	renderer := templates.NewRenderer(templates.NewStore(cfg.TemplateDir))
	text, err := renderer.Render(*templateName, templates.NewData(title, time.Now()))
	if err != nil {
		return err
	}
	if err := docstore.Save(cfg.TaskFile, text); err != nil {
		return fmt.Errorf("writing task file: %w", err)
	}
	fmt.Printf("Created %s from the %s template.\n", cfg.TaskFile, *templateName)

	if *writeConfig {
		configPath := filepath.Join(cfg.ProjectRoot, "ticklist.toml")
		if _, err := os.Stat(configPath); err == nil {
			logger.Warn("config file already exists, leaving it alone", "path", configPath)
			return nil
		}
		if err := os.WriteFile(configPath, []byte(config.ExampleConfig()), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
		fmt.Printf("Created %s.\n", configPath)
	}
	return nil
}

// projectTitle derives a human title from the project directory name.
func projectTitle(projectRoot string) string {
	base := filepath.Base(projectRoot)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "Tasks"
	}
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	return strings.TrimSpace(base)
}
