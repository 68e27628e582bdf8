// Package templates provides document skeletons for new task lists.
//
// Templates are bundled with the binary and may be overridden by files
// of the same name in a template directory. They render with
// text/template and strict missing-key behavior.
package templates

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/template"
	"time"
)

const (
	BlankTemplate   = "blank"
	FeatureTemplate = "feature"
	BugfixTemplate  = "bugfix"
)

const bundledBlank = `# {{.Title}}

Created {{.Now}}

- [ ] 1. Describe the first task here
`

const bundledFeature = `# {{.Title}}

Created {{.Now}}

- [ ] 1. Write a short design note for the feature
  leverage: docs/
- [ ] 2. Implement the core change behind the existing interfaces
  requirements: design note approved
- [ ] 3. Add tests covering the new behavior
- [ ] 4. Update user-facing documentation
  requirements: implementation merged
`

const bundledBugfix = `# {{.Title}}

Created {{.Now}}

- [ ] 1. Reproduce the bug with a failing test
- [ ] 2. Fix the underlying cause
  requirements: failing test in place
- [ ] 3. Verify the fix and check for regressions
`

var bundled = map[string]string{
	BlankTemplate:   bundledBlank,
	FeatureTemplate: bundledFeature,
	BugfixTemplate:  bundledBugfix,
}

// Names returns the bundled template names in sorted order.
func Names() []string {
	names := make([]string, 0, len(bundled))
	for name := range bundled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store loads template sources, preferring files in dir over the
// bundled set. An empty dir serves bundled templates only.
type Store struct {
	dir string
}

// NewStore creates a template store with an optional override directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the override directory, which may be empty.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads a template source as a string.
func (s *Store) Load(name string) (string, error) {
	if name == "" {
		return "", errors.New("template name is empty")
	}
	if s.dir != "" {
		path := filepath.Join(s.dir, name+".md")
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read template %q: %w", name, err)
		}
	}
	src, ok := bundled[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}
	return src, nil
}

// Data holds template variables.
type Data struct {
	Title string
	Now   string
}

// NewData builds template data with a UTC timestamp formatted in RFC3339.
func NewData(title string, now time.Time) Data {
	return Data{
		Title: title,
		Now:   now.UTC().Format(time.RFC3339),
	}
}

// Renderer renders templates with strict missing-key behavior.
type Renderer struct {
	store *Store
}

// NewRenderer creates a template renderer.
func NewRenderer(store *Store) *Renderer {
	return &Renderer{store: store}
}

// Render loads and renders a template.
func (r *Renderer) Render(name string, data Data) (string, error) {
	if r == nil || r.store == nil {
		return "", errors.New("template renderer is not initialized")
	}
	if data.Title == "" {
		return "", errors.New("template title is empty")
	}
	raw, err := r.store.Load(name)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %q: %w", name, err)
	}
	return buf.String(), nil
}
