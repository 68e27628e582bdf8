// Package export converts task lists to a stable JSON document and
// validates the output against a bundled JSON Schema.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ticklist/ticklist-go/internal/tasklist"
)

// SchemaVersion is the current export document version.
const SchemaVersion = 1

// bundledSchema is the embedded export schema JSON.
const bundledSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Ticklist Export",
  "type": "object",
  "additionalProperties": false,
  "required": ["schema_version", "tasks"],
  "properties": {
    "schema_version": { "type": "integer", "const": 1 },
    "source": { "type": "string" },
    "exported_at": { "type": "string", "format": "date-time" },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["seq", "description", "status"],
        "properties": {
          "seq": { "type": "integer", "minimum": 1 },
          "description": { "type": "string", "minLength": 1 },
          "status": { "type": "string", "enum": ["pending", "completed"] },
          "metadata": {
            "type": "array",
            "items": {
              "type": "object",
              "additionalProperties": false,
              "required": ["key", "value"],
              "properties": {
                "key": { "type": "string", "minLength": 1 },
                "value": { "type": "string" }
              }
            }
          },
          "completed_at": { "type": "string", "format": "date-time" }
        }
      }
    }
  }
}`

// BundledSchema returns the embedded export schema JSON content.
func BundledSchema() []byte {
	return []byte(bundledSchema)
}

// MetaEntry is one ordered metadata pair on an exported task.
type MetaEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Task is one task in an export document.
type Task struct {
	Seq         int         `json:"seq"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	Metadata    []MetaEntry `json:"metadata,omitempty"`
	CompletedAt string      `json:"completed_at,omitempty"`
}

// Document is the top-level export structure.
type Document struct {
	SchemaVersion int    `json:"schema_version"`
	Source        string `json:"source,omitempty"`
	ExportedAt    string `json:"exported_at,omitempty"`
	Tasks         []Task `json:"tasks"`
}

// FromRecords builds an export document from parsed task records.
func FromRecords(records []tasklist.Record, source string, now time.Time) Document {
	doc := Document{
		SchemaVersion: SchemaVersion,
		Source:        source,
		ExportedAt:    now.UTC().Format(time.RFC3339),
		Tasks:         make([]Task, 0, len(records)),
	}
	for _, rec := range records {
		task := Task{
			Seq:         rec.Seq,
			Description: rec.Description,
			Status:      string(rec.Status),
		}
		for _, m := range rec.Meta {
			task.Metadata = append(task.Metadata, MetaEntry{Key: m.Key, Value: m.Value})
		}
		if rec.CompletedAt != nil {
			task.CompletedAt = rec.CompletedAt.UTC().Format(time.RFC3339)
		}
		doc.Tasks = append(doc.Tasks, task)
	}
	return doc
}

// Marshal renders the document as indented JSON with a trailing newline.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export document: %w", err)
	}
	return append(data, '\n'), nil
}

// Validate checks serialized export JSON against the bundled schema.
func Validate(data []byte) error {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("export.schema.json", strings.NewReader(bundledSchema)); err != nil {
		return fmt.Errorf("load export schema: %w", err)
	}
	schema, err := compiler.Compile("export.schema.json")
	if err != nil {
		return fmt.Errorf("compile export schema: %w", err)
	}

	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("parse export document: %w", err)
	}
	if err := schema.Validate(obj); err != nil {
		return fmt.Errorf("export document invalid: %w", err)
	}
	return nil
}
