// Package export writes a point-in-time copy of tasks, habits and settings.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatJSON, FormatYAML}

// ParseFormat accepts a format name case-insensitively, including "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want json or yaml)", s)
}

// FormatForPath picks a format from a file extension, falling back to def.
func FormatForPath(path string, def Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return def
}

// Document is the exported file. Tasks and habits use the storage wire format.
type Document struct {
	Version    string         `json:"version" yaml:"version"`
	ExportedAt string         `json:"exportedAt" yaml:"exportedAt"`
	DarkMode   bool           `json:"darkMode" yaml:"darkMode"`
	Stats      models.Stats   `json:"stats" yaml:"stats"`
	Tasks      []models.Task  `json:"tasks" yaml:"tasks"`
	Habits     []models.Habit `json:"habits" yaml:"habits"`
}

// NewDocument builds a Document from the given collections.
func NewDocument(tasks []models.Task, habits []models.Habit, darkMode bool, now time.Time) Document {
	if tasks == nil {
		tasks = []models.Task{}
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return Document{
		Version:    constants.Version,
		ExportedAt: now.UTC().Format(models.CreatedAtFormat),
		DarkMode:   darkMode,
		Stats:      models.ComputeStats(tasks, habits),
		Tasks:      tasks,
		Habits:     habits,
	}
}

// Write encodes doc to w in the given format.
func Write(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// WriteFile writes doc to path, creating parent directories as needed.
func WriteFile(path string, doc Document, format Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := Write(f, doc, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a Document previously produced by Write.
func Read(r io.Reader, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("unsupported export format %q", format)
	}
	return doc, nil
}
