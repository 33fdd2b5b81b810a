// Package config reads and writes the photoedit rc file.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/photoedit/internal/theme"
)

// Editor holds rendering and history settings.
type Editor struct {
	MaxWidth     int
	MaxHeight    int
	DebounceMS   int
	HistoryLimit int
}

// Brush holds the default brush.
type Brush struct {
	Size  float64
	Color string
}

// Export holds where exports are written.
type Export struct {
	File string
	Dir  string
}

// Notify holds desktop notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme  string
	Editor Editor
	Brush  Brush
	Export Export
	Notify Notify
	Themes map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // empty falls back to the environment, then the default theme
		Editor: Editor{
			MaxWidth:     800,
			MaxHeight:    600,
			DebounceMS:   16,
			HistoryLimit: 20,
		},
		Brush:  Brush{Size: 5, Color: "#ff0000"},
		Export: Export{File: "edited-image.png"},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in rc format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n\n", c.Theme)
	}

	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "max_width = %d\n", c.Editor.MaxWidth)
	fmt.Fprintf(&sb, "max_height = %d\n", c.Editor.MaxHeight)
	fmt.Fprintf(&sb, "debounce_ms = %d\n", c.Editor.DebounceMS)
	fmt.Fprintf(&sb, "history_limit = %d\n", c.Editor.HistoryLimit)
	sb.WriteString("\n")

	sb.WriteString("[brush]\n")
	fmt.Fprintf(&sb, "size = %g\n", c.Brush.Size)
	fmt.Fprintf(&sb, "color = %s\n", c.Brush.Color)
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "file = %s\n", c.Export.File)
	if c.Export.Dir != "" {
		fmt.Fprintf(&sb, "dir = %s\n", c.Export.Dir)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "\n[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, kv := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", kv[0], kv[1])
		}
	}
	return sb.String()
}
