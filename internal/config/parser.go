package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/photoedit/internal/theme"
)

// Parse reads configuration from r. Unknown keys are ignored; malformed
// values are errors.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		// Theme colours may start with '#', so split on '=' before ':'.
		sep := "="
		if !strings.Contains(line, "=") {
			sep = ":"
		}
		key, value, ok := strings.Cut(line, sep)
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case current != nil:
			err = current.Set(key, value)
		case section == "":
			if key == "theme" {
				cfg.Theme = value
			}
		case section == "editor":
			err = setEditorField(&cfg.Editor, key, value)
		case section == "brush":
			err = setBrushField(&cfg.Brush, key, value)
		case section == "export":
			setExportField(&cfg.Export, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			name := section
			if name == "" {
				name = "root"
			}
			return nil, fmt.Errorf("line %d [%s]: %w", lineNo, name, err)
		}
	}
	return cfg, scanner.Err()
}

func positiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("key %s must not be negative", key)
	}
	return n, nil
}

func setEditorField(e *Editor, key, value string) error {
	var dst *int
	switch key {
	case "max_width":
		dst = &e.MaxWidth
	case "max_height":
		dst = &e.MaxHeight
	case "debounce_ms":
		dst = &e.DebounceMS
	case "history_limit":
		dst = &e.HistoryLimit
	default:
		return nil
	}
	n, err := positiveInt(key, value)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setBrushField(b *Brush, key, value string) error {
	switch key {
	case "size":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
		if v <= 0 {
			return fmt.Errorf("key %s must be positive", key)
		}
		b.Size = v
	case "color":
		b.Color = value
	}
	return nil
}

func setExportField(e *Export, key, value string) {
	switch key {
	case "file":
		e.File = value
	case "dir":
		e.Dir = value
	}
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch key {
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}
