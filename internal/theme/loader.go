package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvVar overrides the configured theme name.
const EnvVar = "PHOTOEDIT_THEME"

// Loader finds themes by name or path.
type Loader struct {
	ConfigDir string
	SystemDir string
	// Extra holds themes defined inline in the config file.
	Extra map[string]*Theme
}

// NewLoader returns a loader using the standard directories.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "photoedit", "themes"),
		SystemDir: "/usr/share/photoedit/themes",
	}
}

// Resolve picks the theme name from the environment, then the config, and
// loads it.
func (l *Loader) Resolve(configured string) (*Theme, error) {
	name := configured
	if env := strings.TrimSpace(os.Getenv(EnvVar)); env != "" {
		name = env
	}
	return l.Load(name)
}

// Load looks name up as a file path, a config-defined theme, a built-in
// theme, then a .theme file in ConfigDir and SystemDir. The empty name
// yields Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFile(name)
	}
	if t, ok := l.Extra[name]; ok {
		c := *t
		return &c, nil
	}
	if t, ok := Builtin(strings.ToLower(name)); ok {
		return t, nil
	}
	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, filename)
		if _, err := os.Stat(p); err == nil {
			return parseFile(p)
		}
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
