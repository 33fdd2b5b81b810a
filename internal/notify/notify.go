// Package notify turns editor events into desktop notifications.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/photoedit/internal/config"
	"github.com/example/photoedit/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventExport fires after the canvas is written to disk.
	EventExport Event = "export"
	// EventCopy fires after the canvas is copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences holds the title and per-event message templates. Each
// template takes one %s.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in wording.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "photoedit",
		Templates: map[Event]string{
			EventExport: "Exported %s",
			EventCopy:   "Copied %s to clipboard",
		},
	}
}

// LoadPreferences overlays PHOTOEDIT_NOTIFY_* environment variables on the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PHOTOEDIT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for env, event := range map[string]Event{
		"PHOTOEDIT_NOTIFY_EXPORT_TEXT": EventExport,
		"PHOTOEDIT_NOTIFY_COPY_TEXT":   EventCopy,
	} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// SendFunc delivers a notification.
type SendFunc func(title, body string, opts platform.Options) error

// Notifier sends notifications for enabled events. A nil Notifier is valid
// and sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    SendFunc
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	tmpl := make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		tmpl[k] = v
	}
	return &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: tmpl},
		enabled: make(map[Event]bool),
		send:    platform.Notify,
	}
}

// FromConfig creates a Notifier with events enabled per the [notify]
// section.
func FromConfig(n config.Notify) *Notifier {
	out := New(LoadPreferences())
	out.Enable(EventExport, n.Export)
	out.Enable(EventCopy, n.Copy)
	return out
}

// WithSender replaces the delivery function.
func (n *Notifier) WithSender(fn SendFunc) *Notifier {
	if n != nil && fn != nil {
		n.send = fn
	}
	return n
}

// Enable toggles an event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Export reports a written file, using the file itself as the icon.
func (n *Notifier) Export(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy reports a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
