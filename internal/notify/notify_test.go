package notify

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/photoedit/internal/config"
	"github.com/example/photoedit/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func recorder(out *[]sent) SendFunc {
	return func(title, body string, opts platform.Options) error {
		*out = append(*out, sent{title, body, opts})
		return nil
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Copy("image")
	n.Export("x.png")
	if len(got) != 0 {
		t.Fatalf("sent %d notifications while disabled", len(got))
	}
	var nilNotifier *Notifier
	nilNotifier.Copy("image")
	nilNotifier.Enable(EventCopy, true)
}

func TestExportUsesFileAsIcon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edited-image.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	var got []sent
	n := FromConfig(config.Notify{Export: true}).WithSender(recorder(&got))
	n.Export(path)
	n.Copy("")
	if len(got) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(got))
	}
	if got[0].opts.IconPath != path || !strings.Contains(got[0].body, path) {
		t.Fatalf("unexpected notification %+v", got[0])
	}
}

func TestCopyTemplateFromEnv(t *testing.T) {
	t.Setenv("PHOTOEDIT_NOTIFY_COPY_TEXT", "clip: %s")
	t.Setenv("PHOTOEDIT_NOTIFY_TITLE", "Editor")
	var got []sent
	n := FromConfig(config.Notify{Copy: true}).WithSender(recorder(&got))
	n.Copy("")
	if len(got) != 1 || got[0].body != "clip: image" || got[0].title != "Editor" {
		t.Fatalf("unexpected notifications %+v", got)
	}
}

func TestSendErrorIsLoggedNotReturned(t *testing.T) {
	n := New(DefaultPreferences()).WithSender(func(string, string, platform.Options) error {
		return errors.New("no bus")
	})
	n.Enable(EventCopy, true)
	n.Copy("image")
}
