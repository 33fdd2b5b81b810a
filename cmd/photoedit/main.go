package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/example/photoedit/internal/config"
	"github.com/example/photoedit/internal/editor"
	"github.com/example/photoedit/internal/notify"
	"github.com/example/photoedit/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

// stdout receives command output.
var stdout io.Writer = os.Stdout

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	activeTheme  *theme.Theme
}

func (r *root) Program() string {
	if r == nil || r.program == "" {
		return "photoedit"
	}
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("photoedit", flag.ExitOnError),
		program:  "photoedit",
		notifier: notify.FromConfig(cfg.Notify),
		config:   cfg,
	}
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "editor window theme (light, dark, or a .theme file)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Enable(notify.EventExport, r.exportAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	r.activeTheme = r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "apply":
		cmd, err = parseApplyCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "inspect":
		cmd, err = parseInspectCmd(subArgs, r)
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "filters":
		cmd, err = parseFiltersCmd(subArgs, r)
	case "params":
		cmd, err = parseParamsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) loadTheme() *theme.Theme {
	loader := theme.NewLoader()
	loader.Extra = r.config.Themes
	var (
		t   *theme.Theme
		err error
	)
	if r.themeName != "" {
		t, err = loader.Load(r.themeName)
	} else {
		t, err = loader.Resolve(r.config.Theme)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v. using default.\n", err)
		return theme.Default()
	}
	return t
}

// newSession builds an editor session from the configuration. Limits of
// zero fall back to the configured viewport.
func (r *root) newSession(maxW, maxH int) (*editor.Session, error) {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	if maxW == 0 {
		maxW = cfg.Editor.MaxWidth
	}
	if maxH == 0 {
		maxH = cfg.Editor.MaxHeight
	}
	brush := editor.DefaultBrush()
	if strings.TrimSpace(cfg.Brush.Color) != "" {
		c, err := editor.ParseColor(cfg.Brush.Color)
		if err != nil {
			return nil, fmt.Errorf("config brush: %w", err)
		}
		brush.Color = c
	}
	if cfg.Brush.Size > 0 {
		brush.Size = cfg.Brush.Size
	}
	return editor.New(
		editor.WithMaxSize(maxW, maxH),
		editor.WithDebounce(time.Duration(cfg.Editor.DebounceMS)*time.Millisecond),
		editor.WithHistoryLimit(cfg.Editor.HistoryLimit),
		editor.WithBrush(brush),
		editor.WithErrorHandler(func(err error) { log.Printf("render: %v", err) }),
	), nil
}

func (r *root) exportTarget(output, dir string) (string, string) {
	if output == "" && r.config != nil {
		output = r.config.Export.File
	}
	if dir == "" && r.config != nil {
		dir = r.config.Export.Dir
	}
	return dir, output
}

func (r *root) notifyExport(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
