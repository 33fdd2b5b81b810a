package main

import (
	"flag"
	"fmt"

	"github.com/example/photoedit/internal/window"
)

// editCmd opens the desktop editor window.
type editCmd struct {
	*root
	fs     *flag.FlagSet
	src    sourceFlags
	pipe   pipelineFlags
	output string
	dir    string
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	e.src.register(fs)
	e.pipe.register(fs)
	fs.StringVar(&e.output, "output", "", "file name used by Ctrl+S (default from config, edited-image.png)")
	fs.StringVar(&e.dir, "dir", "", "directory used by Ctrl+S")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	// The editor may start empty.
	if len(fs.Args()) > 0 || e.src.fromClipboard || e.src.grab {
		if err := e.src.resolve(fs.Args()); err != nil {
			return nil, err
		}
	} else if e.src.monitor != "" {
		return nil, fmt.Errorf("-monitor requires -capture")
	}
	if err := e.pipe.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *editCmd) hasSource() bool {
	return e.src.file != "" || e.src.fromClipboard || e.src.grab
}

func (e *editCmd) Run() error {
	ctx, cancel := signalContext()
	defer cancel()

	s, err := e.newSession(e.pipe.maxWidth, e.pipe.maxHeight)
	if err != nil {
		return err
	}
	if e.hasSource() {
		img, err := e.src.load(ctx)
		if err != nil {
			return err
		}
		if err := s.Load(img); err != nil {
			return err
		}
		if e.pipe.active() {
			if err := e.pipe.apply(s); err != nil {
				return fmt.Errorf("apply: %w", err)
			}
		}
	}

	dir, name := e.exportTarget(e.output, e.dir)
	w := window.New(s,
		window.WithTheme(e.activeTheme),
		window.WithExport(dir, name),
		window.WithNotifier(e.notifier),
		window.WithTitle(fmt.Sprintf("%s - %s", e.program, e.windowTitle())),
	)
	w.Run()
	return nil
}

func (e *editCmd) windowTitle() string {
	if !e.hasSource() {
		return "untitled"
	}
	return describeSource(&e.src)
}
