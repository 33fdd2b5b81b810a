package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/example/photoedit/internal/editor"
)

// applyCmd runs the adjustment pipeline headlessly and exports the result.
type applyCmd struct {
	*root
	fs          *flag.FlagSet
	src         sourceFlags
	pipe        pipelineFlags
	output      string
	dir         string
	dataURI     bool
	toClipboard bool
}

func (a *applyCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseApplyCmd(args []string, r *root) (*applyCmd, error) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	a := &applyCmd{root: r, fs: fs}
	a.src.register(fs)
	a.pipe.register(fs)
	fs.StringVar(&a.output, "output", "", "output file name (default from config, edited-image.png)")
	fs.StringVar(&a.dir, "dir", "", "directory for the output file")
	fs.BoolVar(&a.dataURI, "data-uri", false, "print the result as a PNG data URI instead of writing a file")
	fs.BoolVar(&a.toClipboard, "to-clipboard", false, "copy the result to the clipboard instead of writing a file")
	fs.Usage = usageFunc(a)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := a.src.resolve(fs.Args()); err != nil {
		return nil, err
	}
	if err := a.pipe.validate(); err != nil {
		return nil, err
	}
	if a.dataURI && a.toClipboard {
		return nil, errors.New("-data-uri and -to-clipboard cannot be combined")
	}
	if (a.dataURI || a.toClipboard) && (a.output != "" || a.dir != "") {
		return nil, errors.New("-output and -dir only apply when writing a file")
	}
	return a, nil
}

func (a *applyCmd) Run() error {
	ctx, cancel := signalContext()
	defer cancel()

	s, err := a.loadSession(ctx, &a.src, &a.pipe)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := a.pipe.apply(s); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	return a.emit(s)
}

// emit delivers the canvas per the output flags.
func (a *applyCmd) emit(s *editor.Session) error {
	switch {
	case a.dataURI:
		uri, err := s.DataURI()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, uri)
		return nil
	case a.toClipboard:
		img := s.Snapshot()
		if img == nil {
			return editor.ErrNoImage
		}
		if err := writeClipboardFn(img); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "copied image to clipboard")
		a.notifyCopy(describeSource(&a.src))
		return nil
	}
	dir, name := a.exportTarget(a.output, a.dir)
	path, err := s.Export(dir, name)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", path)
	a.notifyExport(path)
	return nil
}
