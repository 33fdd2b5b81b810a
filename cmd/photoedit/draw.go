package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/photoedit/internal/editor"
	"github.com/example/photoedit/internal/surface"
)

// strokeSep separates strokes in the point list.
const strokeSep = "/"

// drawCmd replays freehand strokes through the drawing engine.
type drawCmd struct {
	*root
	fs        *flag.FlagSet
	src       sourceFlags
	pipe      pipelineFlags
	colorSpec string
	size      float64
	undo      int
	output    string
	dir       string
	strokes   [][]surface.Point
	brush     editor.Brush
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	d.src.register(fs)
	d.pipe.register(fs)
	fs.StringVar(&d.colorSpec, "color", editor.DefaultBrushColor, "brush colour (name or #rrggbb[aa])")
	fs.Float64Var(&d.size, "size", editor.DefaultBrushSize, "brush size in pixels")
	fs.IntVar(&d.undo, "undo", 0, "undo this many strokes before exporting")
	fs.StringVar(&d.output, "output", "", "output file name (default from config, edited-image.png)")
	fs.StringVar(&d.dir, "dir", "", "directory for the output file")
	fs.Usage = usageFunc(d)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	rest := fs.Args()
	var input []string
	if !d.src.fromClipboard && !d.src.grab && len(rest) > 0 {
		input, rest = rest[:1], rest[1:]
	}
	if err := d.src.resolve(input); err != nil {
		return nil, err
	}
	if err := d.pipe.validate(); err != nil {
		return nil, err
	}
	c, err := editor.ParseColor(d.colorSpec)
	if err != nil {
		return nil, err
	}
	if d.size <= 0 {
		return nil, errors.New("-size must be positive")
	}
	if d.undo < 0 {
		return nil, errors.New("-undo cannot be negative")
	}
	d.brush = editor.Brush{Size: d.size, Color: c}
	d.strokes, err = parseStrokes(rest)
	if err != nil {
		return nil, err
	}
	if len(d.strokes) == 0 {
		return nil, errors.New("at least one stroke point is required")
	}
	return d, nil
}

// parseStrokes reads "x,y" points; a "/" argument starts a new stroke.
func parseStrokes(args []string) ([][]surface.Point, error) {
	var out [][]surface.Point
	var cur []surface.Point
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
	}
	for _, arg := range args {
		if arg == strokeSep {
			flush()
			continue
		}
		p, err := parsePoint(arg)
		if err != nil {
			return nil, err
		}
		cur = append(cur, p)
	}
	flush()
	return out, nil
}

func parsePoint(s string) (surface.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return surface.Point{}, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return surface.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return surface.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return surface.Pt(x, y), nil
}

func (d *drawCmd) Run() error {
	ctx, cancel := signalContext()
	defer cancel()

	s, err := d.loadSession(ctx, &d.src, &d.pipe)
	if err != nil {
		return err
	}
	defer s.Close()
	if d.pipe.active() {
		if err := d.pipe.apply(s); err != nil {
			return fmt.Errorf("apply: %w", err)
		}
	}
	if err := d.replay(s); err != nil {
		return err
	}

	dir, name := d.exportTarget(d.output, d.dir)
	path, err := s.Export(dir, name)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	fmt.Fprintf(stdout, "saved %s (%d strokes, %d undone)\n", path, len(d.strokes), min(d.undo, len(d.strokes)))
	d.notifyExport(path)
	return nil
}

// replay draws every stroke and then undoes the requested number.
func (d *drawCmd) replay(s *editor.Session) error {
	if err := s.SetBrush(d.brush); err != nil {
		return err
	}
	s.SetDrawingMode(true)
	for i, pts := range d.strokes {
		if !s.BeginStroke(pts[0]) {
			return fmt.Errorf("stroke %d: drawing unavailable", i+1)
		}
		for _, p := range pts[1:] {
			if _, err := s.MoveStroke(p); err != nil {
				s.EndStroke()
				return fmt.Errorf("stroke %d: %w", i+1, err)
			}
		}
		s.EndStroke()
	}
	for i := 0; i < d.undo; i++ {
		if !s.Undo() {
			break
		}
	}
	return nil
}
