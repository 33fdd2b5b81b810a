package main

import (
	"flag"
	"fmt"

	"github.com/example/photoedit/internal/raster"
	"github.com/example/photoedit/internal/stats"
)

// inspectCmd prints channel statistics of an image, optionally after a
// pipeline run.
type inspectCmd struct {
	*root
	fs   *flag.FlagSet
	src  sourceFlags
	pipe pipelineFlags
}

func (i *inspectCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInspectCmd(args []string, r *root) (*inspectCmd, error) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	i := &inspectCmd{root: r, fs: fs}
	i.src.register(fs)
	i.pipe.register(fs)
	fs.Usage = usageFunc(i)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := i.src.resolve(fs.Args()); err != nil {
		return nil, err
	}
	if err := i.pipe.validate(); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *inspectCmd) Run() error {
	ctx, cancel := signalContext()
	defer cancel()

	var buf raster.Buffer
	if i.pipe.active() {
		s, err := i.loadSession(ctx, &i.src, &i.pipe)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := i.pipe.apply(s); err != nil {
			return fmt.Errorf("apply: %w", err)
		}
		buf = raster.FromImage(s.Snapshot())
	} else {
		img, err := i.src.load(ctx)
		if err != nil {
			return err
		}
		buf = raster.FromImage(img)
	}

	report, err := stats.Compute(buf)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", describeSource(&i.src), err)
	}
	fmt.Fprintf(stdout, "source: %s\n", describeSource(&i.src))
	return report.Write(stdout)
}
