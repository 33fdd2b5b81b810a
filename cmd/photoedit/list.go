package main

import (
	"flag"
	"fmt"

	"github.com/example/photoedit/internal/adjust"
	"github.com/example/photoedit/internal/filter"
)

type filtersCmd struct {
	*root
	fs *flag.FlagSet
}

func parseFiltersCmd(args []string, r *root) (*filtersCmd, error) {
	fs := flag.NewFlagSet("filters", flag.ExitOnError)
	cmd := &filtersCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *filtersCmd) Run() error {
	fmt.Fprintln(stdout, "available filters:")
	for _, p := range filter.All() {
		fmt.Fprintf(stdout, "  %s\n", p)
	}
	return nil
}

func (c *filtersCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type paramsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseParamsCmd(args []string, r *root) (*paramsCmd, error) {
	fs := flag.NewFlagSet("params", flag.ExitOnError)
	cmd := &paramsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *paramsCmd) Run() error {
	fmt.Fprintf(stdout, "adjustments (applied in this order, range %d..%d, default 0):\n", adjust.Min, adjust.Max)
	for _, name := range adjust.Names() {
		fmt.Fprintf(stdout, "  %s\n", name)
	}
	return nil
}

func (c *paramsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
