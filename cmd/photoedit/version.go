package main

import (
	"flag"
	"fmt"
)

type versionCmd struct{ *root }

func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }

func (v *versionCmd) Run() error {
	fmt.Fprintf(stdout, "%s version %s", v.program, version)
	if commit != "" {
		fmt.Fprintf(stdout, " (%s", commit)
		if date != "" {
			fmt.Fprintf(stdout, ", %s", date)
		}
		fmt.Fprint(stdout, ")")
	}
	fmt.Fprintln(stdout)
	return nil
}
