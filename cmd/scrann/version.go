package main

import (
	"context"
	"flag"
	"fmt"
)

type versionCmd struct{ *root }

func (v *versionCmd) Program() string {
	return v.subcommand("version")
}

func (v *versionCmd) FlagSet() *flag.FlagSet {
	return nil
}

func (v *versionCmd) Run(context.Context) error {
	fmt.Printf("%s version %s\n", v.program, version)
	if commit != "" {
		fmt.Printf("commit %s\n", commit)
	}
	if date != "" {
		fmt.Printf("built %s\n", date)
	}
	return nil
}
