package main

import (
	"fmt"
	"strings"

	"github.com/example/scrann/internal/appstate"
)

type titleOptions struct {
	File   string
	Output string
}

// windowTitle names the window after the image being annotated. The save
// target is shown when it differs from the opened file.
func windowTitle(opts titleOptions) string {
	parts := []string{appstate.ProgramTitle}

	file := strings.TrimSpace(opts.File)
	if file == "" {
		file = "clipboard"
	}
	parts = append(parts, file)

	output := strings.TrimSpace(opts.Output)
	if output != "" && output != strings.TrimSpace(opts.File) {
		parts = append(parts, fmt.Sprintf("saves to %s", output))
	}

	if v := strings.TrimSpace(version); v != "" && v != "dev" {
		parts = append(parts, fmt.Sprintf("v%s", v))
	}

	return strings.Join(parts, " - ")
}
