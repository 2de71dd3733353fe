package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"path/filepath"

	"github.com/example/scrann/internal/annotate"
	"github.com/example/scrann/internal/appstate"
	"github.com/example/scrann/internal/capture"
	"github.com/example/scrann/internal/clipboard"
	"github.com/example/scrann/internal/imagefile"
)

var (
	resolveFn       = capture.Resolve
	readClipboardFn = clipboard.ReadImage
	runUIFn         = func(ctx context.Context, st *appstate.AppState) error { return st.Run(ctx) }
)

// annotateCmd opens an image, capturing one first when needed, in the
// annotation window.
type annotateCmd struct {
	*root
	fs            *flag.FlagSet
	program       string
	file          string
	output        string
	colorSpec     string
	fromClipboard bool
	retries       int
}

func (a *annotateCmd) Program() string {
	return a.program
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	a := &annotateCmd{root: r, fs: fs, program: r.subcommand("annotate")}
	fs.Usage = usageFunc(a)
	fs.StringVar(&a.output, "output", "", "`path` written on save (defaults to the config output, then the opened file)")
	fs.StringVar(&a.colorSpec, "color", "", "initial drawing `color` name or hex value")
	fs.BoolVar(&a.fromClipboard, "from-clipboard", false, "read the image from the clipboard")
	fs.IntVar(&a.retries, "retries", 0, "screenshot attempts before giving up (defaults to the config value)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: a}
		}
		return nil, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		a.file = fs.Arg(0)
	default:
		return nil, &UsageError{of: a, msg: "annotate takes at most one file"}
	}
	if a.fromClipboard && a.file != "" {
		return nil, fmt.Errorf("-from-clipboard cannot be used with a file argument")
	}
	return a, nil
}

func (a *annotateCmd) Run(ctx context.Context) error {
	img, path, err := a.load(ctx)
	if err != nil {
		return err
	}

	col, err := a.color()
	if err != nil {
		return err
	}
	session := annotate.NewSession(img, annotate.WithColor(col), annotate.WithLogger(a.logger()))

	output := a.output
	if output == "" && a.config != nil {
		output = a.config.Output
	}
	if output == "" {
		output = path
	}
	if output == "" {
		return fmt.Errorf("-output is required when reading from the clipboard")
	}

	opts := []appstate.Option{
		appstate.WithOutput(output),
		appstate.WithTitle(windowTitle(titleOptions{File: path, Output: output})),
	}
	if a.activeTheme != nil {
		opts = append(opts, appstate.WithTheme(a.activeTheme))
	}
	if a.notifier != nil {
		opts = append(opts, appstate.WithNotifier(a.notifier))
	}
	return runUIFn(ctx, appstate.New(session, opts...))
}

// load returns the image to annotate and the path it came from. The path
// is empty for clipboard input.
func (a *annotateCmd) load(ctx context.Context) (*image.RGBA, string, error) {
	if a.fromClipboard {
		img, err := readClipboardFn()
		if err != nil {
			return nil, "", fmt.Errorf("read clipboard image: %w", err)
		}
		return img, "", nil
	}

	acq := &capture.Acquirer{Notify: a.notifyStatus, Retries: a.retries}
	if acq.Retries < 1 && a.config != nil {
		acq.Retries = a.config.CaptureRetries
	}
	path, err := resolveFn(ctx, a.file, acq)
	if err != nil {
		return nil, "", fmt.Errorf("capture screenshot: %w", err)
	}
	img, err := imagefile.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("load %s: %w", path, err)
	}
	if path != a.file {
		a.notifyCapture(filepath.Base(path), img)
	}
	return img, path, nil
}

func (a *annotateCmd) color() (annotate.Color, error) {
	spec := a.colorSpec
	if spec == "" && a.config != nil {
		spec = a.config.Color
	}
	if spec == "" {
		return annotate.DefaultColor, nil
	}
	c, err := annotate.ParseColor(spec)
	if err != nil {
		return annotate.Color{}, fmt.Errorf("color: %w", err)
	}
	return c, nil
}
