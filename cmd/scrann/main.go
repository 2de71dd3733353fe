package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/example/scrann/internal/config"
	"github.com/example/scrann/internal/notify"
	"github.com/example/scrann/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface {
	Run(ctx context.Context) error
}

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	configPath    string
	verbose       bool
	captureAlerts bool
	saveAlerts    bool
	copyAlerts    bool
	themeName     string
	activeTheme   *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	r := &root{
		fs:       flag.NewFlagSet("scrann", flag.ContinueOnError),
		program:  "scrann",
		notifier: notify.New(notify.LoadPreferences(notify.DefaultPreferences())),
		config:   config.New(),
	}
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration `file` to read")
	r.fs.BoolVar(&r.verbose, "v", false, "log tool activity")
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", true, "show a desktop notification after capturing a screenshot")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", true, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", true, "show a desktop notification after copying to the clipboard")
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme `name` (default, dark)")
	r.fs.Usage = usageFunc(r)
	return r
}

// logger returns the debug logger for annotation sessions, or nil when
// verbose output is off.
func (r *root) logger() *log.Logger {
	if r == nil || !r.verbose {
		return nil
	}
	return log.Default()
}

func (r *root) loadConfig() {
	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
		cfg.ApplyEnv()
	}
	r.config = cfg

	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-capture"] {
		r.captureAlerts = cfg.Notify.Capture
	}
	if !set["notify-save"] {
		r.saveAlerts = cfg.Notify.Save
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
	if r.themeName != "" {
		cfg.Theme = r.themeName
	}

	t, err := cfg.ResolveTheme(nil)
	if err != nil {
		if cfg.Theme != "" && cfg.Theme != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", cfg.Theme, err)
		}
		t = theme.Default()
	}
	r.activeTheme = t
}

func (r *root) Run(ctx context.Context, args []string) error {
	if err := r.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: r}
		}
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.loadConfig()
	r.notifier.Enable(notify.EventCapture, r.captureAlerts)
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "annotate":
		cmd, err = parseAnnotateCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	case "help":
		err = &UsageError{of: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run(ctx)
}

func (r *root) subcommand(name string) string {
	if r == nil {
		return "scrann " + name
	}
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	r := newRoot()
	err := r.Run(ctx, os.Args[1:])
	r.notifier.Close()
	stop()
	if err == nil {
		return
	}
	var uerr *UsageError
	switch {
	case errors.As(err, &uerr):
		fmt.Fprintln(os.Stderr, uerr.Error())
		os.Exit(2)
	case errors.Is(err, context.Canceled):
		os.Exit(130)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifyCapture(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Capture(detail, img)
}

func (r *root) notifyStatus(body string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Status(body)
}
