package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

// helpTemplates parses every help page once. Pages are named after their
// file, e.g. "draw.txt".
var helpTemplates = sync.OnceValues(func() (*template.Template, error) {
	return template.New("help").Funcs(template.FuncMap{"flags": flagEntries}).ParseFS(helpFS, "templates/*.txt")
})

// flagEntry is one line of a help page's flag listing.
type flagEntry struct {
	Name     string
	Arg      string
	DefValue string
	Usage    string
}

// flagEntries lists fs in lexical order. Arg is the value placeholder taken
// from a back-quoted word in the usage text, empty for boolean flags.
func flagEntries(fs *flag.FlagSet) []flagEntry {
	var out []flagEntry
	if fs == nil {
		return out
	}
	fs.VisitAll(func(f *flag.Flag) {
		arg, usage := flag.UnquoteUsage(f)
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			arg = ""
		}
		def := f.DefValue
		if def == "false" || def == "0" {
			def = ""
		}
		out = append(out, flagEntry{Name: f.Name, Arg: arg, DefValue: def, Usage: usage})
	})
	return out
}

// HelpData is implemented by every command that has a help page.
type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

// UsageError reports a command line problem by rendering the command's help.
type UsageError struct {
	of  HelpData
	msg string
}

func (e *UsageError) Error() string {
	help, err := renderHelp(e.of)
	if err != nil {
		help = fmt.Sprintf("help for %s unavailable: %v\n", e.of.Program(), err)
	}
	if e.msg == "" {
		return help
	}
	return e.msg + "\n\n" + help
}

func renderHelp(h HelpData) (string, error) {
	t, err := helpTemplates()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, h.Template(), h); err != nil {
		return "", fmt.Errorf("render %s: %w", h.Template(), err)
	}
	return buf.String(), nil
}

// usageFunc is installed as a FlagSet's Usage so -h prints the help page.
func usageFunc(h HelpData) func() {
	return func() {
		help, err := renderHelp(h)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		fmt.Fprint(os.Stderr, help)
	}
}

func (r *root) Template() string { return "root.txt" }
func (a *annotateCmd) Template() string { return "annotate.txt" }
func (d *drawCmd) Template() string { return "draw.txt" }
func (c *configCmd) Template() string { return "config.txt" }
func (v *versionCmd) Template() string { return "version.txt" }
