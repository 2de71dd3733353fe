package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/scrann/internal/annotate"
	"github.com/example/scrann/internal/clipboard"
	"github.com/example/scrann/internal/imagefile"
)

// drawCmd replays annotation operations on an image without opening a
// window.
type drawCmd struct {
	*root
	fs            *flag.FlagSet
	program       string
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	colorSpec     string
	color         annotate.Color
	ops           []drawOp
}

func (d *drawCmd) Program() string {
	return d.program
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

// drawOp is one parsed operation token.
type drawOp struct {
	token  string
	kind   string // "tool", "color" or "undo"
	tool   annotate.Kind
	points []annotate.Point
	color  annotate.Color
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	d := &drawCmd{root: r, fs: fs, program: r.subcommand("draw")}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "input image `file`")
	fs.StringVar(&d.output, "output", "", "output `path` (defaults to input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.StringVar(&d.colorSpec, "color", "", "initial `color` name or hex value")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: d}
		}
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: d, msg: "no operations given"}
	}
	for _, tok := range fs.Args() {
		op, err := parseDrawOp(tok)
		if err != nil {
			return nil, err
		}
		d.ops = append(d.ops, op)
	}

	spec := d.colorSpec
	if spec == "" && r != nil && r.config != nil {
		spec = r.config.Color
	}
	d.color = annotate.DefaultColor
	if spec != "" {
		c, err := annotate.ParseColor(spec)
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		d.color = c
	}

	if d.fromClipboard {
		if d.file != "" {
			return nil, fmt.Errorf("-from-clipboard cannot be used with -file")
		}
		if d.output == "" && !d.toClipboard {
			return nil, fmt.Errorf("output file is required when reading from the clipboard")
		}
	} else {
		if d.file == "" {
			return nil, fmt.Errorf("input file is required")
		}
		if d.output == "" {
			d.output = d.file
		}
	}
	return d, nil
}

// parseDrawOp parses tokens such as "pen:1,2:3,4", "rect:0,0:10,10",
// "crop:5,5:50,40", "color:blue" and "undo".
func parseDrawOp(tok string) (drawOp, error) {
	op := drawOp{token: tok}
	name, rest, _ := strings.Cut(tok, ":")
	switch strings.ToLower(name) {
	case "undo":
		if rest != "" {
			return op, fmt.Errorf("%s: undo takes no arguments", tok)
		}
		op.kind = "undo"
		return op, nil
	case "color", "colour":
		c, err := annotate.ParseColor(rest)
		if err != nil {
			return op, fmt.Errorf("%s: %w", tok, err)
		}
		op.kind = "color"
		op.color = c
		return op, nil
	}

	k, err := annotate.ParseKind(name)
	if err != nil {
		return op, fmt.Errorf("%s: %w", tok, err)
	}
	op.kind = "tool"
	op.tool = k
	if rest == "" {
		return op, fmt.Errorf("%s: missing points", tok)
	}
	for _, raw := range strings.Split(rest, ":") {
		p, err := parsePoint(raw)
		if err != nil {
			return op, fmt.Errorf("%s: %w", tok, err)
		}
		op.points = append(op.points, p)
	}
	switch {
	case k == annotate.KindPen && len(op.points) < 2:
		return op, fmt.Errorf("%s: pen needs at least 2 points", tok)
	case k != annotate.KindPen && len(op.points) != 2:
		return op, fmt.Errorf("%s: %s needs exactly 2 points", tok, k)
	}
	return op, nil
}

func parsePoint(s string) (annotate.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return annotate.Point{}, fmt.Errorf("invalid point %q, want X,Y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return annotate.Point{}, fmt.Errorf("invalid point %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return annotate.Point{}, fmt.Errorf("invalid point %q", s)
	}
	return annotate.Pt(x, y), nil
}

// apply replays op on s as the equivalent pointer gesture.
func (op drawOp) apply(s *annotate.Session) error {
	switch op.kind {
	case "undo":
		s.Undo()
		return nil
	case "color":
		s.SetColor(op.color)
		return nil
	}
	if err := s.SelectTool(op.tool); err != nil {
		return err
	}
	last := len(op.points) - 1
	s.Press(op.points[0])
	for _, p := range op.points[1:last] {
		s.Move(p)
	}
	s.Move(op.points[last])
	return s.Release(op.points[last])
}

func (d *drawCmd) Run(ctx context.Context) error {
	src, err := d.loadSource()
	if err != nil {
		return err
	}
	session := annotate.NewSession(src, annotate.WithColor(d.color), annotate.WithLogger(d.logger()))
	for _, op := range d.ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := op.apply(session); err != nil {
			return fmt.Errorf("%s: %w", op.token, err)
		}
	}

	if d.output != "" {
		sink := &imagefile.File{Path: d.output, Saved: func(p string) {
			fmt.Fprintf(os.Stderr, "saved %s\n", p)
			if d.root != nil && d.notifier != nil {
				d.notifier.Save(p)
			}
		}}
		if err := session.Export(sink); err != nil {
			return err
		}
	}
	if d.toClipboard {
		detail := "image"
		if d.output != "" {
			detail = filepath.Base(d.output)
		}
		sink := &clipboard.Sink{Copied: func() {
			fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
			if d.root != nil && d.notifier != nil {
				d.notifier.Copy(detail)
			}
		}}
		if err := session.Export(sink); err != nil {
			return err
		}
	}
	return nil
}

func (d *drawCmd) loadSource() (image.Image, error) {
	if d.fromClipboard {
		img, err := readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return img, nil
	}
	img, err := imagefile.Load(d.file)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", d.file, err)
	}
	return img, nil
}
