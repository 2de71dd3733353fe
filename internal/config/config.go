// Package config reads the scrann RC file.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/example/scrann/internal/theme"
)

// DefaultCaptureRetries is the number of screenshot attempts before giving up.
const DefaultCaptureRetries = 3

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Config holds the application configuration.
type Config struct {
	Theme          string
	Output         string // Default save path; empty means overwrite the opened file
	Color          string // Initial drawing colour
	CaptureRetries int
	Notify         Notify
	Themes         map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		CaptureRetries: DefaultCaptureRetries,
		Notify:         Notify{Capture: true, Save: true, Copy: true},
		Themes:         make(map[string]*theme.Theme),
	}
}

// ApplyEnv overrides settings from SCRANN_* environment variables.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("SCRANN_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("SCRANN_OUTPUT")); v != "" {
		c.Output = v
	}
	if v := strings.TrimSpace(os.Getenv("SCRANN_COLOR")); v != "" {
		c.Color = v
	}
}

// ResolveTheme returns the configured theme, preferring themes declared in
// the config file over those found by l.
func (c *Config) ResolveTheme(l *theme.Loader) (*theme.Theme, error) {
	if t, ok := c.Themes[c.Theme]; ok {
		return t, nil
	}
	if l == nil {
		l = theme.NewLoader()
	}
	return l.Load(c.Theme)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Output != "" {
		fmt.Fprintf(&sb, "output = %s\n", c.Output)
	}
	if c.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Color)
	}
	fmt.Fprintf(&sb, "capture_retries = %d\n", c.CaptureRetries)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	// Sort keys for deterministic output
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "\n[theme.%s]\n", name)
		_ = theme.Format(&sb, c.Themes[name])
	}

	return sb.String()
}
