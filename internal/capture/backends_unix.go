//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"os"
	"strings"
)

func platformBackends() []Backend {
	return []Backend{portalBackend{}, gnomeShellBackend{}, x11Backend{}}
}

func runningOnWayland() bool {
	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	if sessionType == "wayland" {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}
