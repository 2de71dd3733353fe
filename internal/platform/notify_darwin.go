//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify displays a desktop notification using macOS Notification Center.
// Notification Center offers no handle, so the returned id is always zero.
func Notify(title, body string, opts Options) (uint32, error) {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	return 0, exec.Command("osascript", "-e", script).Run()
}

// Close is a no-op on macOS.
func Close(uint32) error { return nil }
