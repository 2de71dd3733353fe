//go:build windows

package platform

import (
	"strings"
	"time"

	"github.com/go-toast/toast"
)

// Notify displays a toast notification using the Windows notification center.
func Notify(title, body string, opts Options) (uint32, error) {
	n := toast.Notification{
		AppID:   AppName,
		Title:   title,
		Message: body,
		Icon:    strings.TrimSpace(opts.IconPath),
	}
	if opts.Timeout > 0 && opts.Timeout <= 7*time.Second {
		n.Duration = toast.Short
	}
	return 0, n.Push()
}

// Close is a no-op; toasts dismiss themselves.
func Close(uint32) error { return nil }
