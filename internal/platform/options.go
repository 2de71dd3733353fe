package platform

import "time"

// AppName is reported to the notification service as the sender.
var AppName = "scrann"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// ReplacesID names an earlier notification to update in place. Zero
	// creates a new one.
	ReplacesID uint32
	// Timeout is how long the notification stays visible. Zero uses the
	// server default.
	Timeout time.Duration
}

func (o Options) expireMillis() int32 {
	if o.Timeout <= 0 {
		return -1
	}
	return int32(o.Timeout / time.Millisecond)
}
