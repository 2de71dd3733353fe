//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyIface = "org.freedesktop.Notifications"
)

// Notify sends a desktop notification using the Freedesktop.org notification
// spec and returns the id the server assigned to it.
func Notify(title, body string, opts Options) (uint32, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return 0, fmt.Errorf("dbus connect: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(notifyDest, notifyPath)
	call := obj.Call(notifyIface+".Notify", 0,
		AppName, opts.ReplacesID, opts.IconPath, title, body, []string{}, map[string]dbus.Variant{}, opts.expireMillis())
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notification id: %w", err)
	}
	return id, nil
}

// Close withdraws a notification previously returned by Notify.
func Close(id uint32) error {
	if id == 0 {
		return nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("dbus connect: %w", err)
	}
	defer conn.Close()
	return conn.Object(notifyDest, notifyPath).Call(notifyIface+".CloseNotification", 0, id).Err
}
