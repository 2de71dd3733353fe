//go:build !linux && !darwin && !windows

package platform

// Notify is a no-op on unsupported platforms.
func Notify(title, body string, opts Options) (uint32, error) {
	return 0, nil
}

// Close is a no-op on unsupported platforms.
func Close(uint32) error { return nil }
