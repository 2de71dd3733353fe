//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

func platformBackends() []Backend { return nil }

func runningOnWayland() bool { return false }
