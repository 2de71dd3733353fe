//go:build !(linux || freebsd || openbsd || netbsd || dragonfly || darwin || windows)

package clipboard

import "fmt"

func writePNG([]byte) error {
	return fmt.Errorf("clipboard image operations are not supported on this platform")
}

func readPNG() ([]byte, error) {
	return nil, fmt.Errorf("clipboard image operations are not supported on this platform")
}
