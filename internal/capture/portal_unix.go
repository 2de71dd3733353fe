//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"
)

const (
	portalDest     = "org.freedesktop.portal.Desktop"
	portalPath     = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	portalResponse = "org.freedesktop.portal.Request.Response"
)

// Portal response codes.
const (
	portalOK        uint32 = 0
	portalCancelled uint32 = 1
)

var portalHandleToken = func() string {
	return "scrann_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// portalBackend asks the XDG desktop portal for a screenshot. The portal
// owns the area selection UI and writes the PNG itself.
type portalBackend struct{}

func (portalBackend) Name() string { return "portal" }

func (portalBackend) Screenshot(ctx context.Context, opts Options) (string, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return "", fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Printf("dbus close: %v", cerr)
		}
	}()

	const rule = "type='signal',interface='org.freedesktop.portal.Request',member='Response'"
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return "", fmt.Errorf("portal subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)
	sigc := make(chan *dbus.Signal, 4)
	conn.Signal(sigc)
	defer conn.RemoveSignal(sigc)

	obj := conn.Object(portalDest, portalPath)
	call := obj.CallWithContext(ctx, "org.freedesktop.portal.Screenshot.Screenshot", 0, "", portalScreenshotOptions(opts))
	if call.Err != nil {
		return "", fmt.Errorf("portal screenshot call: %w", call.Err)
	}
	var handle dbus.ObjectPath
	if err := call.Store(&handle); err != nil {
		return "", fmt.Errorf("portal screenshot response: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case sig, ok := <-sigc:
			if !ok {
				return "", errors.New("portal: connection closed")
			}
			if sig.Path != handle || sig.Name != portalResponse {
				continue
			}
			return portalResult(sig.Body)
		}
	}
}

func portalScreenshotOptions(opts Options) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(opts.Interactive),
		"modal":        dbus.MakeVariant(opts.Interactive),
		"handle_token": dbus.MakeVariant(portalHandleToken()),
	}
}

// portalResult decodes the body of a Request.Response signal into the path
// of the screenshot file.
func portalResult(body []any) (string, error) {
	if len(body) < 2 {
		return "", errors.New("portal: malformed response")
	}
	code, ok := body[0].(uint32)
	if !ok {
		return "", fmt.Errorf("portal: response code is %T", body[0])
	}
	switch code {
	case portalOK:
	case portalCancelled:
		return "", ErrCancelled
	default:
		return "", fmt.Errorf("portal: request failed with code %d", code)
	}
	results, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", fmt.Errorf("portal: results are %T", body[1])
	}
	v, ok := results["uri"]
	if !ok {
		return "", errors.New("portal: response missing uri")
	}
	uri, ok := v.Value().(string)
	if !ok {
		return "", fmt.Errorf("portal: uri is %T", v.Value())
	}
	return pathFromURI(uri)
}

func pathFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("portal uri %q: %w", uri, err)
	}
	if u.Scheme != "file" || u.Path == "" {
		return "", fmt.Errorf("portal uri %q is not a local file", uri)
	}
	return u.Path, nil
}
