package detect

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// DesktopDetector reads the desktop color scheme: GNOME settings on linux and bsd, the global
// AppleInterfaceStyle default on macOS.
type DesktopDetector struct {
	GOOS string
	Run  Runner
}

// NewDesktopDetector makes a detector for the current platform.
func NewDesktopDetector() *DesktopDetector {
	return &DesktopDetector{GOOS: runtime.GOOS, Run: runCommand}
}

// Name returns the detector name.
func (d *DesktopDetector) Name() string { return "desktop:" + d.GOOS }

// Detect queries the platform settings.
func (d *DesktopDetector) Detect(ctx context.Context) (prefersDark, ok bool) {
	switch d.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		return d.gnome(ctx)
	case "darwin":
		return d.macos(ctx)
	default:
		return false, false
	}
}

func (d *DesktopDetector) gnome(ctx context.Context) (prefersDark, ok bool) {
	out, err := d.Run(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err != nil {
		return false, false
	}
	switch strings.Trim(strings.TrimSpace(string(out)), "'") {
	case "prefer-dark":
		return true, true
	case "prefer-light", "default":
		return false, true
	default:
		return false, false
	}
}

func (d *DesktopDetector) macos(ctx context.Context) (prefersDark, ok bool) {
	out, err := d.Run(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
	if err != nil {
		// the key is absent in light mode and defaults exits with non-zero status
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, true
		}
		return false, false
	}
	return strings.EqualFold(strings.TrimSpace(string(out)), "dark"), true
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output() //nolint:gosec // fixed command set
}
