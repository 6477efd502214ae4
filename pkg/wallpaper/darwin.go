//go:build darwin

package wallpaper

import (
	"fmt"
	"os/exec"
	"strings"
)

// macOS implements the OS interface for macOS.
type macOS struct {
	run commandRunner
}

// getOS returns the macOS backend.
func getOS() OS {
	return &macOS{run: runOsascript}
}

func (m *macOS) name() string { return "darwin" }

// setWallpaper sets the picture of every desktop through System Events.
func (m *macOS) setWallpaper(imagePath string, target Target) error {
	if target.Has(TargetLock) {
		return &unsupportedTargetError{target: target, backend: m.name()}
	}

	// AppleScript string literal
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(imagePath)
	script := fmt.Sprintf(`tell application "System Events"
	tell every desktop
		set picture to "%s"
	end tell
end tell`, escaped)

	return m.run("osascript", "-e", script)
}

func runOsascript(name string, args ...string) error {
	output, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w (output: %s)", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
