//go:build linux

package wallpaper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// linuxOS implements the OS interface for Linux desktops.
type linuxOS struct {
	run    commandRunner
	getenv func(string) string
}

// getOS returns the Linux backend.
func getOS() OS {
	return &linuxOS{run: runCommand, getenv: os.Getenv}
}

func (l *linuxOS) name() string {
	return "linux/" + l.desktop()
}

// desktop returns the lowercased desktop environment name.
func (l *linuxOS) desktop() string {
	desktopEnv := l.getenv("XDG_CURRENT_DESKTOP")
	if desktopEnv == "" {
		desktopEnv = l.getenv("DESKTOP_SESSION")
	}
	return strings.ToLower(desktopEnv)
}

// setWallpaper sets the wallpaper on Linux, supporting X11 and some Wayland compositors.
func (l *linuxOS) setWallpaper(imagePath string, target Target) error {
	imagePath, err := filepath.Abs(imagePath)
	if err != nil {
		return err
	}

	desktopEnv := l.desktop()
	wayland := l.getenv("WAYLAND_DISPLAY") != ""

	switch {
	case strings.Contains(desktopEnv, "gnome") || strings.Contains(desktopEnv, "unity") || strings.Contains(desktopEnv, "ubuntu"):
		return l.setWallpaperGNOME(imagePath, target)
	case strings.Contains(desktopEnv, "cinnamon") && !wayland:
		return l.setWallpaperCinnamon(imagePath, target)
	case strings.Contains(desktopEnv, "kde"):
		return l.setWallpaperKDE(imagePath, target)
	case strings.Contains(desktopEnv, "xfce") && !wayland:
		return l.setWallpaperXFCE(imagePath, target)
	case strings.Contains(desktopEnv, "sway"):
		return l.setWallpaperSway(imagePath, target)
	case wayland:
		return fmt.Errorf("unsupported Wayland compositor: %q", desktopEnv)
	default:
		return fmt.Errorf("unsupported X11 desktop environment: %q", desktopEnv)
	}
}

// setWallpaperGNOME sets the wallpaper for GNOME-based desktop environments.
func (l *linuxOS) setWallpaperGNOME(imagePath string, target Target) error {
	uri := "file://" + imagePath
	if target.Has(TargetSystem) {
		if err := l.run("gsettings", "set", "org.gnome.desktop.background", "picture-uri", uri); err != nil {
			return err
		}
		// GNOME 42+ keeps a separate image for the dark style; older versions lack the key.
		_ = l.run("gsettings", "set", "org.gnome.desktop.background", "picture-uri-dark", uri)
	}
	if target.Has(TargetLock) {
		if err := l.run("gsettings", "set", "org.gnome.desktop.screensaver", "picture-uri", uri); err != nil {
			return err
		}
	}
	return nil
}

// setWallpaperCinnamon sets the wallpaper for Cinnamon.
func (l *linuxOS) setWallpaperCinnamon(imagePath string, target Target) error {
	if target.Has(TargetLock) {
		return &unsupportedTargetError{target: target, backend: "cinnamon"}
	}
	return l.run("gsettings", "set", "org.cinnamon.desktop.background", "picture-uri", "file://"+imagePath)
}

// setWallpaperKDE sets the wallpaper for KDE Plasma.
func (l *linuxOS) setWallpaperKDE(imagePath string, target Target) error {
	if target.Has(TargetSystem) {
		// JSON strings are valid JS string literals
		uri, err := json.Marshal("file://" + imagePath)
		if err != nil {
			return err
		}
		script := fmt.Sprintf(`
            var allDesktops = desktops();
            for (i=0;i<allDesktops.length;i++) {
                d = allDesktops[i];
                d.wallpaperPlugin = "org.kde.image";
                d.currentConfigGroup = Array("Wallpaper", "org.kde.image", "General");
                d.writeConfig("Image", %s);
            }`, uri)
		err = l.run("dbus-send", "--session", "--dest=org.kde.plasmashell", "--type=method_call",
			"/PlasmaShell", "org.kde.PlasmaShell.evaluateScript", "string:"+script)
		if err != nil {
			return err
		}
	}
	if target.Has(TargetLock) {
		err := l.run("kwriteconfig5", "--file", "kscreenlockerrc",
			"--group", "Greeter", "--group", "Wallpaper", "--group", "org.kde.image", "--group", "General",
			"--key", "Image", "file://"+imagePath)
		if err != nil {
			return err
		}
	}
	return nil
}

// setWallpaperXFCE sets the wallpaper for XFCE.
func (l *linuxOS) setWallpaperXFCE(imagePath string, target Target) error {
	if target.Has(TargetLock) {
		return &unsupportedTargetError{target: target, backend: "xfce"}
	}
	return l.run("xfconf-query",
		"--channel", "xfce4-desktop",
		"--property", "/backdrop/screen0/monitor0/workspace0/last-image",
		"--set", imagePath)
}

// setWallpaperSway sets the wallpaper on every Sway output.
func (l *linuxOS) setWallpaperSway(imagePath string, target Target) error {
	if target.Has(TargetLock) {
		return &unsupportedTargetError{target: target, backend: "sway"}
	}
	return l.run("swaymsg", "output", "*", "bg", imagePath, "fill")
}

// runCommand runs name and folds its stderr into the error.
func runCommand(name string, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w (%s)", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
