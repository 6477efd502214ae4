//go:build linux

package wallpaper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingOS returns a linux backend that records commands instead of running them.
func recordingOS(env map[string]string) (*linuxOS, *[]string) {
	var calls []string
	l := &linuxOS{
		run: func(name string, args ...string) error {
			calls = append(calls, strings.Join(append([]string{name}, args...), " "))
			return nil
		},
		getenv: func(key string) string { return env[key] },
	}
	return l, &calls
}

func TestLinux_GNOME(t *testing.T) {
	l, calls := recordingOS(map[string]string{"XDG_CURRENT_DESKTOP": "ubuntu:GNOME", "WAYLAND_DISPLAY": "wayland-0"})

	require.NoError(t, l.setWallpaper("/tmp/a.jpg", TargetBoth))
	assert.Equal(t, []string{
		"gsettings set org.gnome.desktop.background picture-uri file:///tmp/a.jpg",
		"gsettings set org.gnome.desktop.background picture-uri-dark file:///tmp/a.jpg",
		"gsettings set org.gnome.desktop.screensaver picture-uri file:///tmp/a.jpg",
	}, *calls)
}

func TestLinux_GNOMELockOnly(t *testing.T) {
	l, calls := recordingOS(map[string]string{"XDG_CURRENT_DESKTOP": "GNOME"})

	require.NoError(t, l.setWallpaper("/tmp/a.jpg", TargetLock))
	assert.Equal(t, []string{"gsettings set org.gnome.desktop.screensaver picture-uri file:///tmp/a.jpg"}, *calls)
}

func TestLinux_KDE(t *testing.T) {
	l, calls := recordingOS(map[string]string{"XDG_CURRENT_DESKTOP": "KDE"})

	require.NoError(t, l.setWallpaper("/tmp/a.jpg", TargetBoth))
	require.Len(t, *calls, 2)
	assert.True(t, strings.HasPrefix((*calls)[0], "dbus-send --session --dest=org.kde.plasmashell"))
	assert.Contains(t, (*calls)[0], `d.writeConfig("Image", "file:///tmp/a.jpg")`)
	assert.True(t, strings.HasPrefix((*calls)[1], "kwriteconfig5 --file kscreenlockerrc"))
}

func TestLinux_KDEEscapesPath(t *testing.T) {
	l, calls := recordingOS(map[string]string{"XDG_CURRENT_DESKTOP": "KDE"})

	require.NoError(t, l.setWallpaper(`/etc/x.jpg");evil();("`, TargetSystem))
	require.Len(t, *calls, 1)
	assert.Contains(t, (*calls)[0], `d.writeConfig("Image", "file:///etc/x.jpg\");evil();(\"");`)
	assert.NotContains(t, (*calls)[0], `x.jpg");evil()`)
}

func TestLinux_XFCE(t *testing.T) {
	l, calls := recordingOS(map[string]string{"DESKTOP_SESSION": "xfce"})

	require.NoError(t, l.setWallpaper("/tmp/a.jpg", TargetSystem))
	assert.Equal(t, []string{
		"xfconf-query --channel xfce4-desktop --property /backdrop/screen0/monitor0/workspace0/last-image --set /tmp/a.jpg",
	}, *calls)

	err := l.setWallpaper("/tmp/a.jpg", TargetLock)
	assert.ErrorIs(t, err, ErrSetWallpaper)
}

func TestLinux_Sway(t *testing.T) {
	l, calls := recordingOS(map[string]string{"XDG_CURRENT_DESKTOP": "sway", "WAYLAND_DISPLAY": "wayland-1"})

	require.NoError(t, l.setWallpaper("/tmp/a.jpg", TargetSystem))
	assert.Equal(t, []string{"swaymsg output * bg /tmp/a.jpg fill"}, *calls)
}

func TestLinux_Unsupported(t *testing.T) {
	l, calls := recordingOS(map[string]string{"XDG_CURRENT_DESKTOP": "hyprland", "WAYLAND_DISPLAY": "wayland-1"})
	err := l.setWallpaper("/tmp/a.jpg", TargetSystem)
	assert.ErrorContains(t, err, "unsupported Wayland compositor")
	assert.Empty(t, *calls)

	l, _ = recordingOS(map[string]string{})
	err = l.setWallpaper("/tmp/a.jpg", TargetSystem)
	assert.ErrorContains(t, err, "unsupported X11 desktop environment")
}
