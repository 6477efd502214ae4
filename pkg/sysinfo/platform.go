package sysinfo

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// PlatformVersion returns a human readable OS name and version such as
// "macOS 14.5" or "Ubuntu 22.04".
func PlatformVersion(ctx context.Context) (string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("reading host info: %w", err)
	}
	return formatPlatform(info), nil
}

func formatPlatform(info *host.InfoStat) string {
	var name, version string
	switch info.OS {
	case "darwin":
		name, version = "macOS", info.PlatformVersion
	case "windows":
		name, version = "Windows", info.PlatformVersion
	default:
		name = capitalize(info.Platform)
		if name == "" {
			name = capitalize(info.OS)
		}
		version = info.PlatformVersion
		if version == "" {
			version = info.KernelVersion
		}
	}
	return strings.TrimSpace(name + " " + version)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
