package sysinfo

import (
	"testing"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
)

func TestFormatPlatform(t *testing.T) {
	tests := []struct {
		name string
		info host.InfoStat
		want string
	}{
		{"macOS", host.InfoStat{OS: "darwin", Platform: "darwin", PlatformVersion: "14.5"}, "macOS 14.5"},
		{"Windows", host.InfoStat{OS: "windows", Platform: "Microsoft Windows 11 Pro", PlatformVersion: "10.0.22631 Build 22631"}, "Windows 10.0.22631 Build 22631"},
		{"Linux distro", host.InfoStat{OS: "linux", Platform: "ubuntu", PlatformVersion: "22.04"}, "Ubuntu 22.04"},
		{"Linux kernel fallback", host.InfoStat{OS: "linux", KernelVersion: "6.1.0"}, "Linux 6.1.0"},
		{"Nothing known", host.InfoStat{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatPlatform(&tt.info))
		})
	}
}
