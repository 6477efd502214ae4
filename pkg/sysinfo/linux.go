//go:build linux

package sysinfo

import (
	"fmt"
	"os/exec"

	"github.com/dixieflatline76/setwallpaper/pkg/crop"
)

// screenDimensions returns the desktop dimensions on Linux.
func screenDimensions() (crop.Dimensions, error) {
	out, err := exec.Command("xdpyinfo").Output()
	if err != nil {
		return crop.Dimensions{}, fmt.Errorf("failed to run xdpyinfo: %w", err)
	}
	return parseXdpyinfo(string(out))
}
