//go:build darwin

package sysinfo

import (
	"fmt"
	"os/exec"

	"github.com/dixieflatline76/setwallpaper/pkg/crop"
)

// screenDimensions returns the primary desktop dimensions on macOS.
func screenDimensions() (crop.Dimensions, error) {
	out, err := exec.Command("system_profiler", "SPDisplaysDataType", "-json").Output()
	if err != nil {
		return crop.Dimensions{}, fmt.Errorf("failed to run system_profiler: %w", err)
	}
	return parseSystemProfilerJSON(out)
}
