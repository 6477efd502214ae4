package sysinfo

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dixieflatline76/setwallpaper/pkg/crop"
)

var (
	// resolutionRegex matches strings like "3456 x 2234", "2880x1864Retina" or "1710 x 1107 @ 60.00Hz"
	resolutionRegex = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)
)

// systemProfilerOutput represents the nested structure of system_profiler -json
type systemProfilerOutput struct {
	Displays []gpuInfo `json:"SPDisplaysDataType"`
}

type gpuInfo struct {
	NDRVs []displayInfo `json:"spdisplays_ndrvs"`
}

type displayInfo struct {
	PixelResolution string `json:"spdisplays_pixelresolution"` // Physical pixels (e.g. "2880x1864Retina")
	Resolution      string `json:"_spdisplays_pixels"`         // Actual resolution (e.g. "3420 x 2214")
	Main            string `json:"spdisplays_main"`            // "spdisplays_yes"
}

// parseSystemProfilerJSON extracts the main display resolution from `system_profiler SPDisplaysDataType -json`.
func parseSystemProfilerJSON(data []byte) (crop.Dimensions, error) {
	var profiler systemProfilerOutput
	if err := json.Unmarshal(data, &profiler); err != nil {
		return crop.Dimensions{}, fmt.Errorf("decoding system_profiler JSON: %w", err)
	}

	for _, gpu := range profiler.Displays {
		for _, display := range gpu.NDRVs {
			if display.Main == "spdisplays_yes" {
				return parseResolutionString(display.resolution())
			}
		}
	}

	// No main display flagged, use the first one reported
	if len(profiler.Displays) > 0 && len(profiler.Displays[0].NDRVs) > 0 {
		return parseResolutionString(profiler.Displays[0].NDRVs[0].resolution())
	}

	return crop.Dimensions{}, fmt.Errorf("no displays found in system_profiler output")
}

func (d displayInfo) resolution() string {
	if d.Resolution != "" {
		return d.Resolution
	}
	return d.PixelResolution
}

// parseXdpyinfo extracts the screen size from xdpyinfo output, e.g.
// "  dimensions:    1920x1080 pixels (508x285 millimeters)".
func parseXdpyinfo(out string) (crop.Dimensions, error) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "dimensions:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			return parseResolutionString(parts[1])
		}
	}
	return crop.Dimensions{}, fmt.Errorf("failed to parse screen resolution")
}

func parseResolutionString(s string) (crop.Dimensions, error) {
	matches := resolutionRegex.FindStringSubmatch(s)
	if len(matches) < 3 {
		return crop.Dimensions{}, fmt.Errorf("failed to parse resolution from string: %s", s)
	}

	width, errW := strconv.Atoi(matches[1])
	height, errH := strconv.Atoi(matches[2])
	if errW != nil || errH != nil {
		return crop.Dimensions{}, fmt.Errorf("failed to convert dimensions: %v, %v", errW, errH)
	}

	d := crop.Dimensions{Width: width, Height: height}
	if !d.Valid() {
		return crop.Dimensions{}, fmt.Errorf("invalid resolution: %s", d)
	}
	return d, nil
}
