// Package sysinfo reports facts about the host: display size and platform version.
package sysinfo

import (
	"fmt"

	"github.com/dixieflatline76/setwallpaper/pkg/crop"
	"github.com/dixieflatline76/setwallpaper/util/log"
	"github.com/kbinani/screenshot"
)

// PrimaryDisplay returns the pixel dimensions of the primary display.
// It asks the windowing system first and falls back to the platform query.
func PrimaryDisplay() (crop.Dimensions, error) {
	if d, ok := activeDisplay(); ok {
		return d, nil
	}

	d, err := screenDimensions()
	if err != nil {
		return crop.Dimensions{}, fmt.Errorf("getting screen dimensions: %w", err)
	}
	return d, nil
}

// activeDisplay reads display 0 from the windowing system. It recovers from
// backends that panic when no display server is reachable.
func activeDisplay() (d crop.Dimensions, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Debugf("screenshot backend unavailable: %v", r)
			d, ok = crop.Dimensions{}, false
		}
	}()

	if screenshot.NumActiveDisplays() <= 0 {
		return crop.Dimensions{}, false
	}
	bounds := screenshot.GetDisplayBounds(0)
	d = crop.Dimensions{Width: bounds.Dx(), Height: bounds.Dy()}
	return d, d.Valid()
}
