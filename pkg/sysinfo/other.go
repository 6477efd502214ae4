//go:build !linux && !darwin && !windows

package sysinfo

import (
	"errors"
	"runtime"

	"github.com/dixieflatline76/setwallpaper/pkg/crop"
)

func screenDimensions() (crop.Dimensions, error) {
	return crop.Dimensions{}, errors.New("screen dimensions not available on " + runtime.GOOS)
}
