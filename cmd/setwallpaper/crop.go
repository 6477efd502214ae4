package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dixieflatline76/setwallpaper/pkg/crop"
)

func runCrop(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("crop", stderr)
	sourceFlag := fs.String("source", "", "source image size, WxH")
	targetFlag := fs.String("target", "", "display size, WxH")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	source, err := parseDimensions(*sourceFlag)
	if err != nil {
		return fmt.Errorf("%w: -source: %v", errUsage, err)
	}
	target, err := parseDimensions(*targetFlag)
	if err != nil {
		return fmt.Errorf("%w: -target: %v", errUsage, err)
	}

	r := crop.Compute(source, target)
	fmt.Fprintf(stdout, "x=%d y=%d width=%d height=%d\n", r.X, r.Y, r.Width, r.Height)
	if r.IsFull(source) {
		fmt.Fprintln(stdout, "no crop needed")
	}
	return nil
}

// parseDimensions parses "1920x1080".
func parseDimensions(s string) (crop.Dimensions, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return crop.Dimensions{}, fmt.Errorf("expected WxH, got %q", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return crop.Dimensions{}, fmt.Errorf("invalid width %q", w)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return crop.Dimensions{}, fmt.Errorf("invalid height %q", h)
	}
	d := crop.Dimensions{Width: width, Height: height}
	if !d.Valid() {
		return crop.Dimensions{}, fmt.Errorf("dimensions must be positive, got %s", d)
	}
	return d, nil
}
