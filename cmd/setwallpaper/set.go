package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dixieflatline76/setwallpaper/pkg/bridge"
	"github.com/dixieflatline76/setwallpaper/pkg/crop"
	"github.com/dixieflatline76/setwallpaper/pkg/wallpaper"
)

func runSet(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("set", stderr)
	targetFlag := fs.String("target", "", "wallpaper target: system, lock, both or 1-3 (default from config)")
	cropFlag := fs.String("crop", "", "crop mode: none, center or smart (default from config)")
	configFlag := fs.String("config", "", "config file path")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: setwallpaper set [flags] <image>")
		fs.PrintDefaults()
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("%w: set takes exactly one image path", errUsage)
	}

	cfg, _, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}
	if *cropFlag != "" {
		mode, err := crop.ParseMode(*cropFlag)
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		cfg.CropMode = mode
	}

	setArgs := bridge.SetWallpaperArgs{ImagePath: ptr(fs.Arg(0))}
	if *targetFlag != "" {
		target, err := wallpaper.ParseTarget(*targetFlag)
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		setArgs.WallpaperType = ptr(int(target))
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	var applied wallpaper.Result
	a.handler.OnChange(func(r wallpaper.Result) { applied = r })

	res := a.handler.SetWallpaper(ctx, setArgs)
	if !res.Ok() {
		return res.Err()
	}

	fmt.Fprintf(stdout, "Wallpaper set (%s): %s\n", applied.Target, applied.Path)
	if applied.Crop != nil {
		fmt.Fprintf(stdout, "Cropped %s to %s for display %s\n", applied.Source, applied.Crop, applied.Display)
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
