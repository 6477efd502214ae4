package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dixieflatline76/setwallpaper/config"
	"github.com/dixieflatline76/setwallpaper/pkg/sysinfo"
	"github.com/dixieflatline76/setwallpaper/util"
)

// updateCheck is replaced in tests.
var updateCheck = util.CheckForUpdates

func runVersion(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("version", stderr)
	check := fs.Bool("check", false, "check GitHub for a newer release")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	platform, err := sysinfo.PlatformVersion(ctx)
	if err != nil {
		platform = "unknown platform"
	}
	fmt.Fprintf(stdout, "%s %s (%s)\n", config.AppName, config.AppVersion, platform)

	if !*check {
		return nil
	}
	result, err := updateCheck(ctx)
	if err != nil {
		return err
	}
	if result.UpdateAvailable {
		fmt.Fprintf(stdout, "Update available: %s %s\n", result.LatestVersion, result.ReleaseURL)
	} else {
		fmt.Fprintf(stdout, "Up to date (latest release %s)\n", result.LatestVersion)
	}
	return nil
}
