package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dixieflatline76/setwallpaper/config"
	"github.com/dixieflatline76/setwallpaper/pkg/crop"
	"github.com/dixieflatline76/setwallpaper/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// tempConfig writes a config that keeps fitted files inside the test dir.
func tempConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "fitted_dir: " + filepath.ToSlash(filepath.Join(dir, "fitted")) + "\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI()
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Usage: setwallpaper")

	code, _, stderr = runCLI("paint")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "paint"`)

	code, stdout, _ := runCLI("help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "serve")
}

func TestCrop(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"Taller source", []string{"-source", "1000x2000", "-target", "1080x1920"}, exitOK, "x=0 y=111 width=1000 height=1777"},
		{"Wider source", []string{"-source", "2000x1000", "-target", "1080x1920"}, exitOK, "x=719 y=0 width=562 height=1000"},
		{"Same size", []string{"-source", "1080x1920", "-target", "1080X1920"}, exitOK, "no crop needed"},
		{"Missing target", []string{"-source", "1000x2000"}, exitUsage, ""},
		{"Zero size", []string{"-source", "0x2000", "-target", "1080x1920"}, exitUsage, ""},
		{"Unknown flag", []string{"-width", "5"}, exitUsage, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCLI(append([]string{"crop"}, tt.args...)...)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stdout, tt.wantOut)
		})
	}
}

func TestParseDimensions(t *testing.T) {
	d, err := parseDimensions(" 1920x1080 ")
	require.NoError(t, err)
	assert.Equal(t, crop.Dimensions{Width: 1920, Height: 1080}, d)

	for _, in := range []string{"", "1920", "ax1080", "1920xb", "-1x5"} {
		_, err := parseDimensions(in)
		assert.Error(t, err, in)
	}
}

func TestSet_Failures(t *testing.T) {
	cfg := tempConfig(t, "")
	missing := filepath.Join(t.TempDir(), "missing.png")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"No image", []string{"-config", cfg}, exitUsage, "exactly one image"},
		{"Bad target", []string{"-config", cfg, "-target", "sideways", missing}, exitUsage, "usage error"},
		{"Bad crop mode", []string{"-config", cfg, "-crop", "stretch", missing}, exitUsage, "usage error"},
		{"Missing file", []string{"-config", cfg, "-target", "both", missing}, exitFailure, "FILE_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(append([]string{"set"}, tt.args...)...)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stderr, tt.wantStderr)
		})
	}
}

func TestSet_InvalidConfig(t *testing.T) {
	cfg := tempConfig(t, "jpeg_quality: 400\n")
	code, _, stderr := runCLI("set", "-config", cfg, "/tmp/a.png")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "jpeg_quality")
}

func TestVersion(t *testing.T) {
	orig := updateCheck
	defer func() { updateCheck = orig }()

	updateCheck = func(ctx context.Context) (*util.UpdateCheck, error) {
		return &util.UpdateCheck{UpdateAvailable: true, LatestVersion: "v9.0.0", ReleaseURL: "http://release"}, nil
	}
	code, stdout, _ := runCLI("version", "-check")
	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(stdout, config.AppName+" "+config.AppVersion))
	assert.Contains(t, stdout, "Update available: v9.0.0 http://release")

	updateCheck = func(ctx context.Context) (*util.UpdateCheck, error) {
		return nil, errors.New("offline")
	}
	code, _, stderr := runCLI("version", "-check")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "offline")
}

func TestAppReload(t *testing.T) {
	cfg, _, err := loadConfig(tempConfig(t, "crop_mode: none\n"))
	require.NoError(t, err)
	assert.Equal(t, crop.ModeNone, cfg.CropMode)

	a, err := newApp(cfg)
	require.NoError(t, err)

	next := *cfg
	next.CropMode = crop.ModeSmart
	next.DefaultTarget = config.TargetLock
	require.NoError(t, a.reload(&next))
	assert.Equal(t, config.TargetLock, a.cfg.Load().DefaultTarget)

	bad := next
	bad.FaceModelPath = filepath.Join(t.TempDir(), "missing-facefinder")
	assert.Error(t, a.reload(&bad))
	assert.Equal(t, crop.ModeSmart, a.cfg.Load().CropMode, "failed reload keeps the previous config")
}
