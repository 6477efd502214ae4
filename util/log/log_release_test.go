//go:build release

package log

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/dixieflatline76/setwallpaper/config"
	"github.com/stretchr/testify/assert"
)

func TestNewRotator(t *testing.T) {
	dir := t.TempDir()
	r := newRotator(dir)
	assert.Equal(t, filepath.Join(dir, config.AppName+config.LogExt), r.Filename)
	assert.Equal(t, maxSizeMB, r.MaxSize)
	assert.Equal(t, maxBackups, r.MaxBackups)
	assert.True(t, r.Compress)
}

func TestReleaseLogging(t *testing.T) {
	var buf bytes.Buffer
	prev := std.Writer()
	std.SetOutput(&buf)
	t.Cleanup(func() { std.SetOutput(prev) })

	Printf("changed %d", 1)
	assert.Contains(t, buf.String(), "changed 1")
	assert.Contains(t, buf.String(), "log_release_test.go")

	buf.Reset()
	Debugf("hidden %s", "line")
	assert.Empty(t, buf.String())
}
