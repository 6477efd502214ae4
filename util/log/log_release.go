//go:build release

package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/dixieflatline76/setwallpaper/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the release log file.
const (
	maxSizeMB  = 10
	maxBackups = 2
	maxAgeDays = 28
)

var std = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile)

func init() {
	w, err := rotatingFile()
	if err != nil {
		std.Fatalf("release logging unavailable: %v", err)
	}
	std.SetOutput(w)
	// net/http and other libraries write through the standard logger.
	log.SetOutput(w)
	log.SetFlags(std.Flags())
}

// rotatingFile opens the app log under config.LogDir, creating the directory.
func rotatingFile() (io.Writer, error) {
	dir, err := config.LogDir()
	if err != nil {
		return nil, fmt.Errorf("resolving log directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	return newRotator(dir), nil
}

func newRotator(dir string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, config.AppName+config.LogExt),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
}

// output skips output and its exported caller so Lshortfile names the call site.
func output(msg string) {
	std.Output(3, msg)
}

func fatal(msg string) {
	std.Output(3, msg)
	os.Exit(1)
}

func Print(v ...interface{})                 { output(fmt.Sprint(v...)) }
func Printf(format string, v ...interface{}) { output(fmt.Sprintf(format, v...)) }
func Println(v ...interface{})               { output(fmt.Sprintln(v...)) }

func Fatal(v ...interface{})                 { fatal(fmt.Sprint(v...)) }
func Fatalf(format string, v ...interface{}) { fatal(fmt.Sprintf(format, v...)) }
func Fatalln(v ...interface{})               { fatal(fmt.Sprintln(v...)) }

// Debug output is dropped in release builds.
func Debug(v ...interface{})                 {}
func Debugf(format string, v ...interface{}) {}
