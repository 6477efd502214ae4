package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// AppVersion is the version of the application, set at build time with -ldflags.
var AppVersion = "0.1.0"

// AppName is the name of the application.
const AppName = "SetWallpaper"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// ConfigFileName is the default configuration file name inside Dir().
const ConfigFileName = "config.yaml"

// FittedSubDir holds cropped derivatives, one directory per display resolution.
const FittedSubDir = "fitted"

// DefaultListenAddr is the loopback address of the method channel.
const DefaultListenAddr = "127.0.0.1:49453"

// Dir returns the OS-specific config directory (e.g. ~/.config/setwallpaper).
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, strings.ToLower(AppName)), nil
}

// Path returns the full path to the default config file.
func Path() (string, error) {
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, ConfigFileName), nil
}

// CacheDir returns the directory for generated files such as fitted derivatives.
func CacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, strings.ToLower(AppName)), nil
}

// LogDir returns the directory release builds write their log file to.
func LogDir() (string, error) {
	if runtime.GOOS == "windows" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, LogWinSubDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, LogSubDir), nil
}
