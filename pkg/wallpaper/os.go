package wallpaper

// OS is implemented by each platform backend.
type OS interface {
	setWallpaper(path string, target Target) error
	name() string
}

// commandRunner runs an external program. Backends keep it as a field so tests
// can record the commands instead of running them.
type commandRunner func(name string, args ...string) error
