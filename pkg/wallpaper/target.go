package wallpaper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dixieflatline76/setwallpaper/config"
)

// Target selects which surface receives the wallpaper. Values are bit flags.
type Target int

const (
	// TargetSystem is the home screen or desktop.
	TargetSystem Target = config.TargetSystem
	// TargetLock is the lock screen.
	TargetLock Target = config.TargetLock
	// TargetBoth applies to the home and lock screen.
	TargetBoth Target = config.TargetBoth
)

// DefaultTarget is used when a caller does not name a target.
const DefaultTarget = TargetSystem

// Valid reports whether t names at least one known surface and nothing else.
func (t Target) Valid() bool {
	return t >= TargetSystem && t <= TargetBoth
}

// Has reports whether t includes flag.
func (t Target) Has(flag Target) bool {
	return t&flag != 0
}

// String returns the name of the target.
func (t Target) String() string {
	switch t {
	case TargetSystem:
		return "system"
	case TargetLock:
		return "lock"
	case TargetBoth:
		return "both"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// ParseTarget accepts a target name (system, home, lock, both) or its integer flag value.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "system", "home":
		return TargetSystem, nil
	case "lock":
		return TargetLock, nil
	case "both", "all":
		return TargetBoth, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: unknown wallpaper target %q", ErrInvalidArgument, s)
	}
	t := Target(n)
	if !t.Valid() {
		return 0, fmt.Errorf("%w: wallpaper target %d out of range", ErrInvalidArgument, n)
	}
	return t, nil
}
