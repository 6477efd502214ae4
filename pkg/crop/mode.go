package crop

import (
	"fmt"
	"strings"
)

// Mode selects how the crop hint is produced.
type Mode int

const (
	// ModeNone applies the image as-is and lets the OS scale it.
	ModeNone Mode = iota
	// ModeCenter applies the centered cover crop from Compute.
	ModeCenter
	// ModeSmart places the cover crop on the most interesting region of the image.
	ModeSmart
)

// DefaultMode is used when no mode is configured.
const DefaultMode = ModeCenter

var modeNames = map[Mode]string{
	ModeNone:   "none",
	ModeCenter: "center",
	ModeSmart:  "smart",
}

// String returns the config name of the mode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a config name into a Mode. The empty string yields DefaultMode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultMode, nil
	}
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return DefaultMode, fmt.Errorf("unknown crop mode %q (want none, center or smart)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("invalid crop mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
