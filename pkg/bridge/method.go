// Package bridge is the typed request/response contract between a host
// application and the wallpaper setter.
package bridge

import "fmt"

// Method enumerates the operations a host may invoke.
type Method int

const (
	// MethodGetPlatformVersion reports the OS name and version.
	MethodGetPlatformVersion Method = iota + 1
	// MethodSetWallpaper applies an image file as wallpaper.
	MethodSetWallpaper
)

var methodNames = map[Method]string{
	MethodGetPlatformVersion: "getPlatformVersion",
	MethodSetWallpaper:       "setWallpaper",
}

// String returns the wire name of the method.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a wire name to a Method. Unknown names yield a NOT_IMPLEMENTED error.
func ParseMethod(name string) (Method, *Error) {
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, Errorf(CodeNotImplemented, "method %q is not implemented", name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if _, ok := methodNames[m]; !ok {
		return nil, fmt.Errorf("invalid method %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
