package enums

import "fmt"

// HapticKind mirrors the host's notification feedback styles.
type HapticKind string

const (
	HapticSuccess HapticKind = "success"
	HapticWarning HapticKind = "warning"
	HapticError   HapticKind = "error"
)

var validHapticKinds = []HapticKind{
	HapticSuccess,
	HapticWarning,
	HapticError,
}

// String implements fmt.Stringer.
func (h HapticKind) String() string {
	return string(h)
}

// IsValid reports whether the value is a known HapticKind.
func (h HapticKind) IsValid() bool {
	for _, candidate := range validHapticKinds {
		if candidate == h {
			return true
		}
	}
	return false
}

// ParseHapticKind converts raw input into a HapticKind.
func ParseHapticKind(value string) (HapticKind, error) {
	for _, candidate := range validHapticKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid haptic kind %q", value)
}
