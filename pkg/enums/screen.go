package enums

import "fmt"

// Screen identifies the view currently occupying the mini-app window.
type Screen string

const (
	ScreenLoader         Screen = "loader"
	ScreenCategories     Screen = "categories"
	ScreenProducts       Screen = "products"
	ScreenProductDetails Screen = "product-details"
	ScreenCart           Screen = "cart"
)

var validScreens = []Screen{
	ScreenLoader,
	ScreenCategories,
	ScreenProducts,
	ScreenProductDetails,
	ScreenCart,
}

// String implements fmt.Stringer.
func (s Screen) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Screen.
func (s Screen) IsValid() bool {
	for _, candidate := range validScreens {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseScreen converts raw input into a Screen.
func ParseScreen(value string) (Screen, error) {
	for _, candidate := range validScreens {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid screen %q", value)
}
