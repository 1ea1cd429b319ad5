package models

import (
	"fmt"
	"strings"
)

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name, ignoring case.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Preferences are a user's display settings.
type Preferences struct {
	UserID string
	Theme  Theme
	// UpdatedAt is zero when the preferences were never written.
	UpdatedAt int64
}
