package domain

import "errors"

// ErrInvalidTheme is returned when a settings theme is not a known mode.
var ErrInvalidTheme = errors.New("invalid theme")

// Theme identifies a UI color mode.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether the theme is a known mode.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Settings holds the user's app-wide preferences. They are independent of
// sets and cards and live in their own durable record.
type Settings struct {
	ShowProgressBar bool  `json:"showProgressBar"`
	Theme           Theme `json:"theme"`
}

// DefaultSettings returns the settings applied on first run.
func DefaultSettings() Settings {
	return Settings{
		ShowProgressBar: true,
		Theme:           ThemeDark,
	}
}

// Validate checks if the Settings have valid data.
func (s *Settings) Validate() error {
	if !s.Theme.Valid() {
		return ErrInvalidTheme
	}
	return nil
}
