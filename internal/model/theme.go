package model

// Theme is the persisted presentation preference.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored value to a Theme. Unknown values are auto.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeAuto
	}
}

// Next cycles auto -> light -> dark -> auto.
func (t Theme) Next() Theme {
	switch t {
	case ThemeAuto:
		return ThemeLight
	case ThemeLight:
		return ThemeDark
	default:
		return ThemeAuto
	}
}

// Attribute returns the presentation attribute value: empty for auto,
// the theme name otherwise.
func (t Theme) Attribute() string {
	if t == ThemeLight || t == ThemeDark {
		return string(t)
	}
	return ""
}
