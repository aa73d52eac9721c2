package enum

// Next returns the next theme mode in the cycle: auto -> light -> dark -> auto.
func (m ThemeMode) Next() ThemeMode {
	return ThemeModeValues[(m.Index()+1)%len(ThemeModeValues)]
}

// Resolve returns the concrete theme for the mode. Auto follows the system theme.
func (m ThemeMode) Resolve(system ActualTheme) ActualTheme {
	switch m {
	case ThemeModeLight:
		return ActualThemeLight
	case ThemeModeDark:
		return ActualThemeDark
	default:
		return system
	}
}

// IsValid reports whether the mode is one of the declared values, rejecting the zero value.
func (m ThemeMode) IsValid() bool {
	for _, v := range ThemeModeValues {
		if m == v {
			return true
		}
	}
	return false
}

// ThemeModeExact returns the mode with exactly the given name. Unlike ParseThemeMode it accepts
// neither aliases nor case variants.
func ThemeModeExact(name string) (ThemeMode, bool) {
	for _, v := range ThemeModeValues {
		if v.String() == name {
			return v, true
		}
	}
	return ThemeMode{}, false
}
