package enum

// IsDark reports whether the theme is dark.
func (t ActualTheme) IsDark() bool {
	return t == ActualThemeDark
}

// ActualThemeFromDark maps a "prefers dark" flag to a theme.
func ActualThemeFromDark(prefersDark bool) ActualTheme {
	if prefersDark {
		return ActualThemeDark
	}
	return ActualThemeLight
}
