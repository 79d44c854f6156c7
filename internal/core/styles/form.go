package styles

import "github.com/charmbracelet/huh"

// FormTheme returns the huh theme used by interactive CLI prompts.
func FormTheme() *huh.Theme {
	return huh.ThemeCharm()
}
