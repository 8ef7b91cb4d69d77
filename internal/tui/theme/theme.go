// Package theme defines color themes for the fomodash TUI dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Highlighted surface (active tab, selected row)
	Border        lipgloss.Color // Subtle borders
	BorderBright  lipgloss.Color // Prominent borders (cards, focus)
	BorderAccent  lipgloss.Color // Accent-colored borders for focus states
	TextDim       lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted     lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary   lipgloss.Color // Primary content text
	Accent        lipgloss.Color // Primary accent (active states, bars)
	AccentBright  lipgloss.Color // Brighter accent for emphasis
	Green         lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	Yellow        lipgloss.Color
	Magenta       lipgloss.Color
	Cyan          lipgloss.Color
}

// Active is the currently selected theme.
var Active = SalmonDark

// SalmonDark is the default theme, echoing the salmon accent of the original
// survey dashboard.
var SalmonDark = Theme{
	Name:         "salmon-dark",
	Background:   lipgloss.Color("#16130F"),
	Surface:      lipgloss.Color("#221E19"),
	SurfaceHover: lipgloss.Color("#2E2922"),
	Border:       lipgloss.Color("#3A332B"),
	BorderBright: lipgloss.Color("#5C554B"),
	BorderAccent: lipgloss.Color("#FA8072"),
	TextDim:      lipgloss.Color("#5C554B"),
	TextMuted:    lipgloss.Color("#837A6D"),
	TextPrimary:  lipgloss.Color("#FBF5EC"),
	Accent:       lipgloss.Color("#FA8072"),
	AccentBright: lipgloss.Color("#FFA396"),
	Green:        lipgloss.Color("#8FB573"),
	Orange:       lipgloss.Color("#E09B4C"),
	Red:          lipgloss.Color("#D4554A"),
	Blue:         lipgloss.Color("#6B9BD1"),
	Yellow:       lipgloss.Color("#D9B544"),
	Magenta:      lipgloss.Color("#C98BB5"),
	Cyan:         lipgloss.Color("#6FB5A8"),
}

// Campus is a cool blue theme for readers who find the salmon too warm.
var Campus = Theme{
	Name:         "campus",
	Background:   lipgloss.Color("#101418"),
	Surface:      lipgloss.Color("#1A2028"),
	SurfaceHover: lipgloss.Color("#242C38"),
	Border:       lipgloss.Color("#2E3A48"),
	BorderBright: lipgloss.Color("#4A5A6D"),
	BorderAccent: lipgloss.Color("#5FA8D3"),
	TextDim:      lipgloss.Color("#4A5A6D"),
	TextMuted:    lipgloss.Color("#7E91A6"),
	TextPrimary:  lipgloss.Color("#E8F0F8"),
	Accent:       lipgloss.Color("#5FA8D3"),
	AccentBright: lipgloss.Color("#8BC6E8"),
	Green:        lipgloss.Color("#7FB685"),
	Orange:       lipgloss.Color("#E0A458"),
	Red:          lipgloss.Color("#D9646C"),
	Blue:         lipgloss.Color("#5FA8D3"),
	Yellow:       lipgloss.Color("#D9C25A"),
	Magenta:      lipgloss.Color("#B58BC9"),
	Cyan:         lipgloss.Color("#62BEC1"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderBright: lipgloss.Color("7"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Green:        lipgloss.Color("2"),
	Orange:       lipgloss.Color("3"),
	Red:          lipgloss.Color("1"),
	Blue:         lipgloss.Color("4"),
	Yellow:       lipgloss.Color("3"),
	Magenta:      lipgloss.Color("5"),
	Cyan:         lipgloss.Color("6"),
}

// All available themes.
var All = []Theme{SalmonDark, Campus, Terminal}

// ByName returns a theme by its name, defaulting to SalmonDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return SalmonDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
