package theme

import (
	"strings"

	"golang.org/x/exp/slices"
)

// ThemeAPI interface for theme operations
type ThemeAPI interface {
	GetTheme() *Theme
	SetTheme(name string) error
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}

// Cycle switches to the theme after the current one in ListThemes order.
func Cycle(api ThemeAPI) error {
	names := api.ListThemes()
	if len(names) == 0 {
		return nil
	}
	current := ""
	if t := api.GetTheme(); t != nil {
		current = t.Name
	}
	i := slices.IndexFunc(names, func(n string) bool { return strings.EqualFold(n, current) })
	next := names[(i+1)%len(names)]
	if err := api.SetTheme(next); err != nil {
		api.SetStatusMessage("Theme error: %v", err)
		return err
	}
	api.SetStatusMessage("Theme: %s", next)
	return nil
}
