// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/gdamore/tcell/v2"
)

// StyleDef is one style entry of a theme file. Pointers tell unset
// attributes, which are inherited, from ones explicitly turned off.
type StyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
	Strike    *bool   `toml:"strike"`
	Dim       *bool   `toml:"dim"`
}

// TomlTheme represents the structure of a theme file
type TomlTheme struct {
	Name   string              `toml:"name"`
	IsDark bool                `toml:"is_dark"`
	Styles map[string]StyleDef `toml:"styles"`
	Tags   map[string]StyleDef `toml:"tags"`
}

// LoadThemeFromFile parses a TOML file and converts it to a Theme object
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	fallbackName := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	theme, err := ParseTheme(string(data), fallbackName)
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	logger.Debugf("Successfully loaded theme '%s' from '%s'", theme.Name, filePath)
	return theme, nil
}

// ParseTheme decodes a TOML theme. fallbackName is used when the document has no name.
func ParseTheme(data, fallbackName string) (*Theme, error) {
	var tomlTheme TomlTheme
	metadata, err := toml.Decode(data, &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme: %w", err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys: %v", tomlTheme.Name, undecoded)
	}

	if tomlTheme.Name == "" {
		tomlTheme.Name = fallbackName
		logger.Debugf("Theme missing 'name', using '%s'", tomlTheme.Name)
	}

	theme := &Theme{
		Name:   tomlTheme.Name,
		IsDark: tomlTheme.IsDark,
		Styles: make(map[string]tcell.Style),
		Tags:   make(map[runs.Tag]StyleDef),
	}

	baseStyle := tcell.StyleDefault
	if def, ok := tomlTheme.Styles["Default"]; ok {
		var parseErr error
		baseStyle, parseErr = def.Apply(tcell.StyleDefault)
		if parseErr != nil {
			logger.Warnf("Theme '%s': Failed to parse 'Default' style, using tcell default as base: %v", theme.Name, parseErr)
			baseStyle = tcell.StyleDefault
		}
	}
	theme.Styles["Default"] = baseStyle

	for name, def := range tomlTheme.Styles {
		if name == "Default" {
			continue
		}
		style, err := def.Apply(baseStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}

	for name, def := range tomlTheme.Tags {
		tag := runs.Tag(strings.TrimSpace(name))
		if tag == "" {
			continue
		}
		if _, err := def.Apply(baseStyle); err != nil {
			logger.Warnf("Theme '%s': Failed to parse tag '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Tags[tag] = def
	}
	return theme, nil
}

// Apply layers the definition over base.
func (d StyleDef) Apply(base tcell.Style) (tcell.Style, error) {
	style := base

	if d.Fg != nil {
		color, err := parseColorString(*d.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color '%s': %w", *d.Fg, err)
		}
		style = style.Foreground(color)
	}
	if d.Bg != nil {
		color, err := parseColorString(*d.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color '%s': %w", *d.Bg, err)
		}
		style = style.Background(color)
	}

	if d.Bold != nil {
		style = style.Bold(*d.Bold)
	}
	if d.Italic != nil {
		style = style.Italic(*d.Italic)
	}
	if d.Underline != nil {
		style = style.Underline(*d.Underline)
	}
	if d.Reverse != nil {
		style = style.Reverse(*d.Reverse)
	}
	if d.Strike != nil {
		style = style.StrikeThrough(*d.Strike)
	}
	if d.Dim != nil {
		style = style.Dim(*d.Dim)
	}
	return style, nil
}

// apply is Apply for definitions already validated at load time.
func (d StyleDef) apply(base tcell.Style) tcell.Style {
	style, err := d.Apply(base)
	if err != nil {
		return base
	}
	return style
}

// parseColorString accepts #RRGGBB, "reset", "default" and tcell's color names.
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	}

	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}
	if color := tcell.GetColor(s); color != tcell.ColorDefault {
		return color, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
}
