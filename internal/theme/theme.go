// internal/theme/theme.go
package theme

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/gdamore/tcell/v2"
)

// Theme maps UI element names and style tags to terminal styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
	// Tags holds the visual treatment of each style tag. A run's cell style is
	// the theme's Default with every tag of its set applied in sorted order.
	Tags map[runs.Tag]StyleDef
}

// GetStyle returns a UI style by name, falling back to its base name
// ("StatusBar.Tags" -> "StatusBar") and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.Debugf("Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// StyleFor returns the cell style for text carrying the given tags. Tags the
// theme does not know are drawn like plain text.
func (t *Theme) StyleFor(set runs.Set) tcell.Style {
	style := t.GetStyle("Default")
	for _, tag := range set.Tags() {
		def, ok := t.Tags[tag]
		if !ok {
			logger.DebugTagf("theme", "Theme '%s': no treatment for tag %q", t.Name, tag)
			continue
		}
		style = def.apply(style)
	}
	return style
}

var (
	TidemarkDark  Theme
	TidemarkLight Theme
)

func init() {
	// Palette
	dkBackground := tcell.NewHexColor(0x2a2f38)
	dkForeground := tcell.NewHexColor(0xc5cdd9)
	dkComment := tcell.NewHexColor(0x5c6370)
	dkYellow := tcell.NewHexColor(0xe5c07b)
	dkGreen := tcell.NewHexColor(0x98c379)
	dkCyan := tcell.NewHexColor(0x56b6c2)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dkForeground)

	TidemarkDark = Theme{
		Name:   "Tidemark Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":          baseStyle,
			"Selection":        baseStyle.Reverse(true),
			"Anchor":           baseStyle.Foreground(dkComment),
			"StatusBar":        tcell.StyleDefault.Background(dkBackground).Foreground(dkForeground),
			"StatusBarTags":    tcell.StyleDefault.Background(dkBackground).Foreground(dkGreen).Bold(true),
			"StatusBarMessage": tcell.StyleDefault.Background(dkBackground).Foreground(dkYellow).Bold(true),
		},
		Tags: map[runs.Tag]StyleDef{
			"bold":      {Bold: boolPtr(true)},
			"italic":    {Italic: boolPtr(true)},
			"underline": {Underline: boolPtr(true)},
			"strike":    {Strike: boolPtr(true)},
			"dim":       {Dim: boolPtr(true)},
			"highlight": {Fg: strPtr("#2a2f38"), Bg: strPtr("#e5c07b")},
			"code":      {Fg: strPtr(hex(dkCyan))},
		},
	}

	lightForeground := tcell.NewHexColor(0x383a42)
	lightBar := tcell.NewHexColor(0xe5e5e6)
	lightBase := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(lightForeground)

	TidemarkLight = Theme{
		Name: "Tidemark Light",
		Styles: map[string]tcell.Style{
			"Default":          lightBase,
			"Selection":        lightBase.Reverse(true),
			"Anchor":           lightBase.Foreground(tcell.ColorGray),
			"StatusBar":        tcell.StyleDefault.Background(lightBar).Foreground(lightForeground),
			"StatusBarTags":    tcell.StyleDefault.Background(lightBar).Foreground(tcell.NewHexColor(0x50a14f)).Bold(true),
			"StatusBarMessage": tcell.StyleDefault.Background(lightBar).Foreground(tcell.NewHexColor(0x986801)).Bold(true),
		},
		Tags: map[runs.Tag]StyleDef{
			"bold":      {Bold: boolPtr(true)},
			"italic":    {Italic: boolPtr(true)},
			"underline": {Underline: boolPtr(true)},
			"strike":    {Strike: boolPtr(true)},
			"dim":       {Dim: boolPtr(true)},
			"highlight": {Bg: strPtr("yellow"), Fg: strPtr("black")},
			"code":      {Fg: strPtr("#0184bc")},
		},
	}
}

func boolPtr(b bool) *bool     { return &b }
func strPtr(s string) *string  { return &s }
func hex(c tcell.Color) string { return fmt.Sprintf("#%06x", c.Hex()) }
