// internal/tui/drawing.go
package tui

import (
	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const defaultTabWidth = 4

// View is what DrawDocument needs from the editor. Offsets are document
// offsets in runes; the selection is [SelStart, SelEnd).
type View struct {
	Runs         runs.Sequence
	Caret        int
	SelStart     int
	SelEnd       int
	HasSelection bool
	ScrollY      int // first visual line shown
	TabWidth     int
}

// glyph is one grapheme cluster placed on the wrapped layout.
type glyph struct {
	offset  int
	x, y    int
	runes   []rune
	width   int
	styles  runs.Set
	newline bool
}

// layout soft-wraps the document to width and calls fn for each cluster in
// order. It returns where a caret after the last cluster would be.
func layout(seq runs.Sequence, width, tabWidth int, fn func(g glyph)) (endX, endY int) {
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}
	x, y, off := 0, 0, 0
	for _, r := range seq {
		gr := uniseg.NewGraphemes(r.Text)
		for gr.Next() {
			clusterRunes := gr.Runes()
			if clusterRunes[0] == '\n' || clusterRunes[0] == '\r' {
				fn(glyph{offset: off, x: x, y: y, runes: clusterRunes, styles: r.Styles, newline: true})
				x, y = 0, y+1
				off += len(clusterRunes)
				continue
			}
			w := gr.Width()
			if clusterRunes[0] == '\t' {
				w = tabWidth - x%tabWidth
			}
			if w < 1 {
				w = 1
			}
			if x > 0 && x+w > width {
				x, y = 0, y+1
			}
			fn(glyph{offset: off, x: x, y: y, runes: clusterRunes, width: w, styles: r.Styles})
			x += w
			off += len(clusterRunes)
		}
	}
	if width > 0 && x >= width {
		return 0, y + 1
	}
	return x, y
}

// CaretCell returns the layout cell of the caret, before scrolling.
func CaretCell(v View, width int) (x, y int) {
	found := false
	endX, endY := layout(v.Runs, width, v.TabWidth, func(g glyph) {
		if !found && g.offset >= v.Caret {
			x, y, found = g.x, g.y, true
		}
	})
	if !found {
		return endX, endY
	}
	return x, y
}

// DrawDocument draws the runs into the top height rows of the screen using
// the theme's tag styles, and returns the caret's screen cell. visible is
// false when the caret is scrolled out of view.
func DrawDocument(screen tcell.Screen, v View, activeTheme *theme.Theme, width, height int) (caretX, caretY int, visible bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	defaultStyle := activeTheme.GetStyle("Default")
	selectionStyle := activeTheme.GetStyle("Selection")

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}

	layout(v.Runs, width, v.TabWidth, func(g glyph) {
		screenY := g.y - v.ScrollY
		if g.newline || screenY < 0 || screenY >= height {
			return
		}
		style := activeTheme.StyleFor(g.styles)
		if v.HasSelection && g.offset >= v.SelStart && g.offset < v.SelEnd {
			style = selectionStyle
		}
		if g.runes[0] == '\t' {
			for i := 0; i < g.width && g.x+i < width; i++ {
				screen.SetContent(g.x+i, screenY, ' ', nil, style)
			}
			return
		}
		// Wide clusters own the following cell; tcell draws it.
		screen.SetContent(g.x, screenY, g.runes[0], g.runes[1:], style)
	})

	x, y := CaretCell(v, width)
	y -= v.ScrollY
	if y < 0 || y >= height || x >= width {
		return x, y, false
	}
	return x, y, true
}

// ScrollFor adjusts scrollY so the caret line stays inside a view of height rows.
func ScrollFor(v View, width, height int) int {
	_, y := CaretCell(v, width)
	scrollY := v.ScrollY
	if y < scrollY {
		scrollY = y
	}
	if height > 0 && y >= scrollY+height {
		scrollY = y - height + 1
	}
	if scrollY < 0 {
		scrollY = 0
	}
	return scrollY
}
