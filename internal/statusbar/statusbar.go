// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleTags      tcell.Style // active style tags
	StylePending   tcell.Style // tags waiting in an anchor run
	StyleMessage   tcell.Style // temporary messages
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleTags:      tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StylePending:   tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Italic(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar is the bottom line: the styles the next typed character gets,
// the caret offset, and short-lived messages.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	active    runs.Set
	pending   bool // caret sits in an anchor run
	caret     int
	length    int
	selection int // selected rune count, 0 when nothing is selected
	themeName string

	tempMessage     string
	tempMessageTime time.Time

	now func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetConfig swaps the styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetStyleInfo records the active style set and whether it is pending in an anchor.
func (sb *StatusBar) SetStyleInfo(active runs.Set, pending bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.active = active
	sb.pending = pending
}

// SetCaretInfo records the caret offset, document length and selection size.
func (sb *StatusBar) SetCaretInfo(caret, length, selection int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.caret = caret
	sb.length = length
	sb.selection = selection
}

func (sb *StatusBar) SetThemeName(name string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.themeName = name
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

func (sb *StatusBar) tagsText() string {
	text := "[plain]"
	if !sb.active.IsEmpty() {
		tags := sb.active.Tags()
		names := make([]string, len(tags))
		for i, t := range tags {
			names[i] = string(t)
		}
		text = "[" + strings.Join(names, " ") + "]"
	}
	if sb.pending {
		text += "*"
	}
	return text
}

func (sb *StatusBar) positionText() string {
	pos := fmt.Sprintf(" %d/%d", sb.caret, sb.length)
	if sb.selection > 0 {
		pos += fmt.Sprintf(" (%d selected)", sb.selection)
	}
	if sb.themeName != "" {
		pos += " -- " + sb.themeName
	}
	return pos
}

// Draw renders the status bar onto the last row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	isTempMsgActive := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	cfg := sb.config
	msg := sb.tempMessage
	tags := sb.tagsText()
	tagStyle := cfg.StyleTags
	if sb.pending {
		tagStyle = cfg.StylePending
	}
	pos := sb.positionText()
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, cfg.StyleDefault)
	}
	if isTempMsgActive {
		drawText(screen, 0, y, width, msg, cfg.StyleMessage)
		return
	}
	x := drawText(screen, 0, y, width, tags, tagStyle)
	drawText(screen, x, y, width, pos, cfg.StyleDefault)
}

// drawText draws text from x and returns the column after it.
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += clusterWidth
	}
	return x
}
