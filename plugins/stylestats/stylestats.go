// plugins/stylestats/stylestats.go
package stylestats

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var _ plugin.Plugin = (*StyleStats)(nil)

// Key shows the statistics in the status bar.
const Key = tcell.KeyF3

// StyleStats reports word, character and run counts plus how many
// characters carry each style tag.
type StyleStats struct {
	api plugin.EditorAPI
	sub event.SubscriptionID
}

func New() *StyleStats {
	return &StyleStats{}
}

func (p *StyleStats) Name() string {
	return "StyleStats"
}

// Initialize listens for the stats key.
func (p *StyleStats) Initialize(api plugin.EditorAPI) error {
	if api == nil {
		return fmt.Errorf("stylestats: nil editor API")
	}
	p.api = api
	p.sub = api.SubscribeEvent(event.TypeKeyPressed, p.handleKey)
	return nil
}

func (p *StyleStats) Shutdown() error {
	return nil
}

func (p *StyleStats) handleKey(e event.Event) bool {
	data, ok := e.Data.(event.KeyPressedData)
	if !ok || data.KeyEvent == nil || data.KeyEvent.Key() != Key {
		return false
	}
	p.api.SetStatusMessage("%s", Summary(Compute(p.api.Runs())))
	return true
}

// Stats summarizes a run sequence.
type Stats struct {
	Words int
	Chars int
	Runs  int // text runs, anchors excluded
	// Tagged counts the characters carrying each tag.
	Tagged map[runs.Tag]int
}

// Compute gathers Stats for seq.
func Compute(seq runs.Sequence) Stats {
	s := Stats{Tagged: make(map[runs.Tag]int)}
	for _, r := range seq {
		if r.Placeholder {
			continue
		}
		s.Runs++
		n := r.Len()
		s.Chars += n
		for _, tag := range r.Styles.Tags() {
			s.Tagged[tag] += n
		}
	}
	s.Words = len(strings.Fields(seq.Text()))
	return s
}

// Summary formats Stats for the status bar.
func Summary(s Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Words: %d, Chars: %d, Runs: %d", s.Words, s.Chars, s.Runs)
	tags := maps.Keys(s.Tagged)
	slices.Sort(tags)
	for i, tag := range tags {
		sep := ", "
		if i == 0 {
			sep = " | "
		}
		fmt.Fprintf(&b, "%s%s %d", sep, tag, s.Tagged[tag])
	}
	return b.String()
}
