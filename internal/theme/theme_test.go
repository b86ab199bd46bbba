package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/tidemark/internal/runs"
	"github.com/gdamore/tcell/v2"
)

const sampleTheme = `
name = "Paper"
is_dark = false

[styles.Default]
fg = "#101010"
bg = "reset"

[styles.StatusBar]
reverse = true

[tags.bold]
bold = true

[tags.highlight]
bg = "yellow"

[tags.broken]
fg = "not-a-colour"
`

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(sampleTheme, "fallback")
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "Paper" || th.IsDark {
		t.Fatalf("unexpected header: %q dark=%t", th.Name, th.IsDark)
	}
	fg, _, _ := th.GetStyle("Default").Decompose()
	if fg != tcell.NewHexColor(0x101010) {
		t.Fatalf("unexpected default fg %v", fg)
	}
	_, _, attrs := th.GetStyle("StatusBar").Decompose()
	if attrs&tcell.AttrReverse == 0 {
		t.Fatalf("status bar should be reversed")
	}
	if _, ok := th.Tags["broken"]; ok {
		t.Fatalf("tag with an invalid colour should be skipped")
	}
}

func TestParseThemeFallbackName(t *testing.T) {
	th, err := ParseTheme(`[tags.code]
fg = "teal"`, "mine")
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "mine" {
		t.Fatalf("expected fallback name, got %q", th.Name)
	}
}

func TestStyleForLayersTagsOnDefault(t *testing.T) {
	th, err := ParseTheme(sampleTheme, "x")
	if err != nil {
		t.Fatal(err)
	}
	fg, bg, attrs := th.StyleFor(runs.NewSet("bold", "highlight", "unknown")).Decompose()
	if fg != tcell.NewHexColor(0x101010) {
		t.Fatalf("fg should be inherited from Default, got %v", fg)
	}
	if bg != tcell.ColorYellow {
		t.Fatalf("highlight should set the background, got %v", bg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Fatalf("bold tag should set the bold attribute")
	}
	if th.StyleFor(runs.NewSet()) != th.GetStyle("Default") {
		t.Fatalf("plain text should use the Default style")
	}
}

func TestGetStyleFallsBackToBaseName(t *testing.T) {
	th := &Theme{Styles: map[string]tcell.Style{
		"Default":   tcell.StyleDefault,
		"StatusBar": tcell.StyleDefault.Bold(true),
	}}
	if th.GetStyle("StatusBar.Tags") != th.Styles["StatusBar"] {
		t.Fatalf("expected base-name fallback")
	}
	if th.GetStyle("Nope") != tcell.StyleDefault {
		t.Fatalf("expected Default fallback")
	}
}

func TestParseColorString(t *testing.T) {
	for in, want := range map[string]tcell.Color{
		"#ff0000": tcell.NewHexColor(0xff0000),
		" Red ":   tcell.ColorRed,
		"reset":   tcell.ColorReset,
		"default": tcell.ColorDefault,
	} {
		got, err := parseColorString(in)
		if err != nil || got != want {
			t.Errorf("parseColorString(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, bad := range []string{"#fff", "#zzzzzz", "ultraviolet"} {
		if _, err := parseColorString(bad); err == nil {
			t.Errorf("parseColorString(%q) should fail", bad)
		}
	}
}

func TestManagerLoadsDirectoryAndCycles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "paper.toml"), []byte(sampleTheme), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(dir)
	if mgr.Current().Name != "Tidemark Dark" {
		t.Fatalf("unexpected initial theme %q", mgr.Current().Name)
	}
	names := mgr.ListThemes()
	want := []string{"Paper", "Tidemark Dark", "Tidemark Light"}
	if len(names) != len(want) {
		t.Fatalf("ListThemes: got %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ListThemes: got %v, want %v", names, want)
		}
	}

	if err := mgr.SetTheme("PAPER"); err != nil {
		t.Fatal(err)
	}
	if err := mgr.SetTheme("missing"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}

	api := &fakeAPI{mgr: mgr}
	if err := Cycle(api); err != nil {
		t.Fatal(err)
	}
	if mgr.Current().Name != "Tidemark Dark" {
		t.Fatalf("Cycle should move to the next theme, got %q", mgr.Current().Name)
	}
	if api.message == "" {
		t.Fatalf("Cycle should report the new theme")
	}
}

func TestManagerMissingDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent"))
	if len(mgr.ListThemes()) != 2 {
		t.Fatalf("only built-in themes expected, got %v", mgr.ListThemes())
	}
}

type fakeAPI struct {
	mgr     *Manager
	message string
}

func (f *fakeAPI) GetTheme() *Theme           { return f.mgr.Current() }
func (f *fakeAPI) SetTheme(name string) error { return f.mgr.SetTheme(name) }
func (f *fakeAPI) ListThemes() []string       { return f.mgr.ListThemes() }
func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.message = format
}
