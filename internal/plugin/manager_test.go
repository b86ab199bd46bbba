package plugin

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	name    string
	initErr error
	log     *[]string
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Initialize(EditorAPI) error {
	*r.log = append(*r.log, "init "+r.name)
	return r.initErr
}

func (r *recorder) Shutdown() error {
	*r.log = append(*r.log, "shutdown "+r.name)
	return nil
}

func TestManagerLifecycle(t *testing.T) {
	var log []string
	m := NewManager()
	for _, name := range []string{"b", "a"} {
		if err := m.Register(&recorder{name: name, log: &log}); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Register(&recorder{name: "c", initErr: errors.New("boom"), log: &log}); err != nil {
		t.Fatal(err)
	}

	if n := m.InitializePlugins(nil); n != 2 {
		t.Fatalf("expected 2 plugins initialized, got %d", n)
	}
	m.ShutdownPlugins()

	want := []string{"init a", "init b", "init c", "shutdown a", "shutdown b", "shutdown c"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Fatalf("unexpected lifecycle (-want +got):\n%s", diff)
	}
}

func TestRegisterRejectsDuplicatesAndEmptyNames(t *testing.T) {
	var log []string
	m := NewManager()
	if err := m.Register(&recorder{name: "x", log: &log}); err != nil {
		t.Fatal(err)
	}
	if err := m.Register(&recorder{name: "x", log: &log}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := m.Register(&recorder{log: &log}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if _, ok := m.GetPlugin("x"); !ok {
		t.Fatalf("registered plugin not found")
	}
}
