package theme

import (
	"errors"
	"testing"
)

func TestLookup_allRegistered(t *testing.T) {
	for _, name := range Names() {
		th, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
			continue
		}
		if th.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, th.Name)
		}
		if th.Primary == "" || th.Fg == "" {
			t.Errorf("theme %q has empty colors", name)
		}
	}
}

func TestLookup_unknown(t *testing.T) {
	_, err := Lookup("solarized-neon")
	if !errors.Is(err, ErrUnknown) {
		t.Fatalf("expected ErrUnknown, got %v", err)
	}
}

func TestDefaultIsRegistered(t *testing.T) {
	if _, err := Lookup(Default); err != nil {
		t.Errorf("default theme %q: %v", Default, err)
	}
}

func TestNames_stableOrder(t *testing.T) {
	a, b := Names(), Names()
	if len(a) < 2 {
		t.Fatalf("expected several themes, got %v", a)
	}
	a[0] = "mutated"
	if b[0] == "mutated" {
		t.Error("Names must return a fresh slice")
	}
}
