package auth

import (
	"errors"
	"testing"
)

func TestGate_EmptySet_RejectsEverything(t *testing.T) {
	t.Parallel()

	g := NewGate(nil)
	if err := g.Authenticate("anything"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized with empty key set, got %v", err)
	}
	if err := g.Authenticate(""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for empty credential, got %v", err)
	}
	if g.KeyCount() != 0 {
		t.Errorf("expected key count 0, got %d", g.KeyCount())
	}
}

func TestGate_MemberKey_Authorized(t *testing.T) {
	t.Parallel()

	g := NewGate([]string{"k1", "k2"})
	if err := g.Authenticate("k1"); err != nil {
		t.Errorf("expected k1 authorized, got %v", err)
	}
	if err := g.Authenticate("k2"); err != nil {
		t.Errorf("expected k2 authorized, got %v", err)
	}
	if g.KeyCount() != 2 {
		t.Errorf("expected key count 2, got %d", g.KeyCount())
	}
}

func TestGate_UnknownKey_Rejected(t *testing.T) {
	t.Parallel()

	g := NewGate([]string{"k1"})
	if err := g.Authenticate("wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for unknown key, got %v", err)
	}
}

func TestGate_EmptyStringsFiltered(t *testing.T) {
	t.Parallel()

	g := NewGate([]string{"", "k1", ""})
	if g.KeyCount() != 1 {
		t.Errorf("expected empty entries filtered, key count=%d", g.KeyCount())
	}
	// An empty presented credential must never match a filtered empty entry.
	if err := g.Authenticate(""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for empty credential, got %v", err)
	}
}
