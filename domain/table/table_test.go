package table

import (
	"errors"
	"testing"
)

func TestKeyFormat(t *testing.T) {
	c := Context{Players: SixMax, Position: BTN, Stack: BB10}
	if got := c.Key(); got != "6-BTN-10bb" {
		t.Fatalf("expected 6-BTN-10bb, got %s", got)
	}
	c = Context{Players: NineMax, Position: UTG1, Stack: BB5}
	if got := c.Key(); got != "9-UTG+1-5bb" {
		t.Fatalf("expected 9-UTG+1-5bb, got %s", got)
	}
}

func TestKeysAreUniqueAndInvertible(t *testing.T) {
	all := AllContexts()
	if len(all) != (1+3+5+8)*4 {
		t.Fatalf("expected 68 contexts, got %d", len(all))
	}
	seen := make(map[string]Context)
	for _, c := range all {
		key := c.Key()
		if prev, ok := seen[key]; ok {
			t.Fatalf("%v and %v share key %s", prev, c, key)
		}
		seen[key] = c
		back, err := ParseKey(key)
		if err != nil {
			t.Fatalf("ParseKey(%s): %v", key, err)
		}
		if back != c {
			t.Fatalf("ParseKey(%s) = %v, want %v", key, back, c)
		}
	}
}

func TestParseKeyRejects(t *testing.T) {
	for _, key := range []string{"", "6-BTN", "6-BTN-10bb-x", "06-BTN-10bb", "x-BTN-10bb", "6-DEALER-10bb", "6-BTN-7bb", "2-BTN-10bb", "6-BB-10bb", "3-SB-5bb"} {
		if _, err := ParseKey(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ParseKey(%q): expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestLegalPositions(t *testing.T) {
	if got := LegalPositions(HeadsUp); len(got) != 1 || got[0] != SB {
		t.Fatalf("heads-up positions = %v", got)
	}
	if got := LegalPositions(NineMax); len(got) != 8 {
		t.Fatalf("9-max positions = %v", got)
	}
	for _, n := range PlayerCounts {
		for _, p := range LegalPositions(n) {
			if p == BB {
				t.Fatalf("BB listed as first-in at %s", n.Label())
			}
		}
	}
	if got := LegalPositions(5); len(got) != 0 {
		t.Fatalf("unknown table size should have no positions, got %v", got)
	}

	got := LegalPositions(FourMax)
	got[0] = UTG
	if LegalPositions(FourMax)[0] != CO {
		t.Fatal("LegalPositions leaked its backing slice")
	}
}

func TestValidate(t *testing.T) {
	if err := (Context{Players: FourMax, Position: CO, Stack: BB20}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := []Context{
		{Players: 3, Position: SB, Stack: BB5},
		{Players: FourMax, Position: HJ, Stack: BB5},
		{Players: SixMax, Position: BB, Stack: BB5},
		{Players: SixMax, Position: BTN, Stack: "100bb"},
	}
	for _, c := range bad {
		if err := c.Validate(); !errors.Is(err, ErrInvalidContext) {
			t.Errorf("%v: expected ErrInvalidContext, got %v", c, err)
		}
	}
}
