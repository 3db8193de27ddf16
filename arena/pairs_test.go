// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package arena

import "testing"

func TestEnsurePairTooFewItems(t *testing.T) {
	tests := []struct {
		name  string
		items []string
	}{
		{"no items", nil},
		{"single item", []string{"Only"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := stateWithItems(tt.items...)
			pair, mutated := EnsurePair(st, "dev-1")
			if pair != nil {
				t.Errorf("EnsurePair() = %v, want nil", pair)
			}
			if mutated {
				t.Error("EnsurePair() reported mutation with too few items")
			}
		})
	}
}

func TestEnsurePairSticky(t *testing.T) {
	st := stateWithItems("A", "B", "C", "D", "E")

	first, mutated := EnsurePair(st, "dev-1")
	if len(first) != 2 {
		t.Fatalf("EnsurePair() returned %d items, want 2", len(first))
	}
	if !mutated {
		t.Error("first EnsurePair() should mutate")
	}
	if first[0].ID == first[1].ID {
		t.Error("pair contains the same item twice")
	}

	// Every repeat fetch returns the identical pair without mutation.
	for i := 0; i < 10; i++ {
		again, mutated := EnsurePair(st, "dev-1")
		if mutated {
			t.Fatal("repeat EnsurePair() mutated state")
		}
		if again[0].ID != first[0].ID || again[1].ID != first[1].ID {
			t.Fatalf("pair changed on repeat fetch: %v vs %v", again, first)
		}
	}
}

func TestEnsurePairPerDevice(t *testing.T) {
	st := stateWithItems("A", "B", "C")

	EnsurePair(st, "dev-1")
	EnsurePair(st, "dev-2")

	if len(st.CurrentPairs) != 2 {
		t.Errorf("CurrentPairs has %d entries, want 2", len(st.CurrentPairs))
	}
}

func TestEnsurePairRevalidatesRemovedItem(t *testing.T) {
	st := stateWithItems("A", "B", "C")

	first, _ := EnsurePair(st, "dev-1")

	// Simulate a stale stored pair referencing a removed item.
	st.CurrentPairs["dev-1"] = [2]string{first[0].ID, "item-gone"}

	pair, mutated := EnsurePair(st, "dev-1")
	if !mutated {
		t.Error("EnsurePair() did not replace a stale pair")
	}
	if pair[0].ID == "item-gone" || pair[1].ID == "item-gone" {
		t.Error("EnsurePair() returned a removed item")
	}
}

func TestEnsurePairEmptyDevice(t *testing.T) {
	st := stateWithItems("A", "B")
	pair, mutated := EnsurePair(st, "")
	if pair != nil || mutated {
		t.Error("EnsurePair() should be a no-op for an empty device ID")
	}
}

func TestAssignNewPair(t *testing.T) {
	st := stateWithItems("A", "B")

	pair := AssignNewPair(st, "dev-1")
	if len(pair) != 2 {
		t.Fatalf("AssignNewPair() returned %d items, want 2", len(pair))
	}
	stored := st.CurrentPairs["dev-1"]
	if stored[0] != pair[0].ID || stored[1] != pair[1].ID {
		t.Error("stored pair does not match returned pair")
	}
}

func TestPickRandomPairDistinct(t *testing.T) {
	st := stateWithItems("A", "B", "C", "D")

	for i := 0; i < 100; i++ {
		a, b, ok := pickRandomPair(st.Items)
		if !ok {
			t.Fatal("pickRandomPair() failed with 4 items")
		}
		if a.ID == b.ID {
			t.Fatal("pickRandomPair() returned the same item twice")
		}
	}
}
