package fingerprint

import "testing"

func TestSearch_Deterministic(t *testing.T) {
	a := Search("etf basics", "grouped", "7d", "india")
	b := Search("etf basics", "grouped", "7d", "india")
	if a != b {
		t.Errorf("same inputs produced different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(a))
	}
}

func TestSearch_EveryParameterMatters(t *testing.T) {
	base := Search("etf basics", "grouped", "7d", "india")

	variants := map[string]string{
		"query":  Search("etf basic", "grouped", "7d", "india"),
		"mode":   Search("etf basics", "generic", "7d", "india"),
		"window": Search("etf basics", "grouped", "24h", "india"),
		"group":  Search("etf basics", "grouped", "7d", "usa"),
	}
	for param, fp := range variants {
		if fp == base {
			t.Errorf("changing %s did not change the fingerprint", param)
		}
	}
}

func TestSearch_FieldBoundariesAreUnambiguous(t *testing.T) {
	// Shifting characters across field boundaries must not collide.
	a := Search("ab", "c", "", "")
	b := Search("a", "bc", "", "")
	if a == b {
		t.Error("adjacent fields collided")
	}

	// Queries are free text, so even bytes that look like framing must stay
	// confined to their own field.
	a = Search("a\x1fb", "c", "", "")
	b = Search("a", "b\x1fc", "", "")
	if a == b {
		t.Error("control byte in query shifted content across fields")
	}
}
