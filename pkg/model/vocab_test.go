package model

import "testing"

func TestVocabularyInterning(t *testing.T) {
	v := newVocabulary()

	// ids are dense and assigned in first-sighting order
	if got := v.getOrCreateID("alpha"); got != 0 {
		t.Errorf("first id = %d, want 0", got)
	}
	if got := v.getOrCreateID("beta"); got != 1 {
		t.Errorf("second id = %d, want 1", got)
	}
	if got := v.getOrCreateID("alpha"); got != 0 {
		t.Errorf("re-interning changed id: %d", got)
	}
	if v.size() != 2 {
		t.Errorf("size = %d, want 2", v.size())
	}
}

func TestVocabularyLookup(t *testing.T) {
	v := newVocabulary()
	v.getOrCreateID("alpha")

	if got := v.lookupID("alpha"); got != 0 {
		t.Errorf("lookupID(alpha) = %d, want 0", got)
	}
	if got := v.lookupID("missing"); got != UnknownWordID {
		t.Errorf("lookupID(missing) = %d, want UnknownWordID", got)
	}
	// lookups never intern
	if v.size() != 1 {
		t.Errorf("read-only lookup grew the vocabulary: size = %d", v.size())
	}

	if got := v.wordByID(0); got != "alpha" {
		t.Errorf("wordByID(0) = %q, want alpha", got)
	}
	if got := v.wordByID(42); got != "" {
		t.Errorf("wordByID out of range = %q, want empty", got)
	}
	if got := v.wordByID(UnknownWordID); got != "" {
		t.Errorf("wordByID(UnknownWordID) = %q, want empty", got)
	}
}

func TestVocabularyReset(t *testing.T) {
	v := newVocabulary()
	v.getOrCreateID("alpha")
	v.reset()
	if v.size() != 0 {
		t.Errorf("size after reset = %d, want 0", v.size())
	}
	// ids restart from zero after a reset
	if got := v.getOrCreateID("beta"); got != 0 {
		t.Errorf("first id after reset = %d, want 0", got)
	}
}
