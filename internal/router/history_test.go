package router

import "testing"

func TestHistoryBackForward(t *testing.T) {
	h := NewHistory(New(testCatalog(t)))

	if _, ok := h.Current(); ok {
		t.Fatal("empty history has a current entry")
	}
	if _, ok := h.Back(); ok {
		t.Fatal("Back on empty history succeeded")
	}

	h.Push("/")
	h.Push("/inheritance")
	h.Push("/inheritance/multiple")

	nav, ok := h.Back()
	if !ok || nav.UnitID != "single" {
		t.Fatalf("Back = %+v, %v", nav, ok)
	}
	nav, ok = h.Back()
	if !ok || nav.Kind != KindWelcome {
		t.Fatalf("Back = %+v, %v", nav, ok)
	}
	if _, ok := h.Back(); ok {
		t.Error("Back past the first entry succeeded")
	}

	nav, ok = h.Forward()
	if !ok || nav.UnitID != "single" {
		t.Fatalf("Forward = %+v, %v", nav, ok)
	}
	nav, ok = h.Forward()
	if !ok || nav.UnitID != "multiple" {
		t.Fatalf("Forward = %+v, %v", nav, ok)
	}
	if _, ok := h.Forward(); ok {
		t.Error("Forward past the last entry succeeded")
	}
}

func TestHistoryPushTruncatesForward(t *testing.T) {
	h := NewHistory(New(testCatalog(t)))
	h.Push("/inheritance/single")
	h.Push("/inheritance/multiple")
	h.Push("/inheritance/multilevel")
	h.Back()
	h.Back()

	h.Push("/encapsulation")
	if h.Len() != 2 {
		t.Errorf("Len = %d, want 2", h.Len())
	}
	if _, ok := h.Forward(); ok {
		t.Error("forward entries survived a push")
	}
	cur, _ := h.Current()
	if cur.Kind != KindOverview || cur.ConceptID != "encapsulation" {
		t.Errorf("Current = %+v", cur)
	}
}

func TestHistoryKeepsNotFoundEntries(t *testing.T) {
	h := NewHistory(New(testCatalog(t)))
	h.Push("/inheritance")
	nav := h.Push("/inheritance/doesnotexist")
	if nav.Kind != KindNotFound {
		t.Fatalf("Push = %+v", nav)
	}
	back, ok := h.Back()
	if !ok || back.UnitID != "single" {
		t.Errorf("Back = %+v, %v", back, ok)
	}
	fwd, _ := h.Forward()
	if fwd.Kind != KindNotFound {
		t.Errorf("Forward = %+v", fwd)
	}
}
