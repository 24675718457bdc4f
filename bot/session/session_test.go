package session

import (
	"testing"
	"time"

	"github.com/m3rciful/namebot/bot/query"
)

func TestToggleFilter(t *testing.T) {
	s := New(StepFilter)

	if !s.ToggleFilter("genderBoy") {
		t.Fatal("first toggle must select the key")
	}
	if !s.ToggleFilter("european") {
		t.Fatal("first toggle must select the key")
	}
	if len(s.Filters) != 2 {
		t.Fatalf("filters = %v, expected 2 entries", s.Filters)
	}

	if s.ToggleFilter("genderBoy") {
		t.Fatal("second toggle must deselect the key")
	}
	if len(s.Filters) != 1 || s.Filters[0] != "european" {
		t.Fatalf("filters = %v, expected [european]", s.Filters)
	}

	// toggling twice restores the original selection
	s.ToggleFilter("rare")
	s.ToggleFilter("rare")
	if len(s.Filters) != 1 || s.Filters[0] != "european" {
		t.Fatalf("double toggle is not idempotent: %v", s.Filters)
	}
}

func TestStoreSetGetDelete(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Close()

	if _, ok := store.Get(1); ok {
		t.Fatal("expected no session before Set")
	}

	store.Set(1, New(StepMeaning))
	got, ok := store.Get(1)
	if !ok {
		t.Fatal("expected a session after Set")
	}
	if got.Step != StepMeaning {
		t.Fatalf("step = %q, expected %q", got.Step, StepMeaning)
	}
	if !store.Has(1) {
		t.Fatal("Has must report the stored session")
	}

	store.Delete(1)
	if store.Has(1) {
		t.Fatal("Has must report false after Delete")
	}
}

func TestStoreGetReturnsIsolatedCopy(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Close()

	sess := New(StepFilter)
	sess.ToggleFilter("genderBoy")
	sess.Draft = &Draft{ID: 7, Name: "Мирон"}
	pred := query.ByCategory("topPopular")
	sess.Query = &pred
	store.Set(10, sess)

	// mutating the original after Set must not leak into the store
	sess.Filters[0] = "mutated"
	sess.Draft.Name = "mutated"
	sess.Query.Categories[0] = "mutated"

	got, ok := store.Get(10)
	if !ok {
		t.Fatal("expected a session")
	}
	if got.Filters[0] != "genderBoy" {
		t.Fatalf("stored filters aliased the caller's slice: %v", got.Filters)
	}
	if got.Draft.Name != "Мирон" {
		t.Fatalf("stored draft aliased the caller's pointer: %+v", got.Draft)
	}

	// mutating a fetched copy must not affect later reads
	got.ToggleFilter("european")
	got.Draft.ID = 99
	again, _ := store.Get(10)
	if len(again.Filters) != 1 || again.Draft.ID != 7 {
		t.Fatalf("fetched copy aliased the stored session: %+v", again)
	}
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	defer store.Close()

	store.Set(5, New(StepRandom))
	if !store.Has(5) {
		t.Fatal("expected a live session right after Set")
	}

	time.Sleep(40 * time.Millisecond)
	if _, ok := store.Get(5); ok {
		t.Fatal("expected the session to expire")
	}
}

func TestStoreSetRefreshesExpiry(t *testing.T) {
	store := NewStore(50 * time.Millisecond)
	defer store.Close()

	store.Set(6, New(StepLists))
	time.Sleep(30 * time.Millisecond)
	sess, ok := store.Get(6)
	if !ok {
		t.Fatal("session expired too early")
	}
	store.Set(6, sess)

	time.Sleep(30 * time.Millisecond)
	if !store.Has(6) {
		t.Fatal("Set must refresh the expiry baseline")
	}
}

func TestStoreSetNilDeletes(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Close()

	store.Set(7, New(StepFilter))
	store.Set(7, nil)
	if store.Has(7) {
		t.Fatal("Set with nil session must delete the entry")
	}
}

func TestStoreEvict(t *testing.T) {
	store := NewStore(10 * time.Millisecond)
	defer store.Close()

	store.Set(1, New(StepFilter))
	store.Set(2, New(StepLists))
	time.Sleep(20 * time.Millisecond)
	store.Set(3, New(StepRandom))

	store.evict(time.Now())
	if store.Len() != 1 {
		t.Fatalf("len = %d after evict, expected 1", store.Len())
	}
	if !store.Has(3) {
		t.Fatal("evict removed a live session")
	}
}
