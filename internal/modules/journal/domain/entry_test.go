package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"innertone/internal/modules/journal/domain"
	apperrors "innertone/internal/platform/errors"
)

func entries(n int) []domain.Entry {
	out := make([]domain.Entry, n)
	for i := range out {
		out[i] = domain.Entry{Text: fmt.Sprintf("entry %d", i), Date: "Jan 1, 2026"}
	}
	return out
}

func TestNewEntryRejectsBlankText(t *testing.T) {
	t.Parallel()
	if _, err := domain.NewEntry("   \n", time.Now()); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	e, err := domain.NewEntry("  sunshine ", time.Date(2026, 2, 7, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}
	if e.Text != "sunshine" || e.Date != "Feb 7, 2026" {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestRecentIsNewestFirstAndCapped(t *testing.T) {
	t.Parallel()
	got := domain.Recent(entries(8), domain.RecentLimit)
	if len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}
	for i, d := range got {
		if d.Index != i || d.Entry.Text != fmt.Sprintf("entry %d", 7-i) {
			t.Fatalf("position %d holds %+v", i, d)
		}
	}
	if len(domain.Recent(nil, 5)) != 0 {
		t.Fatalf("empty journal lists nothing")
	}
}

func TestRemoveDeletesDisplayedEntry(t *testing.T) {
	t.Parallel()
	all := entries(6)
	for display := 0; display < 6; display++ {
		kept, removed, err := domain.Remove(all, display)
		if err != nil {
			t.Fatalf("remove %d: %v", display, err)
		}
		want := domain.Recent(all, 6)[display].Entry
		if removed != want {
			t.Fatalf("display %d removed %q, want %q", display, removed.Text, want.Text)
		}
		if len(kept) != 5 {
			t.Fatalf("expected 5 remaining")
		}
		for _, e := range kept {
			if e == removed {
				t.Fatalf("removed entry still present")
			}
		}
	}
	if _, _, err := domain.Remove(all, 6); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := domain.Remove(all, -1); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for negative index, got %v", err)
	}
}
