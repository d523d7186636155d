package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	journalout "innertone/internal/modules/journal/adapter/out"
	"innertone/internal/modules/journal/service"
	"innertone/internal/modules/journal/usecase"
	"innertone/internal/platform/clock"
)

func TestJournalSurvivesReopen(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), ".innertone", "innertone.db")
	ctx := context.Background()
	now := clock.Fixed(time.Date(2026, 1, 15, 20, 0, 0, 0, time.UTC))

	store, err := journalout.NewSQLiteEntryStore(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	uc := usecase.NewInteractor(service.NewJournalService(now, store, nil))
	for _, text := range []string{"a warm coffee", "a call with mum", "the walk home"} {
		if _, err := uc.Add(ctx, text); err != nil {
			t.Fatalf("add %q: %v", text, err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := journalout.NewSQLiteEntryStore(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	uc = usecase.NewInteractor(service.NewJournalService(now, reopened, nil))
	list, err := uc.Recent(ctx)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if list.Total != 3 || list.Entries[0].Text != "the walk home" || list.Entries[0].Date != "Jan 15, 2026" {
		t.Fatalf("journal not restored: %+v", list)
	}

	removed, err := uc.Delete(ctx, 1)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed.Text != "a call with mum" {
		t.Fatalf("deleted the wrong entry: %+v", removed)
	}
	entries, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 || entries[0].Text != "a warm coffee" || entries[1].Text != "the walk home" {
		t.Fatalf("unexpected stored entries %+v", entries)
	}
}

func TestEmptyStoreLoadsEmptyList(t *testing.T) {
	t.Parallel()
	store, err := journalout.NewSQLiteEntryStore(filepath.Join(t.TempDir(), "j.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	entries, err := store.Load(context.Background())
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty journal, got %v %v", entries, err)
	}
	if err := store.Save(context.Background(), nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
}
