package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"innertone/internal/modules/journal/domain"
	"innertone/internal/modules/journal/service"
	"innertone/internal/platform/clock"
	apperrors "innertone/internal/platform/errors"
)

type memStore struct {
	entries []domain.Entry
	saves   int
	failAt  int
}

func (m *memStore) Load(context.Context) ([]domain.Entry, error) {
	return append([]domain.Entry(nil), m.entries...), nil
}

func (m *memStore) Save(_ context.Context, entries []domain.Entry) error {
	m.saves++
	if m.failAt > 0 && m.saves == m.failAt {
		return fmt.Errorf("disk full")
	}
	m.entries = entries
	return nil
}

func newService(store *memStore) *service.JournalService {
	return service.NewJournalService(clock.Fixed(time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)), store, nil)
}

func TestBlankEntriesAreNeverStored(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	svc := newService(store)
	if _, err := svc.Add(context.Background(), "  "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("blank entry reached the store")
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	svc := newService(store)
	if _, err := svc.Add(context.Background(), "rain on the window"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Delete(context.Background(), 1); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(store.entries) != 1 {
		t.Fatalf("failed delete must not change the journal")
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	t.Parallel()
	store := &memStore{failAt: 2}
	svc := newService(store)
	if _, err := svc.Add(context.Background(), "first"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(context.Background(), "second"); err == nil {
		t.Fatalf("expected save error")
	}
	shown, total, err := svc.Recent(context.Background())
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if total != 1 || shown[0].Entry.Text != "first" || shown[0].Entry.Date != "Apr 9, 2026" {
		t.Fatalf("unexpected journal after failed save: %+v", shown)
	}
}
