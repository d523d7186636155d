package service

import (
	"context"
	"sync"

	"github.com/hashicorp/go-hclog"

	"innertone/internal/modules/journal/domain"
	journalout "innertone/internal/modules/journal/port/out"
	"innertone/internal/platform/clock"
)

type JournalService struct {
	mu    sync.Mutex
	clock clock.Clock
	store journalout.EntryStore
	log   hclog.Logger
}

func NewJournalService(clock clock.Clock, store journalout.EntryStore, log hclog.Logger) *JournalService {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &JournalService{clock: clock, store: store, log: log}
}

func (s *JournalService) Add(ctx context.Context, text string) (domain.Entry, error) {
	entry, err := domain.NewEntry(text, s.clock.Now())
	if err != nil {
		return domain.Entry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.store.Load(ctx)
	if err != nil {
		return domain.Entry{}, err
	}
	entries = append(entries, entry)
	if err := s.store.Save(ctx, entries); err != nil {
		s.log.Error("journal save failed", "error", err)
		return domain.Entry{}, err
	}
	return entry, nil
}

func (s *JournalService) Recent(ctx context.Context) ([]domain.Displayed, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.store.Load(ctx)
	if err != nil {
		return nil, 0, err
	}
	return domain.Recent(entries, domain.RecentLimit), len(entries), nil
}

func (s *JournalService) Delete(ctx context.Context, displayIndex int) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.store.Load(ctx)
	if err != nil {
		return domain.Entry{}, err
	}
	kept, removed, err := domain.Remove(entries, displayIndex)
	if err != nil {
		return domain.Entry{}, err
	}
	if err := s.store.Save(ctx, kept); err != nil {
		s.log.Error("journal save failed", "error", err)
		return domain.Entry{}, err
	}
	return removed, nil
}
