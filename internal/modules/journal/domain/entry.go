package domain

import (
	"strings"
	"time"

	apperrors "innertone/internal/platform/errors"
)

const (
	StorageKey  = "gratitudeEntries"
	DateLayout  = "Jan 2, 2006"
	RecentLimit = 5
)

// Entry is stored exactly as shown: the date is the display string captured
// when the entry was written.
type Entry struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

func NewEntry(text string, now time.Time) (Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, apperrors.ErrInvalidInput
	}
	return Entry{Text: text, Date: now.Format(DateLayout)}, nil
}

// Displayed pairs an entry with its position in the newest-first listing.
type Displayed struct {
	Index int
	Entry Entry
}

// Recent returns up to limit entries, newest first.
func Recent(entries []Entry, limit int) []Displayed {
	out := make([]Displayed, 0, limit)
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, Displayed{Index: len(out), Entry: entries[i]})
	}
	return out
}

// OriginalIndex maps a newest-first display index back to storage order.
func OriginalIndex(total, displayIndex int) (int, error) {
	if displayIndex < 0 || displayIndex >= total {
		return 0, apperrors.ErrNotFound
	}
	return total - 1 - displayIndex, nil
}

func Remove(entries []Entry, displayIndex int) ([]Entry, Entry, error) {
	idx, err := OriginalIndex(len(entries), displayIndex)
	if err != nil {
		return entries, Entry{}, err
	}
	removed := entries[idx]
	out := make([]Entry, 0, len(entries)-1)
	out = append(out, entries[:idx]...)
	out = append(out, entries[idx+1:]...)
	return out, removed, nil
}
