package out

import (
	"context"

	"innertone/internal/modules/journal/domain"
)

// EntryStore persists the whole ordered journal under one key.
type EntryStore interface {
	Load(ctx context.Context) ([]domain.Entry, error)
	Save(ctx context.Context, entries []domain.Entry) error
}
