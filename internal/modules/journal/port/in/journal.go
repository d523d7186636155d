package in

import (
	"context"

	"innertone/internal/modules/journal/dto"
)

type Usecase interface {
	Add(ctx context.Context, text string) (dto.EntryOutput, error)
	Recent(ctx context.Context) (dto.ListOutput, error)
	Delete(ctx context.Context, displayIndex int) (dto.EntryOutput, error)
}
