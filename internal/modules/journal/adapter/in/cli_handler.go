package in

import (
	"context"

	"innertone/internal/modules/journal/dto"
	journalin "innertone/internal/modules/journal/port/in"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, text string) (dto.EntryOutput, error) {
	return h.usecase.Add(ctx, text)
}

func (h CLIHandler) List(ctx context.Context) (dto.ListOutput, error) {
	return h.usecase.Recent(ctx)
}

func (h CLIHandler) Delete(ctx context.Context, displayIndex int) (dto.EntryOutput, error) {
	return h.usecase.Delete(ctx, displayIndex)
}
