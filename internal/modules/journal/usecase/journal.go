package usecase

import (
	"context"

	"innertone/internal/modules/journal/dto"
	journalin "innertone/internal/modules/journal/port/in"
	"innertone/internal/modules/journal/service"
)

type Interactor struct {
	svc *service.JournalService
}

func NewInteractor(svc *service.JournalService) journalin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Add(ctx context.Context, text string) (dto.EntryOutput, error) {
	entry, err := i.svc.Add(ctx, text)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return dto.EntryOutput{Index: 0, Text: entry.Text, Date: entry.Date}, nil
}

func (i *Interactor) Recent(ctx context.Context) (dto.ListOutput, error) {
	shown, total, err := i.svc.Recent(ctx)
	if err != nil {
		return dto.ListOutput{}, err
	}
	out := dto.ListOutput{Total: total, Entries: make([]dto.EntryOutput, 0, len(shown))}
	for _, d := range shown {
		out.Entries = append(out.Entries, dto.EntryOutput{Index: d.Index, Text: d.Entry.Text, Date: d.Entry.Date})
	}
	return out, nil
}

func (i *Interactor) Delete(ctx context.Context, displayIndex int) (dto.EntryOutput, error) {
	entry, err := i.svc.Delete(ctx, displayIndex)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return dto.EntryOutput{Index: displayIndex, Text: entry.Text, Date: entry.Date}, nil
}
