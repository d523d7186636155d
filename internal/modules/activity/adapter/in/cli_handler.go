package in

import (
	"context"

	"innertone/internal/modules/activity/dto"
	activityin "innertone/internal/modules/activity/port/in"
)

type CLIHandler struct {
	usecase activityin.Usecase
}

func NewCLIHandler(usecase activityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Breathe(ctx context.Context) dto.BreathingView {
	return h.usecase.StartBreathing(ctx)
}

func (h CLIHandler) StopBreathing(ctx context.Context) dto.BreathingView {
	return h.usecase.StopBreathing(ctx)
}

// Meditate selects a preset and starts the countdown.
func (h CLIHandler) Meditate(ctx context.Context, minutes int) (dto.MeditationView, error) {
	if _, err := h.usecase.SelectMeditation(ctx, minutes); err != nil {
		return dto.MeditationView{}, err
	}
	return h.usecase.StartMeditation(ctx)
}

func (h CLIHandler) Relax(ctx context.Context) dto.RelaxationView {
	return h.usecase.StartRelaxation(ctx)
}

func (h CLIHandler) StopAll(ctx context.Context) dto.Snapshot {
	return h.usecase.StopAll(ctx)
}

func (h CLIHandler) Subscribe(fn func(dto.Event)) func() {
	return h.usecase.Subscribe(fn)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]dto.PracticeOutput, error) {
	return h.usecase.History(ctx, limit)
}
