package in

import (
	"context"

	"innertone/internal/modules/activity/dto"
)

type Usecase interface {
	StartBreathing(ctx context.Context) dto.BreathingView
	StopBreathing(ctx context.Context) dto.BreathingView
	ToggleBreathing(ctx context.Context) dto.BreathingView

	SelectMeditation(ctx context.Context, minutes int) (dto.MeditationView, error)
	StartMeditation(ctx context.Context) (dto.MeditationView, error)
	PauseMeditation(ctx context.Context) dto.MeditationView
	ResumeMeditation(ctx context.Context) (dto.MeditationView, error)
	ResetMeditation(ctx context.Context) dto.MeditationView

	StartRelaxation(ctx context.Context) dto.RelaxationView
	StopRelaxation(ctx context.Context) dto.RelaxationView

	Snapshot(ctx context.Context) dto.Snapshot
	StopAll(ctx context.Context) dto.Snapshot
	// Subscribe registers fn for machine events. fn runs on the scheduler
	// thread and must not call back into the Usecase.
	Subscribe(fn func(dto.Event)) (cancel func())
	History(ctx context.Context, limit int) ([]dto.PracticeOutput, error)
}
