package in

import (
	"context"

	"innertone/internal/modules/companion/dto"
)

type Usecase interface {
	Send(ctx context.Context, text string) (dto.ChatOutput, error)
	ToggleRecording(ctx context.Context) (dto.VoiceOutput, error)
	Recording(ctx context.Context) bool
	History(ctx context.Context) []dto.MessageOutput
	Reset(ctx context.Context) error
	Health(ctx context.Context) (dto.HealthOutput, error)
}
