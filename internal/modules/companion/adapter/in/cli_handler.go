package in

import (
	"context"
	"fmt"

	"innertone/internal/modules/companion/dto"
	companionin "innertone/internal/modules/companion/port/in"
)

type CLIHandler struct {
	usecase companionin.Usecase
}

func NewCLIHandler(usecase companionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Chat(ctx context.Context, message string) (dto.ChatOutput, error) {
	return h.usecase.Send(ctx, message)
}

// Voice captures one clip and returns its analysis. A CLI run has no
// interactive toggle, so capture starts and stops back to back.
func (h CLIHandler) Voice(ctx context.Context) (dto.VoiceResult, error) {
	if h.usecase.Recording(ctx) {
		return dto.VoiceResult{}, fmt.Errorf("a recording is already in progress")
	}
	if _, err := h.usecase.ToggleRecording(ctx); err != nil {
		return dto.VoiceResult{}, err
	}
	out, err := h.usecase.ToggleRecording(ctx)
	if err != nil {
		return dto.VoiceResult{}, err
	}
	if out.Result == nil {
		return dto.VoiceResult{}, fmt.Errorf("recording produced no result")
	}
	return *out.Result, nil
}

func (h CLIHandler) ToggleRecording(ctx context.Context) (dto.VoiceOutput, error) {
	return h.usecase.ToggleRecording(ctx)
}

func (h CLIHandler) History(ctx context.Context) []dto.MessageOutput {
	return h.usecase.History(ctx)
}

func (h CLIHandler) Health(ctx context.Context) (dto.HealthOutput, error) {
	return h.usecase.Health(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}
