package in

import (
	"context"

	"innertone/internal/modules/ambient/dto"
	ambientin "innertone/internal/modules/ambient/port/in"
)

type CLIHandler struct {
	usecase ambientin.Usecase
}

func NewCLIHandler(usecase ambientin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Scenes(ctx context.Context) []dto.SceneOutput {
	return h.usecase.Scenes(ctx)
}

func (h CLIHandler) Play(ctx context.Context, sceneID string) (dto.StatusOutput, error) {
	return h.usecase.Start(ctx, sceneID)
}

func (h CLIHandler) Toggle(ctx context.Context, sceneID string) (dto.StatusOutput, error) {
	return h.usecase.Toggle(ctx, sceneID)
}

func (h CLIHandler) Stop(ctx context.Context) dto.StatusOutput {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) SetVolume(ctx context.Context, percent int) dto.StatusOutput {
	return h.usecase.SetVolume(ctx, percent)
}

func (h CLIHandler) Status(ctx context.Context) dto.StatusOutput {
	return h.usecase.Status(ctx)
}
