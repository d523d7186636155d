package in

import (
	"context"

	"innertone/internal/modules/ambient/dto"
)

type Usecase interface {
	Scenes(ctx context.Context) []dto.SceneOutput
	Start(ctx context.Context, sceneID string) (dto.StatusOutput, error)
	Stop(ctx context.Context) dto.StatusOutput
	Toggle(ctx context.Context, sceneID string) (dto.StatusOutput, error)
	SetVolume(ctx context.Context, percent int) dto.StatusOutput
	Status(ctx context.Context) dto.StatusOutput
}
