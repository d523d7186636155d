package out

import (
	"context"

	"innertone/internal/modules/activity/domain"
)

type PracticeLog interface {
	Save(ctx context.Context, practice domain.Practice) (string, error)
	Recent(ctx context.Context, limit int) ([]domain.Practice, error)
}
