package migration

import (
	"context"

	"github.com/questforge/backend/internal/entity"
	"github.com/questforge/backend/pkg/xcontext"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Quest{},
		&entity.Submission{},
		&entity.CompletedQuest{},
		&entity.ActiveQuest{},
	)
}
