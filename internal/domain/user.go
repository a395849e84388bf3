package domain

import (
	"context"
	"errors"

	"github.com/questforge/backend/internal/model"
	"github.com/questforge/backend/internal/repository"
	"github.com/questforge/backend/pkg/errorx"
	"github.com/questforge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{userRepo: userRepo}
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	userID := req.ID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	completedQuestIDs, err := d.userRepo.GetCompletedQuestIDs(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get completed quests: %v", err)
		return nil, errorx.Unknown
	}

	activeQuestIDs, err := d.userRepo.GetActiveQuestIDs(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active quests: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetUserResponse(model.ConvertUser(user, completedQuestIDs, activeQuestIDs))
	return &resp, nil
}
