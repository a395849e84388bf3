package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/questforge/backend/internal/common"
	"github.com/questforge/backend/internal/entity"
	"github.com/questforge/backend/internal/model"
	"github.com/questforge/backend/internal/repository"
	"github.com/questforge/backend/pkg/enum"
	"github.com/questforge/backend/pkg/errorx"
	"github.com/questforge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type QuestDomain interface {
	Create(context.Context, *model.CreateQuestRequest) (*model.CreateQuestResponse, error)
	Get(context.Context, *model.GetQuestRequest) (*model.GetQuestResponse, error)
	GetList(context.Context, *model.GetListQuestRequest) (*model.GetListQuestResponse, error)
}

type questDomain struct {
	questRepo    repository.QuestRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewQuestDomain(
	questRepo repository.QuestRepository,
	userRepo repository.UserRepository,
) *questDomain {
	return &questDomain{
		questRepo:    questRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *questDomain) Create(
	ctx context.Context, req *model.CreateQuestRequest,
) (*model.CreateQuestResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	category, err := enum.ToEnum[entity.QuestCategory](req.Category)
	if err != nil {
		category = entity.CategoryOther
	}

	proofType, err := enum.ToEnum[entity.ProofType](req.ProofType)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid proof type: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid proof type %s", req.ProofType)
	}

	method, err := enum.ToEnum[entity.VerificationMethod](req.VerificationMethod)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid verification method: %v", err)
		return nil, errorx.New(errorx.BadRequest,
			"Invalid verification method %s", req.VerificationMethod)
	}

	quest := &entity.Quest{
		Base:               entity.Base{ID: uuid.NewString()},
		Title:              req.Title,
		Description:        []byte(req.Description),
		Category:           category,
		ProofType:          proofType,
		VerificationMethod: method,
		Status:             entity.QuestActive,
		// Reward defaults are resolved here, once, so the settlement path
		// never needs to special-case absent values.
		Rewards: resolveRewards(req),
	}

	if err := d.questRepo.Create(ctx, quest); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create quest: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateQuestResponse{ID: quest.ID}, nil
}

func resolveRewards(req *model.CreateQuestRequest) entity.Rewards {
	rewards := entity.Rewards{
		Experience: req.Experience,
		Currency:   req.Currency,
		StatPoints: req.StatPoints,
		Items:      req.Items,
	}

	if rewards.Experience == 0 {
		rewards.Experience = entity.DefaultRewardExperience
	}

	if rewards.Currency == 0 {
		rewards.Currency = entity.DefaultRewardCurrency
	}

	if rewards.StatPoints == 0 {
		rewards.StatPoints = entity.DefaultRewardStatPoints
	}

	if rewards.Items == nil {
		rewards.Items = entity.Array[string]{}
	}

	return rewards
}

func (d *questDomain) Get(
	ctx context.Context, req *model.GetQuestRequest,
) (*model.GetQuestResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	quest, err := d.questRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetQuestResponse(model.ConvertQuest(quest))
	return &resp, nil
}

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetListQuestRequest,
) (*model.GetListQuestResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	result, err := d.questRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of quests: %v", err)
		return nil, errorx.Unknown
	}

	quests := []model.Quest{}
	for i := range result {
		quests = append(quests, model.ConvertQuest(&result[i]))
	}

	return &model.GetListQuestResponse{Quests: quests}, nil
}
