package domain

import (
	"context"

	"github.com/questforge/backend/internal/common"
	"github.com/questforge/backend/internal/model"
	"github.com/questforge/backend/internal/repository"
	"github.com/questforge/backend/pkg/errorx"
	"github.com/questforge/backend/pkg/xcontext"
	"github.com/questforge/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

type StatisticDomain interface {
	GetLeaderBoard(context.Context, *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
}

type statisticDomain struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

func NewStatisticDomain(
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *statisticDomain {
	return &statisticDomain{
		userRepo:    userRepo,
		redisClient: redisClient,
	}
}

func (d *statisticDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
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

	key := common.RedisKeyExperienceLeaderboard
	ok, err := d.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// The board is rebuilt from the database after a redis restart.
	if !ok {
		if err := d.loadLeaderboardFromDB(ctx, key); err != nil {
			return nil, err
		}
	}

	results, err := d.redisClient.ZRevRangeWithScores(ctx, key, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	leaderboard := []model.UserStatistic{}
	for i, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}

		leaderboard = append(leaderboard, model.UserStatistic{
			UserID:      member,
			Experience:  int(z.Score),
			CurrentRank: req.Offset + i + 1,
		})
	}

	resp := &model.GetLeaderBoardResponse{LeaderBoard: leaderboard}

	if userID := xcontext.RequestUserID(ctx); userID != "" {
		rank, err := d.redisClient.ZRevRank(ctx, key, userID)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		} else {
			resp.MyRank = rank + 1
		}
	}

	return resp, nil
}

func (d *statisticDomain) loadLeaderboardFromDB(ctx context.Context, key string) error {
	users, err := d.userRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users for leaderboard: %v", err)
		return errorx.Unknown
	}

	for _, user := range users {
		if user.Experience == 0 {
			continue
		}

		err := d.redisClient.ZAdd(ctx, key, redis.Z{
			Score:  float64(user.Experience),
			Member: user.ID,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot rebuild the leaderboard: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
