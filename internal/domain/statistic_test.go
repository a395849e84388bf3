package domain

import (
	"context"
	"testing"

	"github.com/questforge/backend/internal/model"
	"github.com/questforge/backend/internal/repository"
	"github.com/questforge/backend/pkg/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetLeaderBoard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	redisClient := &testutil.MockRedisClient{
		ExistFunc: func(_ context.Context, _ string) (bool, error) {
			return true, nil
		},
		ZRevRangeWithScoresFunc: func(_ context.Context, _ string, offset, limit int) ([]redis.Z, error) {
			return []redis.Z{
				{Member: testutil.User2.ID, Score: 300},
				{Member: testutil.User1.ID, Score: 150},
			}, nil
		},
		ZRevRankFunc: func(_ context.Context, _ string, member string) (uint64, error) {
			return 1, nil
		},
	}

	d := NewStatisticDomain(repository.NewUserRepository(), redisClient)

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := d.GetLeaderBoard(userCtx, &model.GetLeaderBoardRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.LeaderBoard, 2)
	require.Equal(t, testutil.User2.ID, resp.LeaderBoard[0].UserID)
	require.Equal(t, 300, resp.LeaderBoard[0].Experience)
	require.Equal(t, 1, resp.LeaderBoard[0].CurrentRank)
	require.Equal(t, testutil.User1.ID, resp.LeaderBoard[1].UserID)
	require.Equal(t, 2, resp.LeaderBoard[1].CurrentRank)
	require.Equal(t, uint64(2), resp.MyRank)
}

func Test_statisticDomain_GetLeaderBoard_RebuildsFromDB(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()

	// Give the users some experience to rebuild from.
	_, err := userRepo.ApplyRewards(ctx, testutil.User1.ID, testutil.AIQuest.Rewards)
	require.NoError(t, err)

	added := map[string]float64{}
	redisClient := &testutil.MockRedisClient{
		ExistFunc: func(_ context.Context, _ string) (bool, error) {
			return false, nil
		},
		ZAddFunc: func(_ context.Context, _ string, z redis.Z) error {
			added[z.Member.(string)] = z.Score
			return nil
		},
	}

	d := NewStatisticDomain(userRepo, redisClient)

	_, err = d.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Limit: 10})
	require.NoError(t, err)

	// Only users with experience are written back.
	require.Equal(t, map[string]float64{
		testutil.User1.ID: float64(testutil.AIQuest.Rewards.Experience),
	}, added)
}
