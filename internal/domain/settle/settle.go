package settle

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/questforge/backend/internal/common"
	"github.com/questforge/backend/internal/domain/notification"
	"github.com/questforge/backend/internal/repository"
	"github.com/questforge/backend/pkg/errorx"
	"github.com/questforge/backend/pkg/xcontext"
	"github.com/questforge/backend/pkg/xredis"
	"gorm.io/gorm"
)

type Outcome struct {
	AlreadyCompleted bool

	ExperienceGained int
	CurrencyGained   int
	StatPointsGained int

	LeveledUp bool
	OldLevel  int
	NewLevel  int
}

// Service grants rewards for an approved submission exactly once per
// (user, quest) pair.
type Service struct {
	questRepo   repository.QuestRepository
	userRepo    repository.UserRepository
	notifier    notification.Notifier
	redisClient xredis.Client
}

func NewService(
	questRepo repository.QuestRepository,
	userRepo repository.UserRepository,
	notifier notification.Notifier,
	redisClient xredis.Client,
) *Service {
	return &Service{
		questRepo:   questRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		redisClient: redisClient,
	}
}

// LevelForExperience maps a cumulative experience total to a level.
func LevelForExperience(experience int) int {
	return 1 + int(math.Sqrt(float64(experience)/100))
}

func (s *Service) Settle(ctx context.Context, userID, questID string) (*Outcome, error) {
	quest, err := s.questRepo.GetByID(ctx, questID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The completed-set insert is the only synchronization point. Everything
	// after it runs at most once per (user, quest) pair.
	first, err := s.userRepo.CompleteQuest(ctx, userID, questID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record quest completion: %v", err)
		return nil, errorx.Unknown
	}

	if !first {
		return &Outcome{AlreadyCompleted: true}, nil
	}

	// Levels are derived from the experience total the grant produced inside
	// this transaction. A snapshot read from before the transaction could miss
	// a settlement of another quest that committed in between and persist a
	// level computed from stale experience.
	user, err := s.userRepo.ApplyRewards(ctx, userID, quest.Rewards)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot apply rewards: %v", err)
		return nil, errorx.Unknown
	}

	oldLevel := user.Level
	newLevel := LevelForExperience(user.Experience)

	if newLevel != oldLevel {
		if err := s.userRepo.UpdateLevel(ctx, userID, newLevel); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update level: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := s.userRepo.StopQuest(ctx, userID, questID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot remove active quest: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	outcome := &Outcome{
		ExperienceGained: quest.Rewards.Experience,
		CurrencyGained:   quest.Rewards.Currency,
		StatPointsGained: quest.Rewards.StatPoints,
		LeveledUp:        newLevel > oldLevel,
		OldLevel:         oldLevel,
		NewLevel:         newLevel,
	}

	s.notifier.Emit(ctx, notification.New(
		notification.QuestCompletionEvent{
			QuestID: questID,
			Title:   "Quest completed",
			Message: fmt.Sprintf("You completed %q and earned %d experience", quest.Title, quest.Rewards.Experience),
		},
		notification.Metadata{To: userID},
	))

	if outcome.LeveledUp {
		s.notifier.Emit(ctx, notification.New(
			notification.LevelUpEvent{
				OldLevel: oldLevel,
				NewLevel: newLevel,
				Title:    "Level up",
				Message:  fmt.Sprintf("You reached level %d", newLevel),
			},
			notification.Metadata{To: userID},
		))
	}

	if err := s.redisClient.ZIncrBy(
		ctx, common.RedisKeyExperienceLeaderboard,
		int64(quest.Rewards.Experience), userID,
	); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update experience leaderboard: %v", err)
	}

	return outcome, nil
}
