package repository

import (
	"context"

	"github.com/questforge/backend/internal/entity"
	"github.com/questforge/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)

	// CompleteQuest inserts the (user, quest) pair into the completed set. It
	// returns true only for the first caller; every later call is a conflict
	// on the composite key and returns false. This is the single guard that
	// keeps settlement idempotent under concurrent callers.
	CompleteQuest(ctx context.Context, userID, questID string) (bool, error)

	IsCompleted(ctx context.Context, userID, questID string) (bool, error)

	// ApplyRewards adds the reward deltas in a single guarded UPDATE and
	// returns the user row as it stands after the grant. Callers that derive
	// the level from experience must use the returned aggregate, not any value
	// read before the grant.
	ApplyRewards(ctx context.Context, userID string, rewards entity.Rewards) (*entity.User, error)

	UpdateLevel(ctx context.Context, userID string, level int) error

	StartQuest(ctx context.Context, userID, questID string) error
	StopQuest(ctx context.Context, userID, questID string) error
	GetCompletedQuestIDs(ctx context.Context, userID string) ([]string, error)
	GetActiveQuestIDs(ctx context.Context, userID string) ([]string, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]entity.User, error) {
	var result []entity.User
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) CompleteQuest(ctx context.Context, userID, questID string) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.CompletedQuest{UserID: userID, QuestID: questID})
	if err := tx.Error; err != nil {
		return false, err
	}

	return tx.RowsAffected == 1, nil
}

func (r *userRepository) IsCompleted(ctx context.Context, userID, questID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.CompletedQuest{}).
		Where("user_id=? AND quest_id=?", userID, questID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *userRepository) ApplyRewards(
	ctx context.Context, userID string, rewards entity.Rewards,
) (*entity.User, error) {
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", userID).
		Updates(map[string]any{
			"experience":  gorm.Expr("experience + ?", rewards.Experience),
			"currency":    gorm.Expr("currency + ?", rewards.Currency),
			"stat_points": gorm.Expr("stat_points + ?", rewards.StatPoints),
		}).Error
	if err != nil {
		return nil, err
	}

	// Re-read after the increment so the caller sees the totals this grant
	// produced, even when another settlement committed between the caller's
	// earlier snapshot and the UPDATE above.
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) UpdateLevel(ctx context.Context, userID string, level int) error {
	return xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", userID).
		Update("level", level).Error
}

func (r *userRepository) StartQuest(ctx context.Context, userID, questID string) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.ActiveQuest{UserID: userID, QuestID: questID}).Error
}

func (r *userRepository) StopQuest(ctx context.Context, userID, questID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND quest_id=?", userID, questID).
		Delete(&entity.ActiveQuest{}).Error
}

func (r *userRepository) GetCompletedQuestIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := xcontext.DB(ctx).Model(&entity.CompletedQuest{}).
		Where("user_id=?", userID).
		Order("created_at ASC").
		Pluck("quest_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *userRepository) GetActiveQuestIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := xcontext.DB(ctx).Model(&entity.ActiveQuest{}).
		Where("user_id=?", userID).
		Order("created_at ASC").
		Pluck("quest_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
