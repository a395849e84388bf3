package testutil

import (
	"context"
	"reflect"

	"github.com/google/uuid"
	"github.com/questforge/backend/internal/entity"
	"github.com/questforge/backend/internal/repository"
)

// SampleUser creates a user with randomized fields. Non-zero fields of init
// overwrite the sample before it is persisted.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	userRepo := repository.NewUserRepository()

	sample := &entity.User{
		Base:  entity.Base{ID: uuid.NewString()},
		Name:  uuid.NewString(),
		Role:  entity.RoleUser,
		Level: 1,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := userRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleQuest creates an active quest with randomized fields. Non-zero fields
// of init overwrite the sample before it is persisted.
func SampleQuest(ctx context.Context, init *entity.Quest) (entity.Quest, error) {
	questRepo := repository.NewQuestRepository()

	sample := &entity.Quest{
		Base:               entity.Base{ID: uuid.NewString()},
		Title:              uuid.NewString(),
		Description:        []byte("do the thing and prove it"),
		Category:           entity.CategoryOther,
		ProofType:          entity.ProofAny,
		VerificationMethod: entity.VerificationManual,
		Status:             entity.QuestActive,
		Rewards: entity.Rewards{
			Experience: entity.DefaultRewardExperience,
			Currency:   entity.DefaultRewardCurrency,
			StatPoints: entity.DefaultRewardStatPoints,
		},
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := questRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
