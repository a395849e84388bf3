package testutil

import (
	"context"

	"github.com/questforge/backend/internal/entity"
	"github.com/questforge/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base:  entity.Base{ID: "user1"},
		Name:  "user1",
		Role:  entity.RoleUser,
		Level: 1,
	}

	User2 = entity.User{
		Base:  entity.Base{ID: "user2"},
		Name:  "user2",
		Role:  entity.RoleUser,
		Level: 1,
	}

	Admin = entity.User{
		Base:  entity.Base{ID: "admin"},
		Name:  "admin",
		Role:  entity.RoleAdmin,
		Level: 1,
	}

	ManualQuest = entity.Quest{
		Base:               entity.Base{ID: "manual quest"},
		Title:              "Read a book",
		Description:        []byte("Read a book and show it"),
		Category:           entity.CategoryStudy,
		ProofType:          entity.ProofImage,
		VerificationMethod: entity.VerificationManual,
		Status:             entity.QuestActive,
		Rewards: entity.Rewards{
			Experience: entity.DefaultRewardExperience,
			Currency:   entity.DefaultRewardCurrency,
			StatPoints: entity.DefaultRewardStatPoints,
		},
	}

	AIQuest = entity.Quest{
		Base:               entity.Base{ID: "ai quest"},
		Title:              "Morning run",
		Description:        []byte("Record yourself running"),
		Category:           entity.CategoryFitness,
		ProofType:          entity.ProofAny,
		VerificationMethod: entity.VerificationAI,
		Status:             entity.QuestActive,
		Rewards: entity.Rewards{
			Experience: 100,
			Currency:   20,
			StatPoints: 2,
		},
	}

	UnverifiedQuest = entity.Quest{
		Base:               entity.Base{ID: "unverified quest"},
		Title:              "Daily check-in",
		Description:        []byte("Just show up"),
		Category:           entity.CategoryOther,
		ProofType:          entity.ProofAny,
		VerificationMethod: entity.VerificationNone,
		Status:             entity.QuestActive,
		Rewards: entity.Rewards{
			Experience: 25,
			Currency:   5,
			StatPoints: 1,
		},
	}

	DraftQuest = entity.Quest{
		Base:               entity.Base{ID: "draft quest"},
		Title:              "Unpublished",
		Category:           entity.CategoryOther,
		ProofType:          entity.ProofAny,
		VerificationMethod: entity.VerificationManual,
		Status:             entity.QuestDraft,
	}
)

func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertQuests(ctx)
}

func insertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	for _, user := range []entity.User{User1, User2, Admin} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func insertQuests(ctx context.Context) {
	questRepo := repository.NewQuestRepository()

	for _, quest := range []entity.Quest{ManualQuest, AIQuest, UnverifiedQuest, DraftQuest} {
		quest := quest
		if err := questRepo.Create(ctx, &quest); err != nil {
			panic(err)
		}
	}
}
