package repository_test

import (
	"testing"
	"time"

	"github.com/questforge/backend/internal/entity"
	"github.com/questforge/backend/internal/repository"
	"github.com/questforge/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_submissionRepository_Transition(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	submissionRepo := repository.NewSubmissionRepository()

	submission := &entity.Submission{
		Base:     entity.Base{ID: "submission1"},
		QuestID:  testutil.ManualQuest.ID,
		UserID:   testutil.User1.ID,
		Type:     entity.SubmissionImage,
		MediaRef: "media/submission1.jpg",
		Status:   entity.Pending,
	}
	require.NoError(t, submissionRepo.Create(ctx, submission))

	applied, err := submissionRepo.Transition(ctx, submission.ID, &repository.SubmissionResolution{
		Status:     entity.Approved,
		ReviewerID: testutil.Admin.ID,
		ReviewedAt: time.Now(),
	})
	require.NoError(t, err)
	require.True(t, applied)

	// The second writer loses and the record keeps the first verdict.
	applied, err = submissionRepo.Transition(ctx, submission.ID, &repository.SubmissionResolution{
		Status: entity.Rejected,
	})
	require.NoError(t, err)
	require.False(t, applied)

	got, err := submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Approved, got.Status)
	require.Equal(t, testutil.Admin.ID, got.ReviewerID)
}

func Test_submissionRepository_Transition_KeepsAnalysisResult(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	submissionRepo := repository.NewSubmissionRepository()

	submission := &entity.Submission{
		Base:     entity.Base{ID: "submission1"},
		QuestID:  testutil.AIQuest.ID,
		UserID:   testutil.User1.ID,
		Type:     entity.SubmissionVideo,
		MediaRef: "media/run.mp4",
		Status:   entity.Pending,
	}
	require.NoError(t, submissionRepo.Create(ctx, submission))

	applied, err := submissionRepo.Transition(ctx, submission.ID, &repository.SubmissionResolution{
		Status: entity.Rejected,
		AnalysisResult: &entity.AnalysisResult{
			Success:    false,
			Confidence: 0.66,
			Feedback:   "Could not verify the submitted proof",
		},
	})
	require.NoError(t, err)
	require.True(t, applied)

	got, err := submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Rejected, got.Status)
	require.NotNil(t, got.AnalysisResult)
	require.Equal(t, 0.66, got.AnalysisResult.Confidence)
}

func Test_submissionRepository_OverrideAutoRejection(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	submissionRepo := repository.NewSubmissionRepository()

	submission := &entity.Submission{
		Base:     entity.Base{ID: "submission1"},
		QuestID:  testutil.AIQuest.ID,
		UserID:   testutil.User1.ID,
		Type:     entity.SubmissionVideo,
		MediaRef: "media/run.mp4",
		Status:   entity.Pending,
	}
	require.NoError(t, submissionRepo.Create(ctx, submission))

	// The analysis engine rejects without a reviewer.
	applied, err := submissionRepo.Transition(ctx, submission.ID, &repository.SubmissionResolution{
		Status:         entity.Rejected,
		AnalysisResult: &entity.AnalysisResult{Success: false, Confidence: 0.66},
	})
	require.NoError(t, err)
	require.True(t, applied)

	// An admin approval overturns the automatic rejection.
	applied, err = submissionRepo.OverrideAutoRejection(ctx, submission.ID, &repository.SubmissionResolution{
		Status:      entity.Approved,
		ReviewerID:  testutil.Admin.ID,
		ReviewNotes: "proof is fine",
		ReviewedAt:  time.Now(),
	})
	require.NoError(t, err)
	require.True(t, applied)

	got, err := submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Approved, got.Status)
	require.Equal(t, testutil.Admin.ID, got.ReviewerID)

	// Once a reviewer decided, nothing moves the status again.
	applied, err = submissionRepo.OverrideAutoRejection(ctx, submission.ID, &repository.SubmissionResolution{
		Status:     entity.Approved,
		ReviewerID: testutil.Admin.ID,
	})
	require.NoError(t, err)
	require.False(t, applied)
}

func Test_submissionRepository_OverrideAutoRejection_NotAfterManualReject(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	submissionRepo := repository.NewSubmissionRepository()

	submission := &entity.Submission{
		Base:     entity.Base{ID: "submission1"},
		QuestID:  testutil.ManualQuest.ID,
		UserID:   testutil.User1.ID,
		Type:     entity.SubmissionImage,
		MediaRef: "media/book.jpg",
		Status:   entity.Pending,
	}
	require.NoError(t, submissionRepo.Create(ctx, submission))

	applied, err := submissionRepo.Transition(ctx, submission.ID, &repository.SubmissionResolution{
		Status:      entity.Rejected,
		ReviewerID:  testutil.Admin.ID,
		ReviewNotes: "blurry picture",
		ReviewedAt:  time.Now(),
	})
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = submissionRepo.OverrideAutoRejection(ctx, submission.ID, &repository.SubmissionResolution{
		Status:     entity.Approved,
		ReviewerID: testutil.Admin.ID,
	})
	require.NoError(t, err)
	require.False(t, applied)

	got, err := submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Rejected, got.Status)
}

func Test_submissionRepository_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	submissionRepo := repository.NewSubmissionRepository()

	submissions := []entity.Submission{
		{
			Base:     entity.Base{ID: "s1", CreatedAt: time.Now().Add(-2 * time.Minute)},
			QuestID:  testutil.ManualQuest.ID,
			UserID:   testutil.User1.ID,
			Type:     entity.SubmissionImage,
			MediaRef: "media/s1.jpg",
			Status:   entity.Pending,
		},
		{
			Base:     entity.Base{ID: "s2", CreatedAt: time.Now().Add(-time.Minute)},
			QuestID:  testutil.AIQuest.ID,
			UserID:   testutil.User2.ID,
			Type:     entity.SubmissionVideo,
			MediaRef: "media/s2.mp4",
			Status:   entity.Approved,
		},
		{
			Base:     entity.Base{ID: "s3", CreatedAt: time.Now()},
			QuestID:  testutil.ManualQuest.ID,
			UserID:   testutil.User2.ID,
			Type:     entity.SubmissionImage,
			MediaRef: "media/s3.jpg",
			Status:   entity.Pending,
		},
	}
	for i := range submissions {
		require.NoError(t, submissionRepo.Create(ctx, &submissions[i]))
	}

	pending, err := submissionRepo.GetList(ctx, &repository.SubmissionFilter{Status: entity.Pending}, 0, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, "s1", pending[0].ID)
	require.Equal(t, "s3", pending[1].ID)

	images, err := submissionRepo.GetList(ctx, &repository.SubmissionFilter{
		Status: entity.Pending,
		Type:   entity.SubmissionImage,
		UserID: testutil.User2.ID,
	}, 0, 10)
	require.NoError(t, err)
	require.Len(t, images, 1)
	require.Equal(t, "s3", images[0].ID)
}
