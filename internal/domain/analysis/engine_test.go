package analysis

import (
	"sync"
	"testing"

	"github.com/questforge/backend/internal/domain"
	"github.com/questforge/backend/internal/domain/settle"
	"github.com/questforge/backend/internal/entity"
	"github.com/questforge/backend/internal/model"
	"github.com/questforge/backend/internal/repository"
	"github.com/questforge/backend/pkg/testutil"
	"github.com/questforge/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestEngine() (*Engine, *testutil.MockNotifier) {
	notifier := testutil.NewMockNotifier()
	questRepo := repository.NewQuestRepository()
	userRepo := repository.NewUserRepository()
	settler := settle.NewService(questRepo, userRepo, notifier, &testutil.MockRedisClient{})

	return NewEngine(repository.NewSubmissionRepository(), questRepo, settler), notifier
}

func Test_Engine_Analyze_Approves(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	submissionRepo := repository.NewSubmissionRepository()
	engine, notifier := newTestEngine()

	submission := &entity.Submission{
		Base:     entity.Base{ID: submissionIDWithVerdict(t, testutil.AIQuest.Category, true)},
		QuestID:  testutil.AIQuest.ID,
		UserID:   testutil.User1.ID,
		Type:     entity.SubmissionVideo,
		MediaRef: "media/run.mp4",
		Status:   entity.Pending,
	}
	require.NoError(t, submissionRepo.Create(ctx, submission))

	engine.Analyze(ctx, submission.ID)

	got, err := submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Approved, got.Status)
	require.NotNil(t, got.AnalysisResult)
	require.True(t, got.AnalysisResult.Success)
	require.Empty(t, got.ReviewerID)

	// An approved verdict settles the rewards.
	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.AIQuest.Rewards.Experience, user.Experience)
	require.Len(t, notifier.EventsOf("quest_completion"), 1)
}

func Test_Engine_Analyze_Rejects(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	submissionRepo := repository.NewSubmissionRepository()
	engine, notifier := newTestEngine()

	submission := &entity.Submission{
		Base:     entity.Base{ID: submissionIDWithVerdict(t, testutil.AIQuest.Category, false)},
		QuestID:  testutil.AIQuest.ID,
		UserID:   testutil.User1.ID,
		Type:     entity.SubmissionVideo,
		MediaRef: "media/run.mp4",
		Status:   entity.Pending,
	}
	require.NoError(t, submissionRepo.Create(ctx, submission))

	engine.Analyze(ctx, submission.ID)

	got, err := submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Rejected, got.Status)
	require.NotNil(t, got.AnalysisResult)
	require.False(t, got.AnalysisResult.Success)

	// A rejection grants nothing.
	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Zero(t, user.Experience)
	require.Empty(t, notifier.Events())
}

func Test_Engine_Analyze_DiscardsVerdictOfResolvedSubmission(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	submissionRepo := repository.NewSubmissionRepository()
	engine, notifier := newTestEngine()

	// A manual review resolved the submission before the engine got to it.
	submission := &entity.Submission{
		Base:       entity.Base{ID: submissionIDWithVerdict(t, testutil.AIQuest.Category, true)},
		QuestID:    testutil.AIQuest.ID,
		UserID:     testutil.User1.ID,
		Type:       entity.SubmissionVideo,
		MediaRef:   "media/run.mp4",
		Status:     entity.Rejected,
		ReviewerID: testutil.Admin.ID,
	}
	require.NoError(t, submissionRepo.Create(ctx, submission))

	engine.Analyze(ctx, submission.ID)

	got, err := submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Rejected, got.Status)
	require.Nil(t, got.AnalysisResult)
	require.Empty(t, notifier.Events())
}

func Test_Engine_Analyze_VanishedSubmission(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	engine, notifier := newTestEngine()

	engine.Analyze(ctx, "no such submission")
	require.Empty(t, notifier.Events())
}

func Test_Engine_AnalyzeRacesManualReview(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	// A single connection keeps the in-memory database shared between the two
	// resolvers and serializes their statements the way a real server's
	// database would.
	sqlDB, err := xcontext.DB(ctx).DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	notifier := testutil.NewMockNotifier()
	questRepo := repository.NewQuestRepository()
	userRepo := repository.NewUserRepository()
	submissionRepo := repository.NewSubmissionRepository()
	settler := settle.NewService(questRepo, userRepo, notifier, &testutil.MockRedisClient{})
	engine := NewEngine(submissionRepo, questRepo, settler)
	submissionDomain := domain.NewSubmissionDomain(
		submissionRepo, questRepo, userRepo, engine, settler)

	submission := &entity.Submission{
		Base:     entity.Base{ID: submissionIDWithVerdict(t, testutil.AIQuest.Category, true)},
		QuestID:  testutil.AIQuest.ID,
		UserID:   testutil.User1.ID,
		Type:     entity.SubmissionVideo,
		MediaRef: "media/run.mp4",
		Status:   entity.Pending,
	}
	require.NoError(t, submissionRepo.Create(ctx, submission))

	// The engine and an admin resolve the same submission at the same time.
	// Whichever writes first wins the status; the other is absorbed, and the
	// rewards settle exactly once.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		engine.Analyze(ctx, submission.ID)
	}()

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	resp, err := submissionDomain.Review(adminCtx, &model.ReviewSubmissionRequest{
		ID:         submission.ID,
		IsVerified: true,
	})
	wg.Wait()
	require.NoError(t, err)
	require.True(t, resp.Success)

	got, err := submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Approved, got.Status)

	// The losing resolver left no second write behind: a reviewed submission
	// has no analysis result and an analyzed one has no reviewer.
	if got.ReviewerID != "" {
		require.Nil(t, got.AnalysisResult)
	} else {
		require.NotNil(t, got.AnalysisResult)
	}

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.AIQuest.Rewards.Experience, user.Experience)

	completed, err := userRepo.GetCompletedQuestIDs(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.AIQuest.ID}, completed)

	require.Len(t, notifier.EventsOf("quest_completion"), 1)
}

func Test_Engine_ScheduleAndDrain(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	submissionRepo := repository.NewSubmissionRepository()
	engine, _ := newTestEngine()

	submission := &entity.Submission{
		Base:     entity.Base{ID: submissionIDWithVerdict(t, testutil.AIQuest.Category, true)},
		QuestID:  testutil.AIQuest.ID,
		UserID:   testutil.User1.ID,
		Type:     entity.SubmissionVideo,
		MediaRef: "media/run.mp4",
		Status:   entity.Pending,
	}
	require.NoError(t, submissionRepo.Create(ctx, submission))

	engine.Start(ctx)
	engine.Schedule(ctx, submission.ID)
	engine.Stop()

	got, err := submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Approved, got.Status)
}
