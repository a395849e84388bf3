package analysis

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/questforge/backend/internal/domain/settle"
	"github.com/questforge/backend/internal/entity"
	"github.com/questforge/backend/internal/repository"
	"github.com/questforge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Engine analyzes submissions in the background. Work is handed to a bounded
// pool of workers; the submitting request never waits for a verdict. A task
// lost before completion leaves its submission pending, recoverable only by a
// manual review.
type Engine struct {
	submissionRepo repository.SubmissionRepository
	questRepo      repository.QuestRepository
	settler        *settle.Service

	tasks    chan string
	inflight *xsync.MapOf[string, struct{}]

	wg   sync.WaitGroup
	once sync.Once
}

func NewEngine(
	submissionRepo repository.SubmissionRepository,
	questRepo repository.QuestRepository,
	settler *settle.Service,
) *Engine {
	return &Engine{
		submissionRepo: submissionRepo,
		questRepo:      questRepo,
		settler:        settler,
		inflight:       xsync.NewMapOf[struct{}](),
	}
}

// Start spawns the worker pool. The given context carries the engine's
// database handle, logger and configs for the lifetime of the process, not
// the request context of any caller.
func (e *Engine) Start(ctx context.Context) {
	cfg := xcontext.Configs(ctx).Analysis
	e.tasks = make(chan string, cfg.QueueSize)

	for i := 0; i < cfg.Workers; i++ {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			for id := range e.tasks {
				e.sleepFor(ctx)
				e.Analyze(ctx, id)
			}
		}()
	}
}

// Stop drains the queue and waits for in-flight analyses to finish.
func (e *Engine) Stop() {
	e.once.Do(func() {
		close(e.tasks)
	})
	e.wg.Wait()
}

// Schedule enqueues a submission for analysis and returns immediately. A full
// queue or a duplicate id drops the task; the submission stays pending for
// manual review.
func (e *Engine) Schedule(ctx context.Context, submissionID string) {
	if _, loaded := e.inflight.LoadOrStore(submissionID, struct{}{}); loaded {
		return
	}

	select {
	case e.tasks <- submissionID:
	default:
		e.inflight.Delete(submissionID)
		xcontext.Logger(ctx).Warnf(
			"Analysis queue is full, submission %s is left for manual review", submissionID)
	}
}

// Analyze scores one submission and writes the verdict back. The first writer
// wins: if a manual review already resolved the submission, the verdict is
// discarded without error. All failures are logged and dropped because the
// triggering call has already returned.
func (e *Engine) Analyze(ctx context.Context, submissionID string) {
	defer e.inflight.Delete(submissionID)

	submission, err := e.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Submission %s vanished before analysis", submissionID)
		} else {
			xcontext.Logger(ctx).Errorf("Cannot get submission for analysis: %v", err)
		}
		return
	}

	quest, err := e.questRepo.GetByID(ctx, submission.QuestID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quest of submission %s: %v", submissionID, err)
		return
	}

	result := Score(submission, quest.Category)

	status := entity.Rejected
	if result.Success {
		status = entity.Approved
	}

	applied, err := e.submissionRepo.Transition(ctx, submissionID, &repository.SubmissionResolution{
		Status:         status,
		AnalysisResult: result,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot apply analysis verdict of %s: %v", submissionID, err)
		return
	}

	if !applied {
		xcontext.Logger(ctx).Debugf(
			"Submission %s was already resolved, analysis verdict discarded", submissionID)
		return
	}

	if status == entity.Approved {
		if _, err := e.settler.Settle(ctx, submission.UserID, submission.QuestID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot settle rewards of %s: %v", submissionID, err)
		}
	}
}

func (e *Engine) sleepFor(ctx context.Context) {
	cfg := xcontext.Configs(ctx).Analysis
	if cfg.MaxProcessTime <= cfg.MinProcessTime {
		return
	}

	latency := cfg.MinProcessTime + time.Duration(rand.Int63n(int64(cfg.MaxProcessTime-cfg.MinProcessTime)))
	time.Sleep(latency)
}
