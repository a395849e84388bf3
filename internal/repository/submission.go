package repository

import (
	"context"
	"time"

	"github.com/questforge/backend/internal/entity"
	"github.com/questforge/backend/pkg/xcontext"
)

type SubmissionFilter struct {
	UserID  string
	QuestID string
	Status  entity.SubmissionStatus
	Type    entity.SubmissionType
}

// SubmissionResolution is the terminal payload written together with the
// status, so a reader never observes a half-written record.
type SubmissionResolution struct {
	Status         entity.SubmissionStatus
	AnalysisResult *entity.AnalysisResult
	ReviewerID     string
	ReviewNotes    string
	ReviewedAt     time.Time
}

type SubmissionRepository interface {
	Create(ctx context.Context, data *entity.Submission) error
	GetByID(ctx context.Context, id string) (*entity.Submission, error)
	GetList(ctx context.Context, filter *SubmissionFilter, offset, limit int) ([]entity.Submission, error)

	// Transition flips a pending submission to a terminal status. It returns
	// false without error if the submission is not pending anymore; the first
	// writer wins and the second is a no-op.
	Transition(ctx context.Context, id string, resolution *SubmissionResolution) (bool, error)

	// OverrideAutoRejection approves a submission that the analysis engine
	// rejected. It only fires when the rejection has no reviewer attached, so
	// a manual decision can never be overturned and a submission changes
	// status at most twice.
	OverrideAutoRejection(ctx context.Context, id string, resolution *SubmissionResolution) (bool, error)
}

type submissionRepository struct{}

func NewSubmissionRepository() *submissionRepository {
	return &submissionRepository{}
}

func (r *submissionRepository) Create(ctx context.Context, data *entity.Submission) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*entity.Submission, error) {
	var result entity.Submission
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *submissionRepository) GetList(
	ctx context.Context, filter *SubmissionFilter, offset, limit int,
) ([]entity.Submission, error) {
	var result []entity.Submission
	tx := xcontext.DB(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at ASC")

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if filter.Type != "" {
		tx = tx.Where("type=?", filter.Type)
	}

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.QuestID != "" {
		tx = tx.Where("quest_id=?", filter.QuestID)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *submissionRepository) Transition(
	ctx context.Context, id string, resolution *SubmissionResolution,
) (bool, error) {
	updates := map[string]any{
		"status":       resolution.Status,
		"reviewer_id":  resolution.ReviewerID,
		"review_notes": resolution.ReviewNotes,
		"reviewed_at":  resolution.ReviewedAt,
	}

	if resolution.AnalysisResult != nil {
		updates["analysis_result"] = resolution.AnalysisResult
	}

	tx := xcontext.DB(ctx).Model(&entity.Submission{}).
		Where("id=? AND status=?", id, entity.Pending).
		Updates(updates)
	if err := tx.Error; err != nil {
		return false, err
	}

	return tx.RowsAffected == 1, nil
}

func (r *submissionRepository) OverrideAutoRejection(
	ctx context.Context, id string, resolution *SubmissionResolution,
) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.Submission{}).
		Where("id=? AND status=? AND reviewer_id=''", id, entity.Rejected).
		Updates(map[string]any{
			"status":       entity.Approved,
			"reviewer_id":  resolution.ReviewerID,
			"review_notes": resolution.ReviewNotes,
			"reviewed_at":  resolution.ReviewedAt,
		})
	if err := tx.Error; err != nil {
		return false, err
	}

	return tx.RowsAffected == 1, nil
}
