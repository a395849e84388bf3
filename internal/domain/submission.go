package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/questforge/backend/internal/common"
	"github.com/questforge/backend/internal/domain/settle"
	"github.com/questforge/backend/internal/entity"
	"github.com/questforge/backend/internal/model"
	"github.com/questforge/backend/internal/repository"
	"github.com/questforge/backend/pkg/enum"
	"github.com/questforge/backend/pkg/errorx"
	"github.com/questforge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// AnalysisScheduler hands a submission to the background analysis engine
// without waiting for the verdict.
type AnalysisScheduler interface {
	Schedule(ctx context.Context, submissionID string)
}

type SubmissionDomain interface {
	Submit(context.Context, *model.SubmitRequest) (*model.SubmitResponse, error)
	Get(context.Context, *model.GetSubmissionRequest) (*model.GetSubmissionResponse, error)
	GetPendingList(context.Context, *model.GetPendingSubmissionsRequest) (*model.GetPendingSubmissionsResponse, error)
	Review(context.Context, *model.ReviewSubmissionRequest) (*model.ReviewSubmissionResponse, error)
}

type submissionDomain struct {
	submissionRepo repository.SubmissionRepository
	questRepo      repository.QuestRepository
	userRepo       repository.UserRepository
	scheduler      AnalysisScheduler
	settler        *settle.Service
	roleVerifier   *common.GlobalRoleVerifier
}

func NewSubmissionDomain(
	submissionRepo repository.SubmissionRepository,
	questRepo repository.QuestRepository,
	userRepo repository.UserRepository,
	scheduler AnalysisScheduler,
	settler *settle.Service,
) *submissionDomain {
	return &submissionDomain{
		submissionRepo: submissionRepo,
		questRepo:      questRepo,
		userRepo:       userRepo,
		scheduler:      scheduler,
		settler:        settler,
		roleVerifier:   common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *submissionDomain) Submit(
	ctx context.Context, req *model.SubmitRequest,
) (*model.SubmitResponse, error) {
	quest, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if quest.Status != entity.QuestActive {
		return nil, errorx.New(errorx.Unavailable, "Only allow to claim active quests")
	}

	submissionType, err := enum.ToEnum[entity.SubmissionType](req.Type)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid submission type: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid submission type %s", req.Type)
	}

	if !quest.AcceptsProof(submissionType) {
		return nil, errorx.New(errorx.BadRequest,
			"This quest requires a %s proof", quest.ProofType)
	}

	userID := xcontext.RequestUserID(ctx)
	completed, err := d.userRepo.IsCompleted(ctx, userID, quest.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check completed quests: %v", err)
		return nil, errorx.Unknown
	}

	if completed {
		return nil, errorx.New(errorx.Unavailable, "This quest cannot be claimed again")
	}

	submission := &entity.Submission{
		Base:    entity.Base{ID: uuid.NewString()},
		QuestID: quest.ID,
		UserID:  userID,
		Type:    submissionType,
		Status:  entity.Pending,
	}

	if req.Metadata != nil {
		submission.Metadata = entity.Map(req.Metadata)
	}

	switch submissionType {
	case entity.SubmissionGPS:
		gps, err := parseGPSData(req.Gps)
		if err != nil {
			return nil, err
		}
		submission.Gps = *gps

	default:
		if req.MediaRef == "" {
			return nil, errorx.New(errorx.BadRequest,
				"A media reference is required for %s proofs", submissionType)
		}
		submission.MediaRef = req.MediaRef
	}

	if err := d.submissionRepo.Create(ctx, submission); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create submission: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.StartQuest(ctx, userID, quest.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot track active quest: %v", err)
		return nil, errorx.Unknown
	}

	switch quest.VerificationMethod {
	case entity.VerificationAI:
		// The caller does not wait for the verdict; the poller observes the
		// terminal status later.
		d.scheduler.Schedule(ctx, submission.ID)

	case entity.VerificationNone:
		applied, err := d.submissionRepo.Transition(ctx, submission.ID,
			&repository.SubmissionResolution{Status: entity.Approved})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot approve unverified submission: %v", err)
			return nil, errorx.Unknown
		}

		if applied {
			if _, err := d.settler.Settle(ctx, userID, quest.ID); err != nil {
				return nil, err
			}
		}

		return &model.SubmitResponse{ID: submission.ID, Status: string(entity.Approved)}, nil
	}

	return &model.SubmitResponse{ID: submission.ID, Status: string(entity.Pending)}, nil
}

func parseGPSData(gps *model.GPSData) (*entity.GPSData, error) {
	if gps == nil {
		return nil, errorx.New(errorx.BadRequest, "Gps data is required for gps proofs")
	}

	if gps.Latitude < -90 || gps.Latitude > 90 || gps.Longitude < -180 || gps.Longitude > 180 {
		return nil, errorx.New(errorx.BadRequest, "Invalid gps coordinates")
	}

	if gps.Accuracy <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Gps accuracy must be positive")
	}

	timestamp := time.Now()
	if gps.Timestamp != "" {
		var err error
		timestamp, err = time.Parse(time.RFC3339, gps.Timestamp)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid gps timestamp")
		}
	}

	return &entity.GPSData{
		Latitude:  gps.Latitude,
		Longitude: gps.Longitude,
		Accuracy:  gps.Accuracy,
		Timestamp: timestamp,
	}, nil
}

func (d *submissionDomain) Get(
	ctx context.Context, req *model.GetSubmissionRequest,
) (*model.GetSubmissionResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	submission, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	if submission.UserID != xcontext.RequestUserID(ctx) {
		if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
			xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}
	}

	resp := model.GetSubmissionResponse(model.ConvertSubmission(submission))
	return &resp, nil
}

func (d *submissionDomain) GetPendingList(
	ctx context.Context, req *model.GetPendingSubmissionsRequest,
) (*model.GetPendingSubmissionsResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

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

	filter := &repository.SubmissionFilter{Status: entity.Pending}
	if req.Type != "" {
		submissionType, err := enum.ToEnum[entity.SubmissionType](req.Type)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid submission type filter: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid submission type %s", req.Type)
		}
		filter.Type = submissionType
	}

	result, err := d.submissionRepo.GetList(ctx, filter, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pending submissions: %v", err)
		return nil, errorx.Unknown
	}

	submissions := []model.Submission{}
	for i := range result {
		submissions = append(submissions, model.ConvertSubmission(&result[i]))
	}

	return &model.GetPendingSubmissionsResponse{Submissions: submissions}, nil
}

func (d *submissionDomain) Review(
	ctx context.Context, req *model.ReviewSubmissionRequest,
) (*model.ReviewSubmissionResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	submission, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	status := entity.Rejected
	if req.IsVerified {
		status = entity.Approved
	}

	resolution := &repository.SubmissionResolution{
		Status:      status,
		ReviewerID:  xcontext.RequestUserID(ctx),
		ReviewNotes: req.Notes,
		ReviewedAt:  time.Now(),
	}

	applied, err := d.submissionRepo.Transition(ctx, req.ID, resolution)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot apply review verdict: %v", err)
		return nil, errorx.Unknown
	}

	if !applied && req.IsVerified {
		// The analysis engine may already have rejected this submission; an
		// admin approval overturns that verdict exactly once.
		applied, err = d.submissionRepo.OverrideAutoRejection(ctx, req.ID, resolution)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot override analysis rejection: %v", err)
			return nil, errorx.Unknown
		}
	}

	if !applied {
		return &model.ReviewSubmissionResponse{
			Success:          true,
			AlreadyFinalized: true,
		}, nil
	}

	if req.IsVerified {
		// Settlement errors of the manual path surface to the admin.
		if _, err := d.settler.Settle(ctx, submission.UserID, submission.QuestID); err != nil {
			return nil, err
		}
	}

	return &model.ReviewSubmissionResponse{
		Success: true,
		Status:  string(status),
	}, nil
}
