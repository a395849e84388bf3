package model

import (
	"time"

	"github.com/questforge/backend/internal/entity"
)

func ConvertSubmission(s *entity.Submission) Submission {
	result := Submission{
		ID:          s.ID,
		QuestID:     s.QuestID,
		UserID:      s.UserID,
		Type:        string(s.Type),
		MediaRef:    s.MediaRef,
		Metadata:    s.Metadata,
		Status:      string(s.Status),
		ReviewerID:  s.ReviewerID,
		ReviewNotes: s.ReviewNotes,
		SubmittedAt: s.CreatedAt.Format(time.RFC3339Nano),
	}

	if s.Type == entity.SubmissionGPS {
		result.Gps = &GPSData{
			Latitude:  s.Gps.Latitude,
			Longitude: s.Gps.Longitude,
			Accuracy:  s.Gps.Accuracy,
			Timestamp: s.Gps.Timestamp.Format(time.RFC3339Nano),
		}
	}

	if s.AnalysisResult != nil {
		result.AnalysisResult = &AnalysisResult{
			Success:            s.AnalysisResult.Success,
			Confidence:         s.AnalysisResult.Confidence,
			DetectedObjects:    s.AnalysisResult.DetectedObjects,
			DetectedActivities: s.AnalysisResult.DetectedActivities,
			Feedback:           s.AnalysisResult.Feedback,
			ProcessedAt:        s.AnalysisResult.ProcessedAt.Format(time.RFC3339Nano),
		}
	}

	if !s.ReviewedAt.IsZero() {
		result.ReviewedAt = s.ReviewedAt.Format(time.RFC3339Nano)
	}

	return result
}

func ConvertQuest(q *entity.Quest) Quest {
	return Quest{
		ID:                 q.ID,
		Title:              q.Title,
		Description:        string(q.Description),
		Category:           string(q.Category),
		ProofType:          string(q.ProofType),
		VerificationMethod: string(q.VerificationMethod),
		Status:             string(q.Status),
		Rewards: Rewards{
			Experience: q.Rewards.Experience,
			Currency:   q.Rewards.Currency,
			StatPoints: q.Rewards.StatPoints,
			Items:      q.Rewards.Items,
		},
	}
}

func ConvertUser(u *entity.User, completedQuestIDs, activeQuestIDs []string) User {
	return User{
		ID:                u.ID,
		Name:              u.Name,
		Role:              string(u.Role),
		Level:             u.Level,
		Experience:        u.Experience,
		Currency:          u.Currency,
		StatPoints:        u.StatPoints,
		CompletedQuestIDs: completedQuestIDs,
		ActiveQuestIDs:    activeQuestIDs,
	}
}
