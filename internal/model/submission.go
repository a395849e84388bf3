package model

type GPSData struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp string  `json:"timestamp"`
}

type AnalysisResult struct {
	Success            bool     `json:"success"`
	Confidence         float64  `json:"confidence"`
	DetectedObjects    []string `json:"detected_objects"`
	DetectedActivities []string `json:"detected_activities"`
	Feedback           string   `json:"feedback"`
	ProcessedAt        string   `json:"processed_at"`
}

type Submission struct {
	ID      string `json:"id"`
	QuestID string `json:"quest_id"`
	UserID  string `json:"user_id"`

	Type     string         `json:"type"`
	MediaRef string         `json:"media_ref,omitempty"`
	Gps      *GPSData       `json:"gps_data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`

	Status         string          `json:"status"`
	AnalysisResult *AnalysisResult `json:"analysis_result,omitempty"`

	ReviewerID  string `json:"reviewer_id,omitempty"`
	ReviewNotes string `json:"review_notes,omitempty"`
	ReviewedAt  string `json:"reviewed_at,omitempty"`

	SubmittedAt string `json:"submitted_at"`
}

type SubmitRequest struct {
	QuestID  string         `json:"quest_id"`
	Type     string         `json:"type"`
	MediaRef string         `json:"media_ref"`
	Gps      *GPSData       `json:"gps_data"`
	Metadata map[string]any `json:"metadata"`
}

type SubmitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type GetSubmissionRequest struct {
	ID string `json:"id"`
}

type GetSubmissionResponse Submission

type GetPendingSubmissionsRequest struct {
	Type string `json:"type"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetPendingSubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}

type ReviewSubmissionRequest struct {
	ID         string `json:"id"`
	IsVerified bool   `json:"is_verified"`
	Notes      string `json:"notes"`
}

type ReviewSubmissionResponse struct {
	Success          bool   `json:"success"`
	AlreadyFinalized bool   `json:"already_finalized,omitempty"`
	Status           string `json:"status,omitempty"`
}
