package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/questforge/backend/pkg/enum"
)

type SubmissionType string

var (
	SubmissionVideo = enum.New(SubmissionType("video"))
	SubmissionImage = enum.New(SubmissionType("image"))
	SubmissionGPS   = enum.New(SubmissionType("gps"))
)

type SubmissionStatus string

var (
	Pending  = enum.New(SubmissionStatus("pending"))
	Approved = enum.New(SubmissionStatus("approved"))
	Rejected = enum.New(SubmissionStatus("rejected"))
)

type GPSData struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

type AnalysisResult struct {
	Success            bool      `json:"success"`
	Confidence         float64   `json:"confidence"`
	DetectedObjects    []string  `json:"detected_objects"`
	DetectedActivities []string  `json:"detected_activities"`
	Feedback           string    `json:"feedback"`
	ProcessedAt        time.Time `json:"processed_at"`
}

func (r *AnalysisResult) Scan(value any) error {
	switch t := value.(type) {
	case string:
		return json.Unmarshal([]byte(t), r)
	case []byte:
		return json.Unmarshal(t, r)
	default:
		return fmt.Errorf("cannot scan invalid data type %T", value)
	}
}

func (r AnalysisResult) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Submission is a single proof-of-completion claim of one quest by one user.
// Rows are never deleted; the terminal status fields are only written through
// SubmissionRepository.Transition or OverrideAutoRejection.
type Submission struct {
	Base

	QuestID string
	Quest   Quest `gorm:"foreignKey:QuestID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Type     SubmissionType
	MediaRef string
	Gps      GPSData `gorm:"embedded;embeddedPrefix:gps_"`

	// Metadata holds free-form client context (device model, app version)
	// shown to reviewers next to the proof.
	Metadata Map `gorm:"type:text"`

	Status         SubmissionStatus
	AnalysisResult *AnalysisResult `gorm:"type:text"`

	ReviewerID  string
	ReviewNotes string
	ReviewedAt  time.Time
}
