package entity

import (
	"github.com/questforge/backend/pkg/enum"
)

type QuestCategory string

var (
	CategoryFitness  = enum.New(QuestCategory("fitness"))
	CategoryStudy    = enum.New(QuestCategory("study"))
	CategoryCreative = enum.New(QuestCategory("creative"))
	CategoryOther    = enum.New(QuestCategory("other"))
)

type ProofType string

var (
	ProofVideo = enum.New(ProofType("video"))
	ProofImage = enum.New(ProofType("image"))
	ProofGPS   = enum.New(ProofType("gps"))
	ProofAny   = enum.New(ProofType("any"))
)

type VerificationMethod string

var (
	VerificationAI     = enum.New(VerificationMethod("ai"))
	VerificationManual = enum.New(VerificationMethod("manual"))
	VerificationNone   = enum.New(VerificationMethod("none"))
)

type QuestStatusType string

var (
	QuestDraft    = enum.New(QuestStatusType("draft"))
	QuestActive   = enum.New(QuestStatusType("active"))
	QuestArchived = enum.New(QuestStatusType("archived"))
)

// Default reward values applied when a quest definition omits them.
const (
	DefaultRewardExperience = 50
	DefaultRewardCurrency   = 10
	DefaultRewardStatPoints = 1
)

type Rewards struct {
	Experience int
	Currency   int
	StatPoints int
	Items      Array[string]
}

type Quest struct {
	Base

	Title       string
	Description []byte `gorm:"type:longtext"`

	Category           QuestCategory
	ProofType          ProofType
	VerificationMethod VerificationMethod
	Status             QuestStatusType

	Rewards Rewards `gorm:"embedded;embeddedPrefix:reward_"`
}

// AcceptsProof reports whether a submission of the given type is a valid proof
// for this quest.
func (q *Quest) AcceptsProof(t SubmissionType) bool {
	if q.ProofType == ProofAny {
		return true
	}

	return string(q.ProofType) == string(t)
}
