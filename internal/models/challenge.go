package models

import (
	"time"

	"github.com/khaynem/WasteWise-Backend/pkg/utils"
	"gorm.io/gorm"
)

type ChallengeTier string

const (
	TierBasic        ChallengeTier = "Basic"
	TierIntermediate ChallengeTier = "Intermediate"
	TierAdvanced     ChallengeTier = "Advanced"
)

type Challenge struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Instructions string        `json:"instructions"`
	Points       int           `json:"points"`
	Tier         ChallengeTier `gorm:"type:text;default:'Basic'" json:"tier"`

	Completions []ChallengeCompletion `gorm:"foreignKey:ChallengeID" json:"-"`
}

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.GenerateID()
	}
	return nil
}

// ChallengeCompletion marks that a user has submitted to a challenge. The
// unique index is the soft "already completed" guard checked by the
// submission flow.
type ChallengeCompletion struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	ChallengeID string    `gorm:"type:text;uniqueIndex:idx_challenge_user" json:"challengeId"`
	UserID      string    `gorm:"type:text;uniqueIndex:idx_challenge_user" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c *ChallengeCompletion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.GenerateID()
	}
	return nil
}

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "Pending"
	SubmissionApproved SubmissionStatus = "Approved"
)

type Submission struct {
	ID          string           `gorm:"primaryKey;type:text" json:"id"`
	ChallengeID string           `gorm:"type:text;index" json:"challengeId"`
	UserID      string           `gorm:"type:text;index" json:"userId"`
	Username    string           `json:"username"`
	Proof       string           `json:"proof"`
	Description string           `json:"description"`
	Status      SubmissionStatus `gorm:"type:text;default:'Pending'" json:"status"`
	SubmittedAt time.Time        `json:"submittedAt"`
	RewardedAt  *time.Time       `json:"rewardedAt"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.GenerateID()
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now()
	}
	return nil
}
