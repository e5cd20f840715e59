package models

import (
	"time"

	"github.com/khaynem/WasteWise-Backend/pkg/utils"
	"gorm.io/gorm"
)

// Ranking is the per-user points ledger. Rank is always derived from Points
// (services.RankForPoints) and never written independently. Version backs
// the optimistic-concurrency check on every points mutation.
type Ranking struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID  string `gorm:"uniqueIndex;type:text" json:"userId"`
	Points  int    `gorm:"default:0" json:"points"`
	Rank    string `gorm:"type:text;default:'Bronze'" json:"rank"`
	Version int    `gorm:"default:1" json:"-"`
}

func (r *Ranking) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = utils.GenerateID()
	}
	return nil
}

// TierUnlock records a one-time, points-paid unlock of a gated challenge
// tier. Unique per (user, tier); never deleted except with the account.
type TierUnlock struct {
	ID         string        `gorm:"primaryKey;type:text" json:"id"`
	UserID     string        `gorm:"type:text;uniqueIndex:idx_user_tier" json:"userId"`
	Tier       ChallengeTier `gorm:"type:text;uniqueIndex:idx_user_tier" json:"tier"`
	UnlockedAt time.Time     `json:"unlockedAt"`
}

func (t *TierUnlock) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = utils.GenerateID()
	}
	if t.UnlockedAt.IsZero() {
		t.UnlockedAt = time.Now()
	}
	return nil
}
