package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/khaynem/WasteWise-Backend/internal/models"
	apperrors "github.com/khaynem/WasteWise-Backend/pkg/errors"
	"gorm.io/gorm"
)

// Rank thresholds, ascending. Lookup walks from the top so the highest
// satisfied threshold wins; every non-negative total maps to Bronze at least.
type rankThreshold struct {
	Name      string
	MinPoints int
}

var rankTable = []rankThreshold{
	{"Bronze", 0},
	{"Silver", 101},
	{"Gold", 201},
	{"Platinum", 301},
	{"Diamond", 401},
	{"Master", 501},
	{"Grandmaster", 601},
	{"Challenger", 701},
	{"Legend", 801},
	{"Mythic", 901},
}

func RankForPoints(points int) string {
	for i := len(rankTable) - 1; i >= 0; i-- {
		if points >= rankTable[i].MinPoints {
			return rankTable[i].Name
		}
	}
	return "Bronze"
}

// RankNames returns the rank ladder from lowest to highest.
func RankNames() []string {
	names := make([]string, len(rankTable))
	for i, r := range rankTable {
		names[i] = r.Name
	}
	return names
}

// Waste categories are matched by substring containment in enumeration
// order, so "metallic-free plastic wrap" scores as plastic. That is the
// shipped behavior; switching to exact matching would change scores for
// existing logs.
type wasteCategory struct {
	Keyword    string
	Multiplier float64
}

var wasteCategories = []wasteCategory{
	{"plastic", 2},
	{"paper", 1},
	{"metal", 3},
	{"glass", 2},
	{"organic", 0.5},
	{"electronics", 5},
	{"hazardous", 10},
}

const defaultWasteMultiplier = 1

// ScoreWastePoints maps a free-text waste type and quantity to the points
// awarded for logging it. Always at least 1.
func ScoreWastePoints(wasteType string, quantity float64) int {
	qty := quantity
	if math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
		qty = 1
	}

	typeKey := strings.ToLower(wasteType)
	multiplier := float64(defaultWasteMultiplier)
	for _, c := range wasteCategories {
		if strings.Contains(typeKey, c.Keyword) {
			multiplier = c.Multiplier
			break
		}
	}

	points := int(math.Floor(multiplier*qty + 0.5))
	if points < 1 {
		points = 1
	}
	return points
}

// Points for a waste report: a base amount plus small bonuses for
// attaching an image and precise coordinates.
const (
	ReportBasePoints    = 8
	ReportImageBonus    = 2
	ReportLocationBonus = 2
)

// awardRetries bounds the optimistic-lock retry loop inside AwardPoints.
const awardRetries = 2

// AwardPoints adds a point delta to the user's ranking and recomputes the
// derived rank. Invalid input (missing user id, non-finite or non-positive
// delta) is a no-op returning (nil, nil). The delta is rounded half-up
// before addition. The read-modify-write runs inside a transaction with a
// version check so concurrent awards cannot lose updates.
func AwardPoints(db *gorm.DB, userID string, pointsToAdd float64) (*models.Ranking, error) {
	if userID == "" || math.IsNaN(pointsToAdd) || math.IsInf(pointsToAdd, 0) || pointsToAdd <= 0 {
		return nil, nil
	}
	delta := int(math.Floor(pointsToAdd + 0.5))

	var result *models.Ranking
	err := db.Transaction(func(tx *gorm.DB) error {
		for attempt := 0; attempt < awardRetries; attempt++ {
			var ranking models.Ranking
			err := tx.Where("user_id = ?", userID).First(&ranking).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ranking = models.Ranking{
					UserID: userID,
					Points: delta,
					Rank:   RankForPoints(delta),
				}
				if err := tx.Create(&ranking).Error; err != nil {
					return err
				}
				result = &ranking
				return nil
			}
			if err != nil {
				return err
			}

			newPoints := ranking.Points + delta
			newRank := RankForPoints(newPoints)
			res := tx.Model(&models.Ranking{}).
				Where("id = ? AND version = ?", ranking.ID, ranking.Version).
				Updates(map[string]interface{}{
					"points":  newPoints,
					"rank":    newRank,
					"version": ranking.Version + 1,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Lost the version race; re-read and try again.
				continue
			}

			ranking.Points = newPoints
			ranking.Rank = newRank
			ranking.Version++
			result = &ranking
			return nil
		}
		return apperrors.Conflict("Ranking was modified concurrently, please retry")
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Tier unlock costs, in points. Not configurable at runtime.
var tierCosts = map[models.ChallengeTier]int{
	models.TierIntermediate: 100,
	models.TierAdvanced:     250,
}

// TierCost returns the unlock cost for a gated tier.
func TierCost(tier models.ChallengeTier) (int, bool) {
	cost, ok := tierCosts[tier]
	return cost, ok
}

// UnlockTier spends points to permanently unlock a gated challenge tier.
// The deduction, rank recompute and unlock record are one transaction so a
// crash cannot leave points spent without the unlock recorded.
func UnlockTier(db *gorm.DB, userID string, tier models.ChallengeTier) (*models.Ranking, error) {
	cost, ok := tierCosts[tier]
	if !ok {
		return nil, apperrors.BadRequest("Tier must be Intermediate or Advanced")
	}

	var result *models.Ranking
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.TierUnlock
		err := tx.Where("user_id = ? AND tier = ?", userID, tier).First(&existing).Error
		if err == nil {
			return apperrors.Conflict("Tier already unlocked")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var ranking models.Ranking
		if err := tx.Where("user_id = ?", userID).First(&ranking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.BadRequest("Insufficient points to unlock tier")
			}
			return err
		}
		if ranking.Points < cost {
			return apperrors.BadRequest("Insufficient points to unlock tier")
		}

		newPoints := ranking.Points - cost
		newRank := RankForPoints(newPoints)
		res := tx.Model(&models.Ranking{}).
			Where("id = ? AND version = ?", ranking.ID, ranking.Version).
			Updates(map[string]interface{}{
				"points":  newPoints,
				"rank":    newRank,
				"version": ranking.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("Ranking was modified concurrently, please retry")
		}

		unlock := models.TierUnlock{UserID: userID, Tier: tier}
		if err := tx.Create(&unlock).Error; err != nil {
			return err
		}

		ranking.Points = newPoints
		ranking.Rank = newRank
		ranking.Version++
		result = &ranking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// HasTierAccess reports whether the user may submit to challenges of the
// given tier. Basic needs no unlock.
func HasTierAccess(db *gorm.DB, userID string, tier models.ChallengeTier) (bool, error) {
	if tier == models.TierBasic || tier == "" {
		return true, nil
	}
	var count int64
	if err := db.Model(&models.TierUnlock{}).
		Where("user_id = ? AND tier = ?", userID, tier).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApproveSubmission transitions a submission from Pending to Approved and
// awards the challenge's points to the submitter, exactly once. The status
// flip is a conditional update so two racing approvals cannot both award.
func ApproveSubmission(db *gorm.DB, submissionID string) (*models.Submission, *models.Ranking, error) {
	var submission models.Submission
	var ranking *models.Ranking

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&submission, "id = ?", submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Submission not found")
			}
			return err
		}
		if submission.Status == models.SubmissionApproved {
			return apperrors.Conflict("Submission already approved")
		}

		var challenge models.Challenge
		if err := tx.First(&challenge, "id = ?", submission.ChallengeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Challenge not found")
			}
			return err
		}

		now := time.Now()
		res := tx.Model(&models.Submission{}).
			Where("id = ? AND status = ?", submission.ID, models.SubmissionPending).
			Updates(map[string]interface{}{
				"status":      models.SubmissionApproved,
				"rewarded_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("Submission already approved")
		}

		updated, err := AwardPoints(tx, submission.UserID, float64(challenge.Points))
		if err != nil {
			return err
		}
		ranking = updated

		submission.Status = models.SubmissionApproved
		submission.RewardedAt = &now
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &submission, ranking, nil
}
