package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/khaynem/WasteWise-Backend/internal/models"
	apperrors "github.com/khaynem/WasteWise-Backend/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Ranking{},
		&models.TierUnlock{},
		&models.Challenge{},
		&models.ChallengeCompletion{},
		&models.Submission{},
	))
	return db
}

func TestRankForPoints_Boundaries(t *testing.T) {
	cases := []struct {
		points int
		want   string
	}{
		{0, "Bronze"},
		{100, "Bronze"},
		{101, "Silver"},
		{200, "Silver"},
		{201, "Gold"},
		{900, "Legend"},
		{901, "Mythic"},
		{1000000, "Mythic"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RankForPoints(tc.points), "points=%d", tc.points)
	}
}

func TestRankForPoints_Monotonic(t *testing.T) {
	names := RankNames()
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	prev := 0
	for points := 0; points <= 1100; points++ {
		cur := index[RankForPoints(points)]
		assert.GreaterOrEqual(t, cur, prev, "rank regressed at points=%d", points)
		prev = cur
	}
}

func TestScoreWastePoints(t *testing.T) {
	cases := []struct {
		wasteType string
		quantity  float64
		want      int
	}{
		{"Plastic Bottles", 3, 6},
		{"unknown-stuff", 1, 1},
		{"metal", 0, 3},       // non-positive quantity coerced to 1
		{"organic", 2, 1},     // 0.5 * 2 = 1
		{"organic", 1, 1},     // 0.5 rounds to 1 via the minimum
		{"hazardous", 2, 20},
		{"GLASS jars", 2, 4},
		{"paper", -5, 1},
	}
	for _, tc := range cases {
		got := ScoreWastePoints(tc.wasteType, tc.quantity)
		assert.Equal(t, tc.want, got, "type=%q qty=%v", tc.wasteType, tc.quantity)
	}
}

func TestScoreWastePoints_EnumerationOrder(t *testing.T) {
	// Substring matching in enumeration order: plastic wins over metal here.
	assert.Equal(t, 2, ScoreWastePoints("metallic-free plastic wrap", 1))
}

func TestScoreWastePoints_NonFiniteQuantity(t *testing.T) {
	assert.Equal(t, 2, ScoreWastePoints("plastic", math.NaN()))
	assert.Equal(t, 2, ScoreWastePoints("plastic", math.Inf(1)))
}

func TestAwardPoints_InvalidInputIsNoOp(t *testing.T) {
	db := setupTestDB(t)

	for _, delta := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		ranking, err := AwardPoints(db, "user1", delta)
		assert.NoError(t, err)
		assert.Nil(t, ranking)
	}
	ranking, err := AwardPoints(db, "", 10)
	assert.NoError(t, err)
	assert.Nil(t, ranking)

	var count int64
	db.Model(&models.Ranking{}).Count(&count)
	assert.Zero(t, count)
}

func TestAwardPoints_CreatesThenAccumulates(t *testing.T) {
	db := setupTestDB(t)

	first, err := AwardPoints(db, "user1", 50)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 50, first.Points)
	assert.Equal(t, "Bronze", first.Rank)

	second, err := AwardPoints(db, "user1", 60)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 110, second.Points)
	assert.Equal(t, "Silver", second.Rank)

	var stored models.Ranking
	require.NoError(t, db.Where("user_id = ?", "user1").First(&stored).Error)
	assert.Equal(t, 110, stored.Points)
	assert.Equal(t, "Silver", stored.Rank)
}

func TestAwardPoints_RoundsHalfUp(t *testing.T) {
	db := setupTestDB(t)

	ranking, err := AwardPoints(db, "user1", 2.5)
	require.NoError(t, err)
	assert.Equal(t, 3, ranking.Points)

	ranking, err = AwardPoints(db, "user1", 2.4)
	require.NoError(t, err)
	assert.Equal(t, 5, ranking.Points)
}

func TestUnlockTier_SpendsPoints(t *testing.T) {
	db := setupTestDB(t)

	_, err := AwardPoints(db, "user1", 100)
	require.NoError(t, err)

	ranking, err := UnlockTier(db, "user1", models.TierIntermediate)
	require.NoError(t, err)
	assert.Equal(t, 0, ranking.Points)
	assert.Equal(t, "Bronze", ranking.Rank)

	var unlock models.TierUnlock
	require.NoError(t, db.Where("user_id = ? AND tier = ?", "user1", models.TierIntermediate).
		First(&unlock).Error)
}

func TestUnlockTier_InsufficientPoints(t *testing.T) {
	db := setupTestDB(t)

	_, err := AwardPoints(db, "user1", 99)
	require.NoError(t, err)

	_, err = UnlockTier(db, "user1", models.TierIntermediate)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)

	// State unchanged: no deduction, no unlock record.
	var ranking models.Ranking
	require.NoError(t, db.Where("user_id = ?", "user1").First(&ranking).Error)
	assert.Equal(t, 99, ranking.Points)

	var count int64
	db.Model(&models.TierUnlock{}).Count(&count)
	assert.Zero(t, count)
}

func TestUnlockTier_DuplicateRejected(t *testing.T) {
	db := setupTestDB(t)

	_, err := AwardPoints(db, "user1", 300)
	require.NoError(t, err)

	_, err = UnlockTier(db, "user1", models.TierIntermediate)
	require.NoError(t, err)

	_, err = UnlockTier(db, "user1", models.TierIntermediate)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)

	var ranking models.Ranking
	require.NoError(t, db.Where("user_id = ?", "user1").First(&ranking).Error)
	assert.Equal(t, 200, ranking.Points)
}

func TestUnlockTier_RejectsUngatedTier(t *testing.T) {
	db := setupTestDB(t)

	_, err := UnlockTier(db, "user1", models.TierBasic)
	require.Error(t, err)

	_, err = UnlockTier(db, "user1", models.ChallengeTier("Legendary"))
	require.Error(t, err)
}

func TestUnlockTier_NoRanking(t *testing.T) {
	db := setupTestDB(t)

	_, err := UnlockTier(db, "ghost", models.TierAdvanced)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
}

func TestHasTierAccess(t *testing.T) {
	db := setupTestDB(t)

	ok, err := HasTierAccess(db, "user1", models.TierBasic)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasTierAccess(db, "user1", models.TierIntermediate)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = AwardPoints(db, "user1", 100)
	require.NoError(t, err)
	_, err = UnlockTier(db, "user1", models.TierIntermediate)
	require.NoError(t, err)

	ok, err = HasTierAccess(db, "user1", models.TierIntermediate)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApproveSubmission_AwardsOnce(t *testing.T) {
	db := setupTestDB(t)

	challenge := models.Challenge{ID: "ch1", Title: "Cleanup Drive", Points: 40}
	require.NoError(t, db.Create(&challenge).Error)

	submission := models.Submission{ID: "sub1", ChallengeID: "ch1", UserID: "user1", Username: "tester"}
	require.NoError(t, db.Create(&submission).Error)

	approved, ranking, err := ApproveSubmission(db, "sub1")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionApproved, approved.Status)
	require.NotNil(t, approved.RewardedAt)
	require.NotNil(t, ranking)
	assert.Equal(t, 40, ranking.Points)

	// Second approval is rejected and does not double-award.
	_, _, err = ApproveSubmission(db, "sub1")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)

	var stored models.Ranking
	require.NoError(t, db.Where("user_id = ?", "user1").First(&stored).Error)
	assert.Equal(t, 40, stored.Points)
}

func TestApproveSubmission_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, _, err := ApproveSubmission(db, "missing")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestTierCost(t *testing.T) {
	cost, ok := TierCost(models.TierIntermediate)
	assert.True(t, ok)
	assert.Equal(t, 100, cost)

	cost, ok = TierCost(models.TierAdvanced)
	assert.True(t, ok)
	assert.Equal(t, 250, cost)

	_, ok = TierCost(models.TierBasic)
	assert.False(t, ok)
}
