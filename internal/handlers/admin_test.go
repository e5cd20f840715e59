package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/models"
)

func TestResolveReport_SecondResolveConflicts(t *testing.T) {
	SetupTestDB(t)
	reporter := seedUser(t, "res-reporter", "resreporter")
	admin := seedUser(t, "res-admin", "resadmin")

	report := models.Report{
		Title:        "Burning trash",
		Reporter:     reporter.ID,
		ReporterName: reporter.Username,
		Status:       models.ReportPending,
		Date:         time.Now(),
	}
	require.NoError(t, database.DB.Create(&report).Error)

	c, w := jsonContext(t, http.MethodPatch, nil)
	authenticate(c, admin)
	c.Params = gin.Params{{Key: "id", Value: report.ID}}
	ResolveReport(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Report
	require.NoError(t, database.DB.First(&updated, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportResolved, updated.Status)

	c, w = jsonContext(t, http.MethodPatch, nil)
	authenticate(c, admin)
	c.Params = gin.Params{{Key: "id", Value: report.ID}}
	ResolveReport(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRewardSubmission_AwardsOnce(t *testing.T) {
	SetupTestDB(t)
	user := seedUser(t, "reward-user", "rewarduser")
	admin := seedUser(t, "reward-admin", "rewardadmin")

	challenge := seedChallenge(t, "Reward me", models.TierBasic, 40)
	submission := models.Submission{
		ChallengeID: challenge.ID,
		UserID:      user.ID,
		Username:    user.Username,
		Status:      models.SubmissionPending,
		SubmittedAt: time.Now(),
	}
	require.NoError(t, database.DB.Create(&submission).Error)

	c, w := jsonContext(t, http.MethodPatch, nil)
	authenticate(c, admin)
	c.Params = gin.Params{{Key: "id", Value: submission.ID}}
	RewardSubmission(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var ranking models.Ranking
	require.NoError(t, database.DB.Where("user_id = ?", user.ID).First(&ranking).Error)
	assert.Equal(t, 40, ranking.Points)

	// Approving again must not double the points.
	c, w = jsonContext(t, http.MethodPatch, nil)
	authenticate(c, admin)
	c.Params = gin.Params{{Key: "id", Value: submission.ID}}
	RewardSubmission(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	require.NoError(t, database.DB.Where("user_id = ?", user.ID).First(&ranking).Error)
	assert.Equal(t, 40, ranking.Points)
}

func TestSuspendAndActivateUser(t *testing.T) {
	SetupTestDB(t)
	target := seedUser(t, "status-target", "statustarget")
	admin := seedUser(t, "status-admin", "statusadmin")

	c, w := jsonContext(t, http.MethodPatch, nil)
	authenticate(c, admin)
	c.Params = gin.Params{{Key: "id", Value: target.ID}}
	SuspendUser(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, database.DB.First(&user, "id = ?", target.ID).Error)
	assert.Equal(t, models.StatusSuspended, user.Status)

	c, w = jsonContext(t, http.MethodPatch, nil)
	authenticate(c, admin)
	c.Params = gin.Params{{Key: "id", Value: target.ID}}
	ActivateUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, database.DB.First(&user, "id = ?", target.ID).Error)
	assert.Equal(t, models.StatusActive, user.Status)
}

func TestAdminDeleteUser_CascadesOwnedRecords(t *testing.T) {
	SetupTestDB(t)
	target := seedUser(t, "cascade-target", "cascadetarget")
	admin := seedUser(t, "cascade-admin", "cascadeadmin")

	require.NoError(t, database.DB.Create(&models.Ranking{UserID: target.ID, Points: 50, Rank: "Bronze"}).Error)
	require.NoError(t, database.DB.Create(&models.WasteLog{Recorder: target.ID, WasteType: "paper", Quantity: 1, Unit: "kg"}).Error)
	require.NoError(t, database.DB.Create(&models.Report{Title: "r", Reporter: target.ID, ReporterName: target.Username}).Error)
	listing := seedListing(t, target, "Cascade listing")
	require.NoError(t, database.DB.Create(&models.ListingComment{
		ListingID: listing.ID, Author: target.ID, AuthorName: target.Username, Comment: "mine",
	}).Error)

	c, w := jsonContext(t, http.MethodDelete, nil)
	authenticate(c, admin)
	c.Params = gin.Params{{Key: "id", Value: target.ID}}
	AdminDeleteUser(c)

	assert.Equal(t, http.StatusOK, w.Code)

	for _, model := range []interface{}{
		&models.Ranking{}, &models.WasteLog{}, &models.Report{},
		&models.Listing{}, &models.ListingComment{},
	} {
		var count int64
		database.DB.Model(model).Count(&count)
		assert.Equal(t, int64(0), count)
	}

	var userCount int64
	database.DB.Model(&models.User{}).Where("id = ?", target.ID).Count(&userCount)
	assert.Equal(t, int64(0), userCount)
}

func TestEditSchedule_UpdatesDay(t *testing.T) {
	SetupTestDB(t)
	admin := seedUser(t, "sched-admin", "schedadmin")

	schedule := models.Schedule{Barangay: "Barretto"}
	require.NoError(t, database.DB.Create(&schedule).Error)
	entry := models.ScheduleEntry{ScheduleID: schedule.ID, TypeName: "Biodegradable", Day: "Monday"}
	require.NoError(t, database.DB.Create(&entry).Error)

	c, w := jsonContext(t, http.MethodPatch, map[string]string{
		"barangay": "Barretto",
		"typeName": "Biodegradable",
		"newDay":   "Thursday",
	})
	authenticate(c, admin)
	EditSchedule(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.ScheduleEntry
	require.NoError(t, database.DB.First(&updated, "id = ?", entry.ID).Error)
	assert.Equal(t, "Thursday", updated.Day)
}

func TestEditSchedule_UnknownBarangay(t *testing.T) {
	SetupTestDB(t)
	admin := seedUser(t, "sched-admin2", "schedadmin2")

	c, w := jsonContext(t, http.MethodPatch, map[string]string{
		"barangay": "Nowhere",
		"typeName": "Biodegradable",
		"newDay":   "Thursday",
	})
	authenticate(c, admin)
	EditSchedule(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAndDeleteChallenge(t *testing.T) {
	SetupTestDB(t)
	admin := seedUser(t, "chal-admin", "chaladmin")

	c, w := jsonContext(t, http.MethodPost, map[string]interface{}{
		"title":        "Beach sweep",
		"description":  "Collect litter along the bay",
		"instructions": "Bring gloves and sacks",
		"points":       75,
		"tier":         "Intermediate",
	})
	authenticate(c, admin)
	CreateChallenge(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var challenge models.Challenge
	require.NoError(t, database.DB.Where("title = ?", "Beach sweep").First(&challenge).Error)
	assert.Equal(t, models.TierIntermediate, challenge.Tier)

	c, w = jsonContext(t, http.MethodDelete, nil)
	authenticate(c, admin)
	c.Params = gin.Params{{Key: "id", Value: challenge.ID}}
	DeleteChallenge(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	database.DB.Model(&models.Challenge{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
