package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaynem/WasteWise-Backend/internal/models"
)

func TestGetLeaderboard_TopTenByPoints(t *testing.T) {
	db := setupTestDB(t)

	for i := 1; i <= 12; i++ {
		userID := fmt.Sprintf("user%d", i)
		require.NoError(t, db.Create(&models.User{
			ID:       userID,
			Username: fmt.Sprintf("player%d", i),
			Email:    fmt.Sprintf("player%d@example.com", i),
		}).Error)
		_, err := AwardPoints(db, userID, float64(i*10))
		require.NoError(t, err)
	}

	entries, err := GetLeaderboard(db)
	require.NoError(t, err)
	require.Len(t, entries, 10)

	assert.Equal(t, 1, entries[0].Placement)
	assert.Equal(t, 120, entries[0].Points)
	assert.Equal(t, "player12", entries[0].User.Username)

	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i].Points, entries[i-1].Points)
		assert.Equal(t, i+1, entries[i].Placement)
	}
}

func TestGetUserPlacement(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.User{ID: "user1", Username: "first", Email: "first@example.com"}).Error)
	require.NoError(t, db.Create(&models.User{ID: "user2", Username: "second", Email: "second@example.com"}).Error)

	_, err := AwardPoints(db, "user1", 200)
	require.NoError(t, err)
	_, err = AwardPoints(db, "user2", 50)
	require.NoError(t, err)

	placement, err := GetUserPlacement(db, "user2")
	require.NoError(t, err)
	require.NotNil(t, placement)
	assert.Equal(t, 2, placement.Placement)
	assert.Equal(t, 50, placement.Points)
	assert.Equal(t, "second", placement.User.Username)
}

func TestGetUserPlacement_NoRanking(t *testing.T) {
	db := setupTestDB(t)

	placement, err := GetUserPlacement(db, "nobody")
	require.NoError(t, err)
	assert.Nil(t, placement)
}
