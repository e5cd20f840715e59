package services

import (
	"errors"
	"time"

	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/models"
	"gorm.io/gorm"
)

type LeaderboardUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

type LeaderboardEntry struct {
	Placement int              `json:"placement"`
	Points    int              `json:"points"`
	Rank      string           `json:"rank"`
	User      *LeaderboardUser `json:"user"`
}

const (
	leaderboardSize     = 10
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 30 * time.Second
)

// GetLeaderboard returns the top rankings by points. The list is cached in
// Redis briefly since it is the hottest read in the app.
func GetLeaderboard(db *gorm.DB) ([]LeaderboardEntry, error) {
	if database.Redis != nil {
		var cached []LeaderboardEntry
		if err := database.CacheGet(leaderboardCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var rankings []models.Ranking
	if err := db.Order("points desc").Limit(leaderboardSize).Find(&rankings).Error; err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(rankings))
	for _, r := range rankings {
		userIDs = append(userIDs, r.UserID)
	}

	usersByID := make(map[string]models.User)
	if len(userIDs) > 0 {
		var users []models.User
		if err := db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			usersByID[u.ID] = u
		}
	}

	entries := make([]LeaderboardEntry, 0, len(rankings))
	for i, r := range rankings {
		entry := LeaderboardEntry{
			Placement: i + 1,
			Points:    r.Points,
			Rank:      r.Rank,
		}
		if u, ok := usersByID[r.UserID]; ok {
			entry.User = &LeaderboardUser{ID: u.ID, Username: u.Username}
		} else {
			entry.User = &LeaderboardUser{ID: r.UserID}
		}
		entries = append(entries, entry)
	}

	if database.Redis != nil {
		database.CacheSet(leaderboardCacheKey, entries, leaderboardCacheTTL)
	}
	return entries, nil
}

// GetUserPlacement computes the requester's own standing: position is one
// plus the count of rankings with strictly more points. Returns nil when
// the user has no ranking yet.
func GetUserPlacement(db *gorm.DB, userID string) (*LeaderboardEntry, error) {
	var ranking models.Ranking
	if err := db.Where("user_id = ?", userID).First(&ranking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var higher int64
	if err := db.Model(&models.Ranking{}).Where("points > ?", ranking.Points).Count(&higher).Error; err != nil {
		return nil, err
	}

	entry := &LeaderboardEntry{
		Placement: int(higher) + 1,
		Points:    ranking.Points,
		Rank:      ranking.Rank,
		User:      &LeaderboardUser{ID: userID},
	}
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err == nil {
		entry.User.Username = user.Username
	}
	return entry, nil
}

// InvalidateLeaderboard drops the cached top list, called after any points
// mutation reaches the database.
func InvalidateLeaderboard() {
	if database.Redis != nil {
		database.CacheInvalidate(leaderboardCacheKey)
	}
}
