package main

import (
	"os"

	"github.com/khaynem/WasteWise-Backend/internal/config"
	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/models"
	"github.com/khaynem/WasteWise-Backend/internal/services"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
)

// One-shot job that gives every user without a ranking a zero-point Bronze
// entry so the leaderboard and profile pages have something to show.
func main() {
	config.LoadConfig()
	logger.Init(os.Getenv("GO_ENV"))

	database.Connect()

	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		logger.Fatal().Err(err).Msg("Backfill failed: could not load users")
	}
	logger.Info().Int("count", len(users)).Msg("Loaded users")

	created, skipped := 0, 0
	for _, user := range users {
		var existing models.Ranking
		err := database.DB.Where("user_id = ?", user.ID).First(&existing).Error
		if err == nil {
			skipped++
			continue
		}

		ranking := models.Ranking{
			UserID: user.ID,
			Points: 0,
			Rank:   services.RankForPoints(0),
		}
		if err := database.DB.Create(&ranking).Error; err != nil {
			logger.Fatal().Err(err).Str("user_id", user.ID).Msg("Backfill failed: could not create ranking")
		}
		created++
		logger.Info().Str("user_id", user.ID).Str("rank", ranking.Rank).Msg("Created ranking")
	}

	logger.Info().
		Int("total", len(users)).
		Int("created", created).
		Int("skipped", skipped).
		Msg("Backfill complete")
}
