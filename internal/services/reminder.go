package services

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/khaynem/WasteWise-Backend/internal/models"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
)

// StartReminderScheduler runs a daily job that emails verified users the
// evening before a barangay's scheduled collection day. Returns the scheduler
// so the caller can shut it down gracefully.
func StartReminderScheduler(db *gorm.DB) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(18, 0, 0))),
		gocron.NewTask(func() {
			SendCollectionReminders(db, time.Now())
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	logger.Info().Msg("Collection reminder scheduler started")
	return sched, nil
}

// SendCollectionReminders emails every verified active user for each barangay
// with a collection entry falling on the day after now.
func SendCollectionReminders(db *gorm.DB, now time.Time) {
	tomorrow := now.AddDate(0, 0, 1).Weekday().String()

	var schedules []models.Schedule
	if err := db.Preload("Entries").Find(&schedules).Error; err != nil {
		logger.Error().Err(err).Msg("Reminder job: failed to load schedules")
		return
	}

	for _, sched := range schedules {
		var due []models.ScheduleEntry
		for _, e := range sched.Entries {
			if e.Day == tomorrow {
				due = append(due, e)
			}
		}
		if len(due) == 0 {
			continue
		}

		var users []models.User
		err := db.Where("verified = ? AND status = ?", true, models.StatusActive).
			Find(&users).Error
		if err != nil {
			logger.Error().Err(err).Msg("Reminder job: failed to load users")
			return
		}

		for _, e := range due {
			for _, u := range users {
				if err := SendCollectionReminderEmail(u.Email, u.Username, sched.Barangay, e.TypeName, e.Day); err != nil {
					logger.Error().Err(err).Str("email", u.Email).Msg("Reminder job: failed to send reminder")
				}
			}
		}
		logger.Info().Str("barangay", sched.Barangay).Str("day", tomorrow).Msg("Reminder job: reminders sent")
	}
}
