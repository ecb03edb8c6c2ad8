// services/scheduler.go
package services

import (
	"time"

	"game-tournament-system/models"

	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"
)

// StartCompletionScheduler flips registered tournaments whose UTC day has
// passed to completed. Under the registered-only conflict policy this also
// frees the day for future registrations.
func (s *TournamentService) StartCompletionScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			today := models.DayKeyUTC(time.Now())
			result := s.DB.Model(&models.Tournament{}).
				Where("status = ? AND tournament_day < ?", models.TournamentStatusRegistered, today).
				Update("status", models.TournamentStatusCompleted)
			if result.Error != nil {
				log.Printf("[Scheduler] DB error: %v", result.Error)
				return
			}
			if result.RowsAffected > 0 {
				log.Printf("✅ Auto-completed %d past tournaments", result.RowsAffected)
			}
		}),
	)
}
