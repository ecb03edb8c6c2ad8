package workers

import (
	"context"
	"time"

	"game-tournament-system/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReferenceAuditor periodically counts tournament records whose player,
// developer or game reference no longer resolves. Dangling references are
// tolerated by the read path; the auditor only surfaces them in the logs so
// operators notice bulk deletions.
type ReferenceAuditor struct {
	DB *gorm.DB
}

func NewReferenceAuditor(db *gorm.DB) *ReferenceAuditor {
	return &ReferenceAuditor{DB: db}
}

func (a *ReferenceAuditor) Poll(ctx context.Context, interval time.Duration) {
	log.Println("Starting dangling-reference auditor...")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reference auditor stopped")
			return
		case <-ticker.C:
			a.scan(ctx)
		}
	}
}

func (a *ReferenceAuditor) scan(ctx context.Context) {
	checks := []struct {
		label  string
		column string
		table  string
	}{
		{"player", "player_id", "players"},
		{"developer", "developer_id", "developers"},
		{"game", "game_id", "games"},
	}

	for _, check := range checks {
		var dangling int64
		err := a.DB.WithContext(ctx).
			Model(&models.Tournament{}).
			Where(check.column+" NOT IN (?)", a.DB.Table(check.table).Select("id")).
			Count(&dangling).Error
		if err != nil {
			log.Printf("[Auditor] DB error checking %s references: %v", check.label, err)
			continue
		}
		if dangling > 0 {
			log.Printf("⚠️  [Auditor] %d tournaments reference a deleted %s", dangling, check.label)
		}
	}
}
