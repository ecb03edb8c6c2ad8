package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TournamentStatusRegistered = "registered"
	TournamentStatusCompleted  = "completed"
	TournamentStatusCancelled  = "cancelled"
)

var TournamentStatuses = []string{
	TournamentStatusRegistered,
	TournamentStatusCompleted,
	TournamentStatusCancelled,
}

func ValidTournamentStatus(status string) bool {
	for _, s := range TournamentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Tournament is a registration record tying a player, a developer and a game
// to a calendar day. References are plain ids — deleting a referenced entity
// leaves them dangling, which the read side tolerates.
type Tournament struct {
	ID          string `json:"id" gorm:"primaryKey"`
	PlayerID    string `json:"playerId" gorm:"not null;index"`
	DeveloperID string `json:"developerId" gorm:"not null;index"`
	GameID      string `json:"gameId" gorm:"not null;index"`

	// TournamentDate keeps the time of day as submitted; TournamentDay is the
	// UTC calendar day it falls on, denormalized for conflict checks and the
	// partial unique index that enforces one registration per player per day.
	TournamentDate time.Time `json:"tournamentDate" gorm:"not null"`
	TournamentDay  string    `json:"-" gorm:"type:varchar(10);not null;index"`

	Status string `json:"status" gorm:"type:varchar(16);not null;default:'registered'"`
	Notes  string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Tournament) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TournamentStatusRegistered
	}
	if t.TournamentDay == "" {
		t.TournamentDay = DayKeyUTC(t.TournamentDate)
	}
	return nil
}

// DayKeyUTC buckets a timestamp into its UTC calendar day.
func DayKeyUTC(ts time.Time) string {
	return ts.UTC().Format("2006-01-02")
}
