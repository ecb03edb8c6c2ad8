// models/game.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GenreRPG        = "RPG"
	GenreFPS        = "FPS"
	GenrePuzzle     = "Puzzle"
	GenreStrategy   = "Strategy"
	GenreSimulation = "Simulation"
)

// Genres is the fixed set accepted for Game.Genre and Developer.Specializations.
var Genres = []string{GenreRPG, GenreFPS, GenrePuzzle, GenreStrategy, GenreSimulation}

func ValidGenre(genre string) bool {
	for _, g := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}

type Game struct {
	ID          string   `json:"id" gorm:"primaryKey"`
	Title       string   `json:"title" gorm:"not null"`
	Genre       string   `json:"genre" gorm:"type:varchar(16);not null"`
	Rating      *float64 `json:"rating,omitempty"` // 0–10, optional
	Multiplayer bool     `json:"multiplayer"`

	// 🖼️ Cover art — public CDN URL, set via the cover upload endpoint
	CoverURL string `json:"coverUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
