package services

import (
	"time"

	"game-tournament-system/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// SeedDemoData wipes the four collections and loads a small demo dataset.
// Enabled with SEED_DEMO_DATA=true; meant for local development only.
func SeedDemoData(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Tournament{}, &models.Game{}, &models.Player{}, &models.Developer{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		games := []models.Game{
			{Title: "Cyberpunk Quest", Genre: models.GenreRPG, Rating: floatPtr(9), Multiplayer: true},
			{Title: "Fast Frag", Genre: models.GenreFPS, Rating: floatPtr(8), Multiplayer: true},
			{Title: "Brain Tease", Genre: models.GenrePuzzle, Rating: floatPtr(7)},
			{Title: "Empire Builder", Genre: models.GenreStrategy, Rating: floatPtr(8.5), Multiplayer: true},
			{Title: "Life Sim", Genre: models.GenreSimulation, Rating: floatPtr(6)},
		}
		if err := tx.Create(&games).Error; err != nil {
			return err
		}

		players := []models.Player{
			{Name: "Alice Smith", Email: "alice@example.com", Age: intPtr(25), MembershipLevel: models.MembershipElite, Active: true},
			{Name: "Bob Jones", Email: "bob@example.com", Age: intPtr(30), MembershipLevel: models.MembershipPremium, Active: true},
			{Name: "Charlie Brown", Email: "charlie@example.com", Age: intPtr(20), MembershipLevel: models.MembershipFree, Active: true},
			{Name: "Diana Prince", Email: "diana@example.com", Age: intPtr(28), MembershipLevel: models.MembershipPremium, Active: true},
			{Name: "Ethan Hunt", Email: "ethan@example.com", Age: intPtr(35), MembershipLevel: models.MembershipElite, Active: false},
		}
		if err := tx.Create(&players).Error; err != nil {
			return err
		}

		developers := []models.Developer{
			{Name: "Ubisoft-like", Email: "dev1@example.com", Specializations: []string{models.GenreRPG, models.GenreFPS}, ExperienceYears: intPtr(10), HourlyRate: 50, Available: true},
			{Name: "Indie Studio", Email: "dev2@example.com", Specializations: []string{models.GenrePuzzle}, ExperienceYears: intPtr(5), HourlyRate: 30, Available: true},
			{Name: "Strategy Kings", Email: "dev3@example.com", Specializations: []string{models.GenreStrategy}, ExperienceYears: intPtr(15), HourlyRate: 80, Available: false},
			{Name: "Sim World", Email: "dev4@example.com", Specializations: []string{models.GenreSimulation}, ExperienceYears: intPtr(8), HourlyRate: 45, Available: true},
			{Name: "Multi Dev", Email: "dev5@example.com", Specializations: []string{models.GenreRPG, models.GenreStrategy}, ExperienceYears: intPtr(12), HourlyRate: 70, Available: true},
		}
		if err := tx.Create(&developers).Error; err != nil {
			return err
		}

		now := time.Now()
		day := 24 * time.Hour
		tournaments := []models.Tournament{
			{PlayerID: players[0].ID, DeveloperID: developers[0].ID, GameID: games[0].ID, TournamentDate: now, Notes: "Alice joining Cyberpunk Quest"},
			{PlayerID: players[1].ID, DeveloperID: developers[1].ID, GameID: games[2].ID, TournamentDate: now.Add(day), Notes: "Bob joining Brain Tease"},
			{PlayerID: players[3].ID, DeveloperID: developers[3].ID, GameID: games[4].ID, TournamentDate: now.Add(2 * day), Notes: "Diana joining Life Sim"},
			{PlayerID: players[0].ID, DeveloperID: developers[4].ID, GameID: games[3].ID, TournamentDate: now.Add(3 * day), Notes: "Alice joining Empire Builder"},
			{PlayerID: players[4].ID, DeveloperID: developers[0].ID, GameID: games[1].ID, TournamentDate: now.Add(4 * day), Notes: "Ethan joining Fast Frag"},
		}
		if err := tx.Create(&tournaments).Error; err != nil {
			return err
		}

		log.Printf("✅ Seeded %d games, %d players, %d developers, %d tournaments",
			len(games), len(players), len(developers), len(tournaments))
		return nil
	})
}
