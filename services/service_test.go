package services

import (
	"testing"

	"game-tournament-system/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPlayer(t *testing.T, db *gorm.DB, level string) models.Player {
	t.Helper()
	player := models.Player{
		Name:            "Test Player",
		Email:           uuid.NewString() + "@example.com",
		MembershipLevel: level,
		Active:          true,
	}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("seed player: %v", err)
	}
	return player
}

func seedDeveloper(t *testing.T, db *gorm.DB) models.Developer {
	t.Helper()
	developer := models.Developer{
		Name:       "Test Studio",
		Email:      uuid.NewString() + "@example.com",
		HourlyRate: 40,
		Available:  true,
	}
	if err := db.Create(&developer).Error; err != nil {
		t.Fatalf("seed developer: %v", err)
	}
	return developer
}

func seedGame(t *testing.T, db *gorm.DB) models.Game {
	t.Helper()
	game := models.Game{
		Title: "Test Game",
		Genre: models.GenreRPG,
	}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("seed game: %v", err)
	}
	return game
}
