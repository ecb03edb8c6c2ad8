package models

import "gorm.io/gorm"

// Migrate creates the schema and the partial unique index that guarantees a
// player holds at most one registered tournament per UTC calendar day. The
// index is the store-level backstop for concurrent registration attempts.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Game{},
		&Player{},
		&Developer{},
		&Tournament{},
	); err != nil {
		return err
	}
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_tournaments_player_day_registered
		 ON tournaments (player_id, tournament_day)
		 WHERE status = 'registered'`,
	).Error
}
