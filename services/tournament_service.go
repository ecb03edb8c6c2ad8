package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"game-tournament-system/models"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// storeTimeout bounds a single request's wait on the database.
const storeTimeout = 5 * time.Second

type TournamentService struct {
	DB *gorm.DB

	// playerLocks serializes registrations per player within this process so
	// the common conflict path answers with a clean 409. The partial unique
	// index in models.Migrate is the authoritative guard across processes.
	playerLocks sync.Map
}

func NewTournamentService(db *gorm.DB) *TournamentService {
	return &TournamentService{DB: db}
}

type RegistrationRequest struct {
	PlayerID       string
	DeveloperID    string
	GameID         string
	TournamentDate time.Time
	Notes          string
}

func (s *TournamentService) lockPlayer(playerID string) *sync.Mutex {
	mu, _ := s.playerLocks.LoadOrStore(playerID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Register runs the tournament registration workflow: player lookup, the
// membership gate, developer and game existence checks, then the same-day
// conflict check, in that order, short-circuiting on the first failure.
// Exactly one Tournament row is written on success and none on failure.
func (s *TournamentService) Register(ctx context.Context, req RegistrationRequest) (*models.Tournament, error) {
	if req.PlayerID == "" || req.DeveloperID == "" || req.GameID == "" {
		return nil, validationf("playerId, developerId and gameId are required")
	}
	if req.TournamentDate.IsZero() {
		return nil, validationf("tournamentDate is required")
	}

	mu := s.lockPlayer(req.PlayerID)
	mu.Lock()
	defer mu.Unlock()

	var registration *models.Tournament
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player models.Player
		if err := tx.First(&player, "id = ?", req.PlayerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlayerNotFound
			}
			return err
		}
		if !models.EligibleForTournaments(player.MembershipLevel) {
			return ErrMembershipRequired
		}
		if err := tx.First(&models.Developer{}, "id = ?", req.DeveloperID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeveloperNotFound
			}
			return err
		}
		if err := tx.First(&models.Game{}, "id = ?", req.GameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGameNotFound
			}
			return err
		}

		// Only registered tournaments block the day — a cancelled or
		// completed record frees it up again.
		var conflicts int64
		if err := tx.Model(&models.Tournament{}).
			Where("player_id = ? AND tournament_day = ? AND status = ?",
				req.PlayerID, models.DayKeyUTC(req.TournamentDate), models.TournamentStatusRegistered).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrScheduleConflict
		}

		registration = &models.Tournament{
			PlayerID:       req.PlayerID,
			DeveloperID:    req.DeveloperID,
			GameID:         req.GameID,
			TournamentDate: req.TournamentDate,
			Status:         models.TournamentStatusRegistered,
			Notes:          req.Notes,
		}
		if err := tx.Create(registration).Error; err != nil {
			if isUniqueViolation(err) {
				// Lost a cross-process race; same outcome as the pre-check.
				return ErrScheduleConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registration, nil
}

type TournamentFilter struct {
	GameID      string
	DeveloperID string
	Status      string
}

type PlayerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DeveloperSummary struct {
	Name string `json:"name"`
}

type GameSummary struct {
	Title string `json:"title"`
	Genre string `json:"genre"`
}

// EnrichedTournament embeds the stored record plus resolved summaries of its
// references. A dangling reference yields a null summary, never an error.
type EnrichedTournament struct {
	models.Tournament
	Player    *PlayerSummary    `json:"player"`
	Developer *DeveloperSummary `json:"developer"`
	Game      *GameSummary      `json:"game"`
}

// List returns tournaments matching the filter (absent keys impose no
// constraint), each enriched with player, developer and game summaries.
func (s *TournamentService) List(ctx context.Context, filter TournamentFilter) ([]EnrichedTournament, error) {
	q := s.DB.WithContext(ctx).Model(&models.Tournament{})
	if filter.GameID != "" {
		q = q.Where("game_id = ?", filter.GameID)
	}
	if filter.DeveloperID != "" {
		q = q.Where("developer_id = ?", filter.DeveloperID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var tournaments []models.Tournament
	if err := q.Order("created_at DESC").Find(&tournaments).Error; err != nil {
		return nil, err
	}
	return s.enrich(ctx, tournaments)
}

// FindByID returns a single enriched tournament record.
func (s *TournamentService) FindByID(ctx context.Context, id string) (*EnrichedTournament, error) {
	var tournament models.Tournament
	if err := s.DB.WithContext(ctx).First(&tournament, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	enriched, err := s.enrich(ctx, []models.Tournament{tournament})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// enrich resolves foreign keys in batches, one IN query per entity kind.
func (s *TournamentService) enrich(ctx context.Context, tournaments []models.Tournament) ([]EnrichedTournament, error) {
	playerIDs := make([]string, 0, len(tournaments))
	developerIDs := make([]string, 0, len(tournaments))
	gameIDs := make([]string, 0, len(tournaments))
	for _, t := range tournaments {
		playerIDs = append(playerIDs, t.PlayerID)
		developerIDs = append(developerIDs, t.DeveloperID)
		gameIDs = append(gameIDs, t.GameID)
	}

	players := map[string]PlayerSummary{}
	if len(playerIDs) > 0 {
		var rows []models.Player
		if err := s.DB.WithContext(ctx).Find(&rows, "id IN ?", playerIDs).Error; err != nil {
			return nil, err
		}
		for _, p := range rows {
			players[p.ID] = PlayerSummary{Name: p.Name, Email: p.Email}
		}
	}

	developers := map[string]DeveloperSummary{}
	if len(developerIDs) > 0 {
		var rows []models.Developer
		if err := s.DB.WithContext(ctx).Find(&rows, "id IN ?", developerIDs).Error; err != nil {
			return nil, err
		}
		for _, d := range rows {
			developers[d.ID] = DeveloperSummary{Name: d.Name}
		}
	}

	games := map[string]GameSummary{}
	if len(gameIDs) > 0 {
		var rows []models.Game
		if err := s.DB.WithContext(ctx).Find(&rows, "id IN ?", gameIDs).Error; err != nil {
			return nil, err
		}
		for _, g := range rows {
			games[g.ID] = GameSummary{Title: g.Title, Genre: g.Genre}
		}
	}

	enriched := make([]EnrichedTournament, 0, len(tournaments))
	for _, t := range tournaments {
		e := EnrichedTournament{Tournament: t}
		if p, ok := players[t.PlayerID]; ok {
			e.Player = &p
		}
		if d, ok := developers[t.DeveloperID]; ok {
			e.Developer = &d
		}
		if g, ok := games[t.GameID]; ok {
			e.Game = &g
		}
		enriched = append(enriched, e)
	}
	return enriched, nil
}

// --- Fiber handlers ---

// parseTournamentDate accepts RFC3339 or a bare calendar date.
func parseTournamentDate(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", value)
}

func (s *TournamentService) RegisterTournament(c *fiber.Ctx) error {
	type Req struct {
		PlayerID       string `json:"playerId"`
		DeveloperID    string `json:"developerId"`
		GameID         string `json:"gameId"`
		TournamentDate string `json:"tournamentDate"`
		Notes          string `json:"notes"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var date time.Time
	if req.TournamentDate != "" {
		parsed, err := parseTournamentDate(req.TournamentDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "invalid tournamentDate (use RFC3339 or YYYY-MM-DD)"})
		}
		date = parsed
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), storeTimeout)
	defer cancel()

	registration, err := s.Register(ctx, RegistrationRequest{
		PlayerID:       req.PlayerID,
		DeveloperID:    req.DeveloperID,
		GameID:         req.GameID,
		TournamentDate: date,
		Notes:          req.Notes,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Tournament registration successful",
		"registration": registration,
	})
}

func (s *TournamentService) GetTournaments(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), storeTimeout)
	defer cancel()

	tournaments, err := s.List(ctx, TournamentFilter{
		GameID:      c.Query("gameId"),
		DeveloperID: c.Query("developerId"),
		Status:      c.Query("status"),
	})
	if err != nil {
		log.Printf("ERROR listing tournaments: %v", err)
		return fail(c, err)
	}
	return c.JSON(tournaments)
}

func (s *TournamentService) GetTournamentByID(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), storeTimeout)
	defer cancel()

	tournament, err := s.FindByID(ctx, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tournament)
}

// UpdateTournamentStatus moves a record through the registered → completed /
// cancelled lifecycle. Re-registering a day already held by another
// registered tournament trips the unique index and maps to 409.
func (s *TournamentService) UpdateTournamentStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	type Req struct {
		Status string `json:"status"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if !models.ValidTournamentStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "status must be one of registered, completed, cancelled"})
	}

	result := s.DB.WithContext(c.UserContext()).
		Model(&models.Tournament{}).
		Where("id = ?", id).
		Update("status", req.Status)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return fail(c, ErrScheduleConflict)
		}
		return fail(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return fail(c, ErrTournamentNotFound)
	}

	var updated models.Tournament
	s.DB.First(&updated, "id = ?", id)
	return c.JSON(updated)
}
