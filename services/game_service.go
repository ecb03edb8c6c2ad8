package services

import (
	"errors"
	"path/filepath"

	"game-tournament-system/models"
	"game-tournament-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GameService struct {
	DB *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{DB: db}
}

func validateRating(rating *float64) error {
	if rating != nil && (*rating < 0 || *rating > 10) {
		return validationf("rating must be between 0 and 10")
	}
	return nil
}

func (s *GameService) GetAllGames(c *fiber.Ctx) error {
	var games []models.Game
	if err := s.DB.WithContext(c.UserContext()).
		Order("created_at DESC").
		Find(&games).Error; err != nil {
		log.Printf("ERROR fetching games: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch games"})
	}
	return c.JSON(games)
}

func (s *GameService) GetGameByID(c *fiber.Ctx) error {
	var game models.Game
	if err := s.DB.WithContext(c.UserContext()).First(&game, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, ErrGameNotFound)
		}
		return fail(c, err)
	}
	return c.JSON(game)
}

func (s *GameService) CreateGame(c *fiber.Ctx) error {
	type Req struct {
		Title       string   `json:"title"`
		Genre       string   `json:"genre"`
		Rating      *float64 `json:"rating"`
		Multiplayer *bool    `json:"multiplayer"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	if req.Title == "" {
		return fail(c, validationf("title is required"))
	}
	if !models.ValidGenre(req.Genre) {
		return fail(c, validationf("genre must be one of RPG, FPS, Puzzle, Strategy, Simulation"))
	}
	if err := validateRating(req.Rating); err != nil {
		return fail(c, err)
	}

	game := &models.Game{
		Title:  req.Title,
		Genre:  req.Genre,
		Rating: req.Rating,
	}
	if req.Multiplayer != nil {
		game.Multiplayer = *req.Multiplayer
	}
	if err := s.DB.WithContext(c.UserContext()).Create(game).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to create game"})
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

// UpdateGame merges an explicit allow-list of mutable fields; unknown body
// keys are ignored and every provided field is re-validated.
func (s *GameService) UpdateGame(c *fiber.Ctx) error {
	type Req struct {
		Title       *string  `json:"title"`
		Genre       *string  `json:"genre"`
		Rating      *float64 `json:"rating"`
		Multiplayer *bool    `json:"multiplayer"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var game models.Game
	if err := s.DB.WithContext(c.UserContext()).First(&game, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, ErrGameNotFound)
		}
		return fail(c, err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			return fail(c, validationf("title cannot be empty"))
		}
		updates["title"] = *req.Title
	}
	if req.Genre != nil {
		if !models.ValidGenre(*req.Genre) {
			return fail(c, validationf("genre must be one of RPG, FPS, Puzzle, Strategy, Simulation"))
		}
		updates["genre"] = *req.Genre
	}
	if req.Rating != nil {
		if err := validateRating(req.Rating); err != nil {
			return fail(c, err)
		}
		updates["rating"] = *req.Rating
	}
	if req.Multiplayer != nil {
		updates["multiplayer"] = *req.Multiplayer
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&game).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to update game"})
		}
	}
	s.DB.First(&game, "id = ?", game.ID)
	return c.JSON(game)
}

func (s *GameService) DeleteGame(c *fiber.Ctx) error {
	result := s.DB.WithContext(c.UserContext()).Delete(&models.Game{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		return fail(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return fail(c, ErrGameNotFound)
	}
	return c.JSON(fiber.Map{"message": "Game deleted successfully"})
}

// UploadCover stores a cover image in R2 and records its public URL.
func (s *GameService) UploadCover(c *fiber.Ctx) error {
	var game models.Game
	if err := s.DB.WithContext(c.UserContext()).First(&game, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, ErrGameNotFound)
		}
		return fail(c, err)
	}

	cover, err := c.FormFile("cover")
	if err != nil || cover.Size == 0 {
		return fail(c, validationf("cover file is required"))
	}
	ext := filepath.Ext(cover.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "covers/" + slug.Make(game.Title) + "-" + uuid.NewString() + ext
	url, err := utils.UploadFileToR2(cover, key)
	if err != nil {
		log.Printf("ERROR uploading cover for game %s: %v", game.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload cover"})
	}

	if err := s.DB.Model(&game).Update("cover_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save cover URL"})
	}
	game.CoverURL = url
	return c.JSON(game)
}
