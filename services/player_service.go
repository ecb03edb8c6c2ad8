package services

import (
	"errors"

	"game-tournament-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PlayerService struct {
	DB *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{DB: db}
}

func validateAge(age *int) error {
	if age != nil && (*age < 12 || *age > 100) {
		return validationf("age must be between 12 and 100")
	}
	return nil
}

func (s *PlayerService) CreatePlayer(c *fiber.Ctx) error {
	type Req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Age             *int   `json:"age"`
		MembershipLevel string `json:"membershipLevel"`
		Active          *bool  `json:"active"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	if req.Name == "" || req.Email == "" {
		return fail(c, validationf("name and email are required"))
	}
	if err := validateAge(req.Age); err != nil {
		return fail(c, err)
	}
	if req.MembershipLevel != "" && !models.ValidMembershipLevel(req.MembershipLevel) {
		return fail(c, validationf("membershipLevel must be one of free, premium, elite"))
	}

	player := &models.Player{
		Name:            req.Name,
		Email:           req.Email,
		Age:             req.Age,
		MembershipLevel: req.MembershipLevel,
		Active:          true,
	}
	if req.Active != nil {
		player.Active = *req.Active
	}
	if err := s.DB.WithContext(c.UserContext()).Create(player).Error; err != nil {
		if isUniqueViolation(err) {
			return fail(c, validationf("email already in use"))
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to create player"})
	}
	return c.Status(fiber.StatusCreated).JSON(player)
}

func (s *PlayerService) GetPlayers(c *fiber.Ctx) error {
	q := s.DB.WithContext(c.UserContext()).Model(&models.Player{})
	if level := c.Query("membershipLevel"); level != "" {
		q = q.Where("membership_level = ?", level)
	}
	if active := c.Query("active"); active != "" {
		q = q.Where("active = ?", active == "true")
	}

	var players []models.Player
	if err := q.Find(&players).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(players)
}

func (s *PlayerService) GetPlayerByID(c *fiber.Ctx) error {
	var player models.Player
	if err := s.DB.WithContext(c.UserContext()).First(&player, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, ErrPlayerNotFound)
		}
		return fail(c, err)
	}
	return c.JSON(player)
}

func (s *PlayerService) UpdatePlayer(c *fiber.Ctx) error {
	type Req struct {
		Name            *string `json:"name"`
		Email           *string `json:"email"`
		Age             *int    `json:"age"`
		MembershipLevel *string `json:"membershipLevel"`
		Active          *bool   `json:"active"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var player models.Player
	if err := s.DB.WithContext(c.UserContext()).First(&player, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, ErrPlayerNotFound)
		}
		return fail(c, err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return fail(c, validationf("name cannot be empty"))
		}
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		if *req.Email == "" {
			return fail(c, validationf("email cannot be empty"))
		}
		updates["email"] = *req.Email
	}
	if req.Age != nil {
		if err := validateAge(req.Age); err != nil {
			return fail(c, err)
		}
		updates["age"] = *req.Age
	}
	if req.MembershipLevel != nil {
		if !models.ValidMembershipLevel(*req.MembershipLevel) {
			return fail(c, validationf("membershipLevel must be one of free, premium, elite"))
		}
		updates["membership_level"] = *req.MembershipLevel
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&player).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return fail(c, validationf("email already in use"))
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to update player"})
		}
	}
	s.DB.First(&player, "id = ?", player.ID)
	return c.JSON(player)
}

func (s *PlayerService) DeletePlayer(c *fiber.Ctx) error {
	result := s.DB.WithContext(c.UserContext()).Delete(&models.Player{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		return fail(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return fail(c, ErrPlayerNotFound)
	}
	return c.JSON(fiber.Map{"message": "Player deleted successfully"})
}
