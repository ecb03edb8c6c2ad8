package services

import (
	"errors"

	"game-tournament-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DeveloperService struct {
	DB *gorm.DB
}

func NewDeveloperService(db *gorm.DB) *DeveloperService {
	return &DeveloperService{DB: db}
}

func validateSpecializations(specializations []string) error {
	for _, spec := range specializations {
		if !models.ValidGenre(spec) {
			return validationf("specialization %q must be one of RPG, FPS, Puzzle, Strategy, Simulation", spec)
		}
	}
	return nil
}

func (s *DeveloperService) CreateDeveloper(c *fiber.Ctx) error {
	type Req struct {
		Name            string   `json:"name"`
		Email           string   `json:"email"`
		Specializations []string `json:"specializations"`
		ExperienceYears *int     `json:"experienceYears"`
		HourlyRate      *float64 `json:"hourlyRate"`
		Available       *bool    `json:"available"`
		Certifications  []string `json:"certifications"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	if req.Name == "" || req.Email == "" {
		return fail(c, validationf("name and email are required"))
	}
	if err := validateSpecializations(req.Specializations); err != nil {
		return fail(c, err)
	}
	if req.ExperienceYears != nil && *req.ExperienceYears < 1 {
		return fail(c, validationf("experienceYears must be at least 1"))
	}
	if req.HourlyRate == nil {
		return fail(c, validationf("hourlyRate is required"))
	}
	if *req.HourlyRate < models.MinHourlyRate {
		return fail(c, validationf("hourlyRate must be at least %.0f", models.MinHourlyRate))
	}

	developer := &models.Developer{
		Name:            req.Name,
		Email:           req.Email,
		Specializations: req.Specializations,
		ExperienceYears: req.ExperienceYears,
		HourlyRate:      *req.HourlyRate,
		Available:       true,
		Certifications:  req.Certifications,
	}
	if req.Available != nil {
		developer.Available = *req.Available
	}
	if err := s.DB.WithContext(c.UserContext()).Create(developer).Error; err != nil {
		if isUniqueViolation(err) {
			return fail(c, validationf("email already in use"))
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to create developer"})
	}
	return c.Status(fiber.StatusCreated).JSON(developer)
}

func (s *DeveloperService) GetDevelopers(c *fiber.Ctx) error {
	q := s.DB.WithContext(c.UserContext()).Model(&models.Developer{})
	if spec := c.Query("specialization"); spec != "" {
		// Specializations are stored as a JSON array in a text column.
		q = q.Where("specializations LIKE ?", `%"`+spec+`"%`)
	}
	if available := c.Query("available"); available != "" {
		q = q.Where("available = ?", available == "true")
	}

	var developers []models.Developer
	if err := q.Find(&developers).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(developers)
}

func (s *DeveloperService) GetDeveloperByID(c *fiber.Ctx) error {
	var developer models.Developer
	if err := s.DB.WithContext(c.UserContext()).First(&developer, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, ErrDeveloperNotFound)
		}
		return fail(c, err)
	}
	return c.JSON(developer)
}

func (s *DeveloperService) UpdateDeveloper(c *fiber.Ctx) error {
	type Req struct {
		Name            *string  `json:"name"`
		Email           *string  `json:"email"`
		Specializations []string `json:"specializations"`
		ExperienceYears *int     `json:"experienceYears"`
		HourlyRate      *float64 `json:"hourlyRate"`
		Available       *bool    `json:"available"`
		Certifications  []string `json:"certifications"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var developer models.Developer
	if err := s.DB.WithContext(c.UserContext()).First(&developer, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, ErrDeveloperNotFound)
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
	if req.Specializations != nil {
		if err := validateSpecializations(req.Specializations); err != nil {
			return fail(c, err)
		}
		developer.Specializations = req.Specializations
	}
	if req.ExperienceYears != nil {
		if *req.ExperienceYears < 1 {
			return fail(c, validationf("experienceYears must be at least 1"))
		}
		updates["experience_years"] = *req.ExperienceYears
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < models.MinHourlyRate {
			return fail(c, validationf("hourlyRate must be at least %.0f", models.MinHourlyRate))
		}
		updates["hourly_rate"] = *req.HourlyRate
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}
	if req.Certifications != nil {
		developer.Certifications = req.Certifications
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Serialized slice columns go through Save, scalar fields through Updates.
		if req.Specializations != nil || req.Certifications != nil {
			if err := tx.Model(&developer).
				Select("specializations", "certifications").
				Updates(&developer).Error; err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(&developer).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fail(c, validationf("email already in use"))
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to update developer"})
	}
	s.DB.First(&developer, "id = ?", developer.ID)
	return c.JSON(developer)
}

func (s *DeveloperService) DeleteDeveloper(c *fiber.Ctx) error {
	result := s.DB.WithContext(c.UserContext()).Delete(&models.Developer{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		return fail(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return fail(c, ErrDeveloperNotFound)
	}
	return c.JSON(fiber.Map{"message": "Developer deleted successfully"})
}
