package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MinHourlyRate is the lowest accepted developer rate.
const MinHourlyRate = 10.0

type Developer struct {
	ID              string   `json:"id" gorm:"primaryKey"`
	Name            string   `json:"name" gorm:"not null"`
	Email           string   `json:"email" gorm:"not null;uniqueIndex"`
	Specializations []string `json:"specializations,omitempty" gorm:"serializer:json;type:text"`
	ExperienceYears *int     `json:"experienceYears,omitempty"` // ≥1, optional
	HourlyRate      float64  `json:"hourlyRate" gorm:"not null"`
	Available       bool     `json:"available"`
	Certifications  []string `json:"certifications,omitempty" gorm:"serializer:json;type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *Developer) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
