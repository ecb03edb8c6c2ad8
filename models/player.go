package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MembershipFree    = "free"
	MembershipPremium = "premium"
	MembershipElite   = "elite"
)

var MembershipLevels = []string{MembershipFree, MembershipPremium, MembershipElite}

func ValidMembershipLevel(level string) bool {
	for _, l := range MembershipLevels {
		if l == level {
			return true
		}
	}
	return false
}

// EligibleForTournaments reports whether a membership level may register for
// tournaments. Free members are categorically barred.
func EligibleForTournaments(level string) bool {
	return level == MembershipPremium || level == MembershipElite
}

type Player struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	Email           string    `json:"email" gorm:"not null;uniqueIndex"`
	Age             *int      `json:"age,omitempty"` // 12–100, optional
	MembershipLevel string    `json:"membershipLevel" gorm:"type:varchar(16);not null"`
	JoinDate        time.Time `json:"joinDate"`
	Active          bool      `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.MembershipLevel == "" {
		p.MembershipLevel = MembershipFree
	}
	if p.JoinDate.IsZero() {
		p.JoinDate = time.Now().UTC()
	}
	return nil
}
