package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Champion struct {
	ID                  uint           `json:"id" gorm:"primaryKey"`
	Name                string         `json:"name" gorm:"uniqueIndex;not null"` // e.g., "Aatrox"
	Title               string         `json:"title"`                            // e.g., "the Darkin Blade"
	Role                string         `json:"role"`                             // e.g., "Fighter"
	Region              string         `json:"region"`                           // e.g., "Runeterra"
	Description         string         `json:"description"`
	ImageURL            string         `json:"imageUrl"`
	Stats               datatypes.JSON `json:"stats" gorm:"type:jsonb"` // {"attack": 8, "defense": 4, ...}
	UnlockCost          int            `json:"unlockCost" gorm:"not null;default:30"`
	IsUnlockedByDefault bool           `json:"isUnlockedByDefault" gorm:"not null;default:false"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

type Skin struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	ChampionID          uint      `json:"championId" gorm:"index;not null"`
	Name                string    `json:"name" gorm:"not null"`
	Description         string    `json:"description"`
	ImageURL            string    `json:"imageUrl"`
	UnlockCost          int       `json:"unlockCost" gorm:"not null;default:10"`
	IsUnlockedByDefault bool      `json:"isUnlockedByDefault" gorm:"not null;default:false"`
	CreatedAt           time.Time `json:"createdAt"`
}
