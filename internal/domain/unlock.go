package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemType identifies which catalog table an unlock refers to.
type ItemType string

const (
	ItemTypeChampion ItemType = "champion"
	ItemTypeSkin     ItemType = "skin"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeChampion || t == ItemTypeSkin
}

// UserUnlock is an append-only record that a user paid for an item.
// The compound unique index makes duplicate unlocks impossible at the
// storage level; a second insert for the same pair fails there even if
// two requests race past the service checks.
type UserUnlock struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:ux_user_item"`
	ItemType   ItemType  `json:"itemType" gorm:"not null;uniqueIndex:ux_user_item"`
	ItemID     uint      `json:"itemId" gorm:"not null;uniqueIndex:ux_user_item"`
	CostPaid   int       `json:"costPaid" gorm:"not null"`
	UnlockedAt time.Time `json:"unlockedAt" gorm:"not null"`
}

// UnlockResult is returned on a successful purchase.
type UnlockResult struct {
	ItemType        ItemType `json:"itemType"`
	ItemID          uint     `json:"itemId"`
	ItemName        string   `json:"itemName"`
	CostPaid        int      `json:"costPaid"`
	RemainingPoints int      `json:"remainingPoints"`
}
