package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyBonusState records the last calendar date a user claimed the
// daily bonus. Dates are stored as "YYYY-MM-DD" so the comparison is
// by calendar day, not a rolling 24h window.
type DailyBonusState struct {
	UserID          uuid.UUID `json:"userId" gorm:"type:uuid;primaryKey"`
	LastClaimedDate string    `json:"lastClaimedDate" gorm:"not null"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ChampionID uint      `json:"championId" gorm:"index;not null"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	Body       string    `json:"body" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RewardResult reports how many points an activity earned. Earned is
// zero when the activity was already rewarded for the current day.
type RewardResult struct {
	PointsEarned int `json:"pointsEarned"`
	TotalPoints  int `json:"totalPoints"`
}
