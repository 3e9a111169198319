package domain

import (
	"errors"
	"fmt"
)

// Unlock errors. These are expected business outcomes, not faults; the
// HTTP layer maps them to 4xx responses.
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrAlreadyAvailable = errors.New("item is already unlocked by default")
	ErrAlreadyUnlocked  = errors.New("item is already unlocked")
	ErrChampionLocked   = errors.New("champion must be unlocked before its skins")
)

// Reward errors
var (
	ErrBonusAlreadyClaimed = errors.New("daily bonus already claimed today")
)

// InsufficientPointsError carries the amounts the client needs to show
// the user. Matched with errors.As; also matches
// errors.Is(err, ErrInsufficientPoints).
type InsufficientPointsError struct {
	Required int
	Current  int
}

var ErrInsufficientPoints = errors.New("insufficient points")

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: need %d, have %d", e.Required, e.Current)
}

func (e *InsufficientPointsError) Unwrap() error {
	return ErrInsufficientPoints
}
