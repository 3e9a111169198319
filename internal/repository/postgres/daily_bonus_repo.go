package postgres

import (
	"context"
	"errors"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dailyBonusRepository struct {
	db *gorm.DB
}

func NewDailyBonusRepository(db *gorm.DB) *dailyBonusRepository {
	return &dailyBonusRepository{db: db}
}

// Claim stamps today's date and credits the bonus in one transaction.
// The state row is locked FOR UPDATE first, so two same-day claims
// serialize and the loser sees today's stamp already present.
func (r *dailyBonusRepository) Claim(ctx context.Context, userID uuid.UUID, today string, amount int) (bool, error) {
	claimed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var state domain.DailyBonusState
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&state, "user_id = ?", userID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			state = domain.DailyBonusState{UserID: userID, LastClaimedDate: today}
			if err := tx.Create(&state).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Lost a same-day race to the first-ever claim.
					return nil
				}
				return err
			}
		case err != nil:
			return err
		default:
			if state.LastClaimedDate == today {
				return nil
			}
			state.LastClaimedDate = today
			if err := tx.Save(&state).Error; err != nil {
				return err
			}
		}

		if err := creditTx(tx, userID, amount); err != nil {
			return err
		}
		claimed = true
		return nil
	})
	return claimed, err
}

func (r *dailyBonusRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.DailyBonusState, error) {
	var state domain.DailyBonusState
	err := r.db.WithContext(ctx).First(&state, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}
