package postgres

import (
	"context"
	"fmt"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *ledgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Credit(ctx context.Context, userID uuid.UUID, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	return creditTx(r.db.WithContext(ctx), userID, amount)
}

// Debit decrements the balance only when it covers the amount. The
// WHERE clause makes the check and the decrement one statement, so two
// concurrent debits can never drive the balance negative.
func (r *ledgerRepository) Debit(ctx context.Context, userID uuid.UUID, amount int) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	return debitTx(r.db.WithContext(ctx), userID, amount)
}

func (r *ledgerRepository) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Select("points").First(&user, "id = ?", userID).Error
	if err != nil {
		return 0, err
	}
	return user.Points, nil
}

// creditTx and debitTx run against whatever handle they are given so
// the unlock purchase can reuse them inside its transaction.

func creditTx(tx *gorm.DB, userID uuid.UUID, amount int) error {
	result := tx.Model(&domain.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func debitTx(tx *gorm.DB, userID uuid.UUID, amount int) (bool, error) {
	result := tx.Model(&domain.User{}).
		Where("id = ? AND points >= ?", userID, amount).
		Update("points", gorm.Expr("points - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
