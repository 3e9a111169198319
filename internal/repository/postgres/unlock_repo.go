package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type unlockRepository struct {
	db *gorm.DB
}

func NewUnlockRepository(db *gorm.DB) *unlockRepository {
	return &unlockRepository{db: db}
}

func (r *unlockRepository) IsUnlocked(ctx context.Context, userID uuid.UUID, itemType domain.ItemType, itemID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserUnlock{}).
		Where("user_id = ? AND item_type = ? AND item_id = ?", userID, itemType, itemID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *unlockRepository) Grant(ctx context.Context, userID uuid.UUID, itemType domain.ItemType, itemID uint, costPaid int) (bool, error) {
	unlock := &domain.UserUnlock{
		UserID:     userID,
		ItemType:   itemType,
		ItemID:     itemID,
		CostPaid:   costPaid,
		UnlockedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Create(unlock).Error
	if err != nil {
		// The unique index on (user, type, item) rejects a second
		// grant; callers treat that as "already unlocked".
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *unlockRepository) ListUnlockedIDs(ctx context.Context, userID uuid.UUID, itemType domain.ItemType) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.UserUnlock{}).
		Where("user_id = ? AND item_type = ?", userID, itemType).
		Pluck("item_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *unlockRepository) CountByType(ctx context.Context, userID uuid.UUID, itemType domain.ItemType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserUnlock{}).
		Where("user_id = ? AND item_type = ?", userID, itemType).
		Count(&count).Error
	return count, err
}

// Purchase runs the debit and the grant in a single transaction. The
// conditional debit re-checks the balance under the transaction, and
// the entitlement insert re-checks uniqueness, so concurrent purchases
// of the same item resolve to exactly one debit no matter what the
// service layer saw beforehand.
func (r *unlockRepository) Purchase(ctx context.Context, userID uuid.UUID, itemType domain.ItemType, itemID uint, cost int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cost > 0 {
			ok, err := debitTx(tx, userID, cost)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrInsufficientPoints
			}
		}

		unlock := &domain.UserUnlock{
			UserID:     userID,
			ItemType:   itemType,
			ItemID:     itemID,
			CostPaid:   cost,
			UnlockedAt: time.Now(),
		}
		if err := tx.Create(unlock).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyUnlocked
			}
			return err
		}
		return nil
	})
}
