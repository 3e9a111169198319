package repository

import (
	"context"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// LedgerRepository is the points balance. Debit is a single atomic
// check-and-decrement: it reports false, with no side effect, when the
// balance is short. The balance lives on the users row but is only
// ever mutated through these operations.
type LedgerRepository interface {
	Credit(ctx context.Context, userID uuid.UUID, amount int) error
	Debit(ctx context.Context, userID uuid.UUID, amount int) (bool, error)
	Balance(ctx context.Context, userID uuid.UUID) (int, error)
}

type ChampionRepository interface {
	Create(ctx context.Context, champion *domain.Champion) error
	Upsert(ctx context.Context, champion *domain.Champion) error
	UpsertMany(ctx context.Context, champions []*domain.Champion) error
	Update(ctx context.Context, champion *domain.Champion) error
	Delete(ctx context.Context, id uint) error
	GetAll(ctx context.Context) ([]*domain.Champion, error)
	GetByID(ctx context.Context, id uint) (*domain.Champion, error)
}

type SkinRepository interface {
	Create(ctx context.Context, skin *domain.Skin) error
	Update(ctx context.Context, skin *domain.Skin) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*domain.Skin, error)
	GetByChampionID(ctx context.Context, championID uint) ([]*domain.Skin, error)
	// FirstSkinID returns the lowest skin ID for a champion, or 0 when
	// the champion has no skins. The first skin counts as unlocked by
	// default even without the explicit flag.
	FirstSkinID(ctx context.Context, championID uint) (uint, error)
}

// UnlockRepository is the entitlement store: append-only facts that a
// user paid for an item, unique per (user, item type, item).
type UnlockRepository interface {
	IsUnlocked(ctx context.Context, userID uuid.UUID, itemType domain.ItemType, itemID uint) (bool, error)
	// Grant inserts an entitlement. It reports created=false, without
	// error, when one already exists for the pair.
	Grant(ctx context.Context, userID uuid.UUID, itemType domain.ItemType, itemID uint, costPaid int) (bool, error)
	ListUnlockedIDs(ctx context.Context, userID uuid.UUID, itemType domain.ItemType) ([]uint, error)
	CountByType(ctx context.Context, userID uuid.UUID, itemType domain.ItemType) (int64, error)
	// Purchase debits the ledger and grants the entitlement inside one
	// transaction. It returns domain.ErrInsufficientPoints when the
	// balance is short and domain.ErrAlreadyUnlocked when the grant
	// loses a race to the uniqueness constraint; either way the debit
	// is rolled back with the transaction.
	Purchase(ctx context.Context, userID uuid.UUID, itemType domain.ItemType, itemID uint, cost int) error
}

type DailyBonusRepository interface {
	// Claim credits amount and stamps today's date in one transaction.
	// It reports claimed=false when the state row already carries
	// today's date.
	Claim(ctx context.Context, userID uuid.UUID, today string, amount int) (bool, error)
	Get(ctx context.Context, userID uuid.UUID) (*domain.DailyBonusState, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByChampionID(ctx context.Context, championID uint) ([]*domain.Comment, error)
}

type Repositories struct {
	User       UserRepository
	Session    SessionRepository
	Ledger     LedgerRepository
	Champion   ChampionRepository
	Skin       SkinRepository
	Unlock     UnlockRepository
	DailyBonus DailyBonusRepository
	Comment    CommentRepository
}
