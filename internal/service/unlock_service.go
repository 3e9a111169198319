package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/repository"
	"github.com/google/uuid"
)

// UnlockService orchestrates purchases. Every champion and skin goes
// through the same policy; the per-type differences are confined to
// item lookup and the skin's champion prerequisite.
type UnlockService struct {
	catalog    *CatalogService
	unlockRepo repository.UnlockRepository
	ledger     repository.LedgerRepository
}

func NewUnlockService(catalog *CatalogService, unlockRepo repository.UnlockRepository, ledger repository.LedgerRepository) *UnlockService {
	return &UnlockService{
		catalog:    catalog,
		unlockRepo: unlockRepo,
		ledger:     ledger,
	}
}

type unlockTarget struct {
	name            string
	cost            int
	defaultUnlocked bool
	championID      uint // parent champion, skins only
}

// Unlock purchases an item for a user.
//
// The checks run in a fixed order so the caller always gets the most
// specific failure: missing item, free item, already owned, champion
// prerequisite, then funds. The debit and the entitlement insert
// happen inside one storage transaction, so a lost race surfaces as
// ErrAlreadyUnlocked with the balance untouched.
func (s *UnlockService) Unlock(ctx context.Context, userID uuid.UUID, itemType domain.ItemType, itemID uint) (*domain.UnlockResult, error) {
	if !itemType.Valid() {
		return nil, fmt.Errorf("%w: unknown item type %q", domain.ErrItemNotFound, itemType)
	}

	target, err := s.checkEligibility(ctx, userID, itemType, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.unlockRepo.Purchase(ctx, userID, itemType, itemID, target.cost); err != nil {
		if errors.Is(err, domain.ErrInsufficientPoints) {
			// Balance moved between the check and the transaction.
			current, berr := s.ledger.Balance(ctx, userID)
			if berr != nil {
				current = 0
			}
			return nil, &domain.InsufficientPointsError{Required: target.cost, Current: current}
		}
		return nil, err
	}

	remaining, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.UnlockResult{
		ItemType:        itemType,
		ItemID:          itemID,
		ItemName:        target.name,
		CostPaid:        target.cost,
		RemainingPoints: remaining,
	}, nil
}

// CanUnlock evaluates purchase eligibility without transacting. Used
// by the visibility resolver for the userCanUnlock annotation.
func (s *UnlockService) CanUnlock(ctx context.Context, userID uuid.UUID, itemType domain.ItemType, itemID uint) (bool, error) {
	_, err := s.checkEligibility(ctx, userID, itemType, itemID)
	if err != nil {
		var insufficient *domain.InsufficientPointsError
		switch {
		case errors.Is(err, domain.ErrAlreadyAvailable),
			errors.Is(err, domain.ErrAlreadyUnlocked),
			errors.Is(err, domain.ErrChampionLocked),
			errors.As(err, &insufficient):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

func (s *UnlockService) checkEligibility(ctx context.Context, userID uuid.UUID, itemType domain.ItemType, itemID uint) (*unlockTarget, error) {
	target, err := s.resolveTarget(ctx, itemType, itemID)
	if err != nil {
		return nil, err
	}
	if target.defaultUnlocked {
		return nil, domain.ErrAlreadyAvailable
	}

	unlocked, err := s.unlockRepo.IsUnlocked(ctx, userID, itemType, itemID)
	if err != nil {
		return nil, err
	}
	if unlocked {
		return nil, domain.ErrAlreadyUnlocked
	}

	if itemType == domain.ItemTypeSkin {
		ok, err := s.championUnlockedFor(ctx, userID, target.championID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrChampionLocked
		}
	}

	balance, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < target.cost {
		return nil, &domain.InsufficientPointsError{Required: target.cost, Current: balance}
	}
	return target, nil
}

func (s *UnlockService) resolveTarget(ctx context.Context, itemType domain.ItemType, itemID uint) (*unlockTarget, error) {
	switch itemType {
	case domain.ItemTypeChampion:
		champion, err := s.catalog.GetChampion(ctx, itemID)
		if err != nil {
			return nil, err
		}
		return &unlockTarget{
			name:            champion.Name,
			cost:            champion.UnlockCost,
			defaultUnlocked: s.catalog.IsChampionDefaultUnlocked(champion),
		}, nil
	case domain.ItemTypeSkin:
		skin, err := s.catalog.GetSkin(ctx, itemID)
		if err != nil {
			return nil, err
		}
		defaultUnlocked, err := s.catalog.IsSkinDefaultUnlocked(ctx, skin)
		if err != nil {
			return nil, err
		}
		return &unlockTarget{
			name:            skin.Name,
			cost:            skin.UnlockCost,
			defaultUnlocked: defaultUnlocked,
			championID:      skin.ChampionID,
		}, nil
	default:
		return nil, domain.ErrItemNotFound
	}
}

// AvailableItem is a locked item the user could purchase right now.
type AvailableItem struct {
	ItemType   domain.ItemType `json:"itemType"`
	ItemID     uint            `json:"itemId"`
	Name       string          `json:"name"`
	ChampionID uint            `json:"championId,omitempty"` // skins only
	UnlockCost int             `json:"unlockCost"`
	CanAfford  bool            `json:"canAfford"`
}

type AvailableUnlocks struct {
	Points    int              `json:"points"`
	Champions []*AvailableItem `json:"champions"`
	Skins     []*AvailableItem `json:"skins"`
}

// ListAvailable returns every locked champion, and every locked skin
// of an available champion, with affordability against the current
// balance. Items the user already owns or gets by default are left
// out.
func (s *UnlockService) ListAvailable(ctx context.Context, userID uuid.UUID) (*AvailableUnlocks, error) {
	points, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	ownedChampions, err := s.unlockRepo.ListUnlockedIDs(ctx, userID, domain.ItemTypeChampion)
	if err != nil {
		return nil, err
	}
	ownedChampionSet := make(map[uint]bool, len(ownedChampions))
	for _, id := range ownedChampions {
		ownedChampionSet[id] = true
	}

	ownedSkins, err := s.unlockRepo.ListUnlockedIDs(ctx, userID, domain.ItemTypeSkin)
	if err != nil {
		return nil, err
	}
	ownedSkinSet := make(map[uint]bool, len(ownedSkins))
	for _, id := range ownedSkins {
		ownedSkinSet[id] = true
	}

	champions, err := s.catalog.GetAllChampions(ctx)
	if err != nil {
		return nil, err
	}

	result := &AvailableUnlocks{
		Points:    points,
		Champions: []*AvailableItem{},
		Skins:     []*AvailableItem{},
	}

	for _, champion := range champions {
		available := champion.IsUnlockedByDefault || ownedChampionSet[champion.ID]
		if !available {
			result.Champions = append(result.Champions, &AvailableItem{
				ItemType:   domain.ItemTypeChampion,
				ItemID:     champion.ID,
				Name:       champion.Name,
				UnlockCost: champion.UnlockCost,
				CanAfford:  points >= champion.UnlockCost,
			})
			continue
		}

		// Skins are only purchasable under an available champion.
		skins, err := s.catalog.GetChampionSkins(ctx, champion.ID)
		if err != nil {
			return nil, err
		}
		for _, skin := range skins {
			defaultUnlocked, err := s.catalog.IsSkinDefaultUnlocked(ctx, skin)
			if err != nil {
				return nil, err
			}
			if defaultUnlocked || ownedSkinSet[skin.ID] {
				continue
			}
			result.Skins = append(result.Skins, &AvailableItem{
				ItemType:   domain.ItemTypeSkin,
				ItemID:     skin.ID,
				Name:       skin.Name,
				ChampionID: skin.ChampionID,
				UnlockCost: skin.UnlockCost,
				CanAfford:  points >= skin.UnlockCost,
			})
		}
	}

	return result, nil
}

// championUnlockedFor reports whether the champion is available to the
// user, by default flag or by entitlement.
func (s *UnlockService) championUnlockedFor(ctx context.Context, userID uuid.UUID, championID uint) (bool, error) {
	champion, err := s.catalog.GetChampion(ctx, championID)
	if err != nil {
		return false, err
	}
	if champion.IsUnlockedByDefault {
		return true, nil
	}
	return s.unlockRepo.IsUnlocked(ctx, userID, domain.ItemTypeChampion, championID)
}
