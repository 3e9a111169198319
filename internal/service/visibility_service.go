package service

import (
	"context"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/repository"
	"github.com/google/uuid"
)

// Actor is the requesting identity. The zero value is an anonymous
// guest; handlers build it from the auth middleware, never from any
// ambient lookup.
type Actor struct {
	UserID        uuid.UUID
	Authenticated bool
}

func Guest() Actor {
	return Actor{}
}

func AuthenticatedActor(userID uuid.UUID) Actor {
	return Actor{UserID: userID, Authenticated: true}
}

// ChampionView is a champion annotated with the actor's lock state.
type ChampionView struct {
	*domain.Champion
	IsLocked      bool `json:"isLocked"`
	UserCanUnlock bool `json:"userCanUnlock"`
}

type SkinView struct {
	*domain.Skin
	IsLocked      bool `json:"isLocked"`
	UserCanUnlock bool `json:"userCanUnlock"`
}

// VisibilityService computes the locked/unlocked projection of the
// catalog for one actor. It batches the entitlement and balance reads
// so annotating a list costs a fixed number of queries.
type VisibilityService struct {
	catalog    *CatalogService
	unlockRepo repository.UnlockRepository
	ledger     repository.LedgerRepository
}

func NewVisibilityService(catalog *CatalogService, unlockRepo repository.UnlockRepository, ledger repository.LedgerRepository) *VisibilityService {
	return &VisibilityService{
		catalog:    catalog,
		unlockRepo: unlockRepo,
		ledger:     ledger,
	}
}

type actorState struct {
	unlockedChampions map[uint]bool
	unlockedSkins     map[uint]bool
	points            int
}

func (s *VisibilityService) loadActorState(ctx context.Context, actor Actor, withSkins bool) (*actorState, error) {
	state := &actorState{
		unlockedChampions: map[uint]bool{},
		unlockedSkins:     map[uint]bool{},
	}
	if !actor.Authenticated {
		return state, nil
	}

	championIDs, err := s.unlockRepo.ListUnlockedIDs(ctx, actor.UserID, domain.ItemTypeChampion)
	if err != nil {
		return nil, err
	}
	for _, id := range championIDs {
		state.unlockedChampions[id] = true
	}

	if withSkins {
		skinIDs, err := s.unlockRepo.ListUnlockedIDs(ctx, actor.UserID, domain.ItemTypeSkin)
		if err != nil {
			return nil, err
		}
		for _, id := range skinIDs {
			state.unlockedSkins[id] = true
		}
	}

	state.points, err = s.ledger.Balance(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return state, nil
}

// AnnotateChampions returns the champions with per-actor lock state.
// Guests see only default-unlocked champions as unlocked and can never
// purchase; locked entries still carry their cost metadata.
func (s *VisibilityService) AnnotateChampions(ctx context.Context, actor Actor, champions []*domain.Champion) ([]*ChampionView, error) {
	state, err := s.loadActorState(ctx, actor, false)
	if err != nil {
		return nil, err
	}

	views := make([]*ChampionView, len(champions))
	for i, champion := range champions {
		views[i] = s.annotateChampion(actor, state, champion)
	}
	return views, nil
}

func (s *VisibilityService) AnnotateChampion(ctx context.Context, actor Actor, champion *domain.Champion) (*ChampionView, error) {
	state, err := s.loadActorState(ctx, actor, false)
	if err != nil {
		return nil, err
	}
	return s.annotateChampion(actor, state, champion), nil
}

func (s *VisibilityService) annotateChampion(actor Actor, state *actorState, champion *domain.Champion) *ChampionView {
	unlocked := champion.IsUnlockedByDefault
	if !unlocked && actor.Authenticated {
		unlocked = state.unlockedChampions[champion.ID]
	}

	canUnlock := actor.Authenticated &&
		!unlocked &&
		!champion.IsUnlockedByDefault &&
		state.points >= champion.UnlockCost

	return &ChampionView{
		Champion:      champion,
		IsLocked:      !unlocked,
		UserCanUnlock: canUnlock,
	}
}

// AnnotateSkins annotates a champion's skins. A skin is unlocked when
// the explicit flag is set, it is the champion's first skin, or the
// actor holds an entitlement. UserCanUnlock additionally requires the
// parent champion to be available, mirroring the purchase policy.
func (s *VisibilityService) AnnotateSkins(ctx context.Context, actor Actor, champion *domain.Champion, skins []*domain.Skin) ([]*SkinView, error) {
	state, err := s.loadActorState(ctx, actor, true)
	if err != nil {
		return nil, err
	}

	firstSkinID, err := s.catalog.skinRepo.FirstSkinID(ctx, champion.ID)
	if err != nil {
		return nil, err
	}

	championUnlocked := champion.IsUnlockedByDefault ||
		(actor.Authenticated && state.unlockedChampions[champion.ID])

	views := make([]*SkinView, len(skins))
	for i, skin := range skins {
		defaultUnlocked := skin.IsUnlockedByDefault || (firstSkinID != 0 && skin.ID == firstSkinID)

		unlocked := defaultUnlocked
		if !unlocked && actor.Authenticated {
			unlocked = state.unlockedSkins[skin.ID]
		}

		canUnlock := actor.Authenticated &&
			!unlocked &&
			!defaultUnlocked &&
			championUnlocked &&
			state.points >= skin.UnlockCost

		views[i] = &SkinView{
			Skin:          skin,
			IsLocked:      !unlocked,
			UserCanUnlock: canUnlock,
		}
	}
	return views, nil
}

func (s *VisibilityService) AnnotateSkin(ctx context.Context, actor Actor, skin *domain.Skin) (*SkinView, error) {
	champion, err := s.catalog.GetChampion(ctx, skin.ChampionID)
	if err != nil {
		return nil, err
	}
	views, err := s.AnnotateSkins(ctx, actor, champion, []*domain.Skin{skin})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}
