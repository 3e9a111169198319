package service

import (
	"github.com/akis/champion-vault/internal/config"
	"github.com/akis/champion-vault/internal/repository"
)

type Services struct {
	Auth       *AuthService
	Catalog    *CatalogService
	Unlock     *UnlockService
	Visibility *VisibilityService
	Rewards    *RewardsService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	catalog := NewCatalogService(repos.Champion, repos.Skin, cfg)
	return &Services{
		Auth:       NewAuthService(repos.User, repos.Session, cfg),
		Catalog:    catalog,
		Unlock:     NewUnlockService(catalog, repos.Unlock, repos.Ledger),
		Visibility: NewVisibilityService(catalog, repos.Unlock, repos.Ledger),
		Rewards:    NewRewardsService(repos.DailyBonus, repos.Unlock, repos.Ledger, cfg),
	}
}
