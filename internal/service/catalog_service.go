package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/akis/champion-vault/internal/config"
	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/repository"
)

const (
	dataDragonBaseURL = "https://ddragon.leagueoflegends.com"
)

// CatalogService owns the unlockable item definitions: champions,
// their skins, and the default-unlock policy.
type CatalogService struct {
	championRepo repository.ChampionRepository
	skinRepo     repository.SkinRepository
	cfg          *config.Config
	httpClient   *http.Client
}

func NewCatalogService(championRepo repository.ChampionRepository, skinRepo repository.SkinRepository, cfg *config.Config) *CatalogService {
	return &CatalogService{
		championRepo: championRepo,
		skinRepo:     skinRepo,
		cfg:          cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *CatalogService) GetAllChampions(ctx context.Context) ([]*domain.Champion, error) {
	return s.championRepo.GetAll(ctx)
}

func (s *CatalogService) GetChampion(ctx context.Context, id uint) (*domain.Champion, error) {
	return s.championRepo.GetByID(ctx, id)
}

func (s *CatalogService) GetSkin(ctx context.Context, id uint) (*domain.Skin, error) {
	return s.skinRepo.GetByID(ctx, id)
}

func (s *CatalogService) GetChampionSkins(ctx context.Context, championID uint) ([]*domain.Skin, error) {
	if _, err := s.championRepo.GetByID(ctx, championID); err != nil {
		return nil, err
	}
	return s.skinRepo.GetByChampionID(ctx, championID)
}

// IsChampionDefaultUnlocked reports whether a champion is usable
// without spending points.
func (s *CatalogService) IsChampionDefaultUnlocked(champion *domain.Champion) bool {
	return champion.IsUnlockedByDefault
}

// IsSkinDefaultUnlocked applies the skin default-unlock policy: the
// explicit flag wins, and failing that the first (lowest-ID) skin of
// the champion is free so every champion has a usable base look.
func (s *CatalogService) IsSkinDefaultUnlocked(ctx context.Context, skin *domain.Skin) (bool, error) {
	if skin.IsUnlockedByDefault {
		return true, nil
	}
	firstID, err := s.skinRepo.FirstSkinID(ctx, skin.ChampionID)
	if err != nil {
		return false, err
	}
	return firstID != 0 && firstID == skin.ID, nil
}

type CreateChampionInput struct {
	Name                string
	Title               string
	Role                string
	Region              string
	Description         string
	ImageURL            string
	Stats               json.RawMessage
	UnlockCost          *int
	IsUnlockedByDefault bool
}

func (s *CatalogService) CreateChampion(ctx context.Context, input CreateChampionInput) (*domain.Champion, error) {
	cost := s.cfg.DefaultChampionCost
	if input.UnlockCost != nil {
		cost = *input.UnlockCost
	}
	if cost < 0 {
		return nil, fmt.Errorf("unlock cost must be non-negative, got %d", cost)
	}

	champion := &domain.Champion{
		Name:                input.Name,
		Title:               input.Title,
		Role:                input.Role,
		Region:              input.Region,
		Description:         input.Description,
		ImageURL:            input.ImageURL,
		Stats:               []byte(input.Stats),
		UnlockCost:          cost,
		IsUnlockedByDefault: input.IsUnlockedByDefault,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	if err := s.championRepo.Create(ctx, champion); err != nil {
		return nil, err
	}
	return champion, nil
}

type UpdateChampionInput struct {
	Title               *string
	Role                *string
	Region              *string
	Description         *string
	ImageURL            *string
	UnlockCost          *int
	IsUnlockedByDefault *bool
}

func (s *CatalogService) UpdateChampion(ctx context.Context, id uint, input UpdateChampionInput) (*domain.Champion, error) {
	champion, err := s.championRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		champion.Title = *input.Title
	}
	if input.Role != nil {
		champion.Role = *input.Role
	}
	if input.Region != nil {
		champion.Region = *input.Region
	}
	if input.Description != nil {
		champion.Description = *input.Description
	}
	if input.ImageURL != nil {
		champion.ImageURL = *input.ImageURL
	}
	if input.UnlockCost != nil {
		if *input.UnlockCost < 0 {
			return nil, fmt.Errorf("unlock cost must be non-negative, got %d", *input.UnlockCost)
		}
		champion.UnlockCost = *input.UnlockCost
	}
	if input.IsUnlockedByDefault != nil {
		champion.IsUnlockedByDefault = *input.IsUnlockedByDefault
	}
	champion.UpdatedAt = time.Now()

	if err := s.championRepo.Update(ctx, champion); err != nil {
		return nil, err
	}
	return champion, nil
}

func (s *CatalogService) DeleteChampion(ctx context.Context, id uint) error {
	return s.championRepo.Delete(ctx, id)
}

type CreateSkinInput struct {
	ChampionID          uint
	Name                string
	Description         string
	ImageURL            string
	UnlockCost          *int
	IsUnlockedByDefault bool
}

func (s *CatalogService) CreateSkin(ctx context.Context, input CreateSkinInput) (*domain.Skin, error) {
	if _, err := s.championRepo.GetByID(ctx, input.ChampionID); err != nil {
		return nil, err
	}

	cost := s.cfg.DefaultSkinCost
	if input.UnlockCost != nil {
		cost = *input.UnlockCost
	}
	if cost < 0 {
		return nil, fmt.Errorf("unlock cost must be non-negative, got %d", cost)
	}

	skin := &domain.Skin{
		ChampionID:          input.ChampionID,
		Name:                input.Name,
		Description:         input.Description,
		ImageURL:            input.ImageURL,
		UnlockCost:          cost,
		IsUnlockedByDefault: input.IsUnlockedByDefault,
		CreatedAt:           time.Now(),
	}
	if err := s.skinRepo.Create(ctx, skin); err != nil {
		return nil, err
	}
	return skin, nil
}

type UpdateSkinInput struct {
	Name                *string
	Description         *string
	ImageURL            *string
	UnlockCost          *int
	IsUnlockedByDefault *bool
}

func (s *CatalogService) UpdateSkin(ctx context.Context, id uint, input UpdateSkinInput) (*domain.Skin, error) {
	skin, err := s.skinRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		skin.Name = *input.Name
	}
	if input.Description != nil {
		skin.Description = *input.Description
	}
	if input.ImageURL != nil {
		skin.ImageURL = *input.ImageURL
	}
	if input.UnlockCost != nil {
		if *input.UnlockCost < 0 {
			return nil, fmt.Errorf("unlock cost must be non-negative, got %d", *input.UnlockCost)
		}
		skin.UnlockCost = *input.UnlockCost
	}
	if input.IsUnlockedByDefault != nil {
		skin.IsUnlockedByDefault = *input.IsUnlockedByDefault
	}

	if err := s.skinRepo.Update(ctx, skin); err != nil {
		return nil, err
	}
	return skin, nil
}

func (s *CatalogService) DeleteSkin(ctx context.Context, id uint) error {
	return s.skinRepo.Delete(ctx, id)
}

type DataDragonVersionResponse []string

type DataDragonChampionsResponse struct {
	Type    string                        `json:"type"`
	Format  string                        `json:"format"`
	Version string                        `json:"version"`
	Data    map[string]DataDragonChampion `json:"data"`
}

type DataDragonChampion struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Title string   `json:"title"`
	Blurb string   `json:"blurb"`
	Tags  []string `json:"tags"`
	Info  struct {
		Attack     int `json:"attack"`
		Defense    int `json:"defense"`
		Magic      int `json:"magic"`
		Difficulty int `json:"difficulty"`
	} `json:"info"`
	Image struct {
		Full string `json:"full"`
	} `json:"image"`
}

// SyncFromDataDragon refreshes champion metadata from Riot's static
// data CDN. Existing rows keep their unlock cost and default flag; new
// rows get the configured default cost.
func (s *CatalogService) SyncFromDataDragon(ctx context.Context) (int, string, error) {
	version, err := s.getLatestVersion()
	if err != nil {
		return 0, "", fmt.Errorf("failed to get latest version: %w", err)
	}

	championsURL := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", dataDragonBaseURL, version)
	resp, err := s.httpClient.Get(championsURL)
	if err != nil {
		return 0, "", fmt.Errorf("failed to fetch champions: %w", err)
	}
	defer resp.Body.Close()

	var championsResp DataDragonChampionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&championsResp); err != nil {
		return 0, "", fmt.Errorf("failed to decode champions: %w", err)
	}

	champions := make([]*domain.Champion, 0, len(championsResp.Data))
	for _, c := range championsResp.Data {
		statsJSON, _ := json.Marshal(c.Info)
		role := ""
		if len(c.Tags) > 0 {
			role = c.Tags[0]
		}
		champion := &domain.Champion{
			Name:        c.Name,
			Title:       c.Title,
			Role:        role,
			Description: c.Blurb,
			ImageURL:    fmt.Sprintf("%s/cdn/%s/img/champion/%s", dataDragonBaseURL, version, c.Image.Full),
			Stats:       statsJSON,
			UnlockCost:  s.cfg.DefaultChampionCost,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		champions = append(champions, champion)
	}

	if err := s.championRepo.UpsertMany(ctx, champions); err != nil {
		return 0, "", fmt.Errorf("failed to upsert champions: %w", err)
	}

	return len(champions), version, nil
}

func (s *CatalogService) getLatestVersion() (string, error) {
	if s.cfg.DataDragonVersion != "" {
		return s.cfg.DataDragonVersion, nil
	}

	resp, err := s.httpClient.Get(dataDragonBaseURL + "/api/versions.json")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var versions DataDragonVersionResponse
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return "", err
	}

	if len(versions) == 0 {
		return "", fmt.Errorf("no versions available")
	}

	return versions[0], nil
}
