package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akis/champion-vault/internal/config"
	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/repository"
	"github.com/google/uuid"
)

// RewardsService hands out the time-gated and activity-gated point
// grants: the daily login bonus, content-view rewards, and comment
// rewards.
type RewardsService struct {
	dailyBonusRepo repository.DailyBonusRepository
	unlockRepo     repository.UnlockRepository
	ledger         repository.LedgerRepository
	cfg            *config.Config

	// now is swappable so tests can cross a day boundary.
	now func() time.Time

	mu       sync.Mutex
	awardDay string
	// awarded holds day-scoped idempotency keys. The whole map is
	// dropped when the day rolls over, so entries expire without any
	// background sweep.
	awarded map[string]int
}

func NewRewardsService(dailyBonusRepo repository.DailyBonusRepository, unlockRepo repository.UnlockRepository, ledger repository.LedgerRepository, cfg *config.Config) *RewardsService {
	return &RewardsService{
		dailyBonusRepo: dailyBonusRepo,
		unlockRepo:     unlockRepo,
		ledger:         ledger,
		cfg:            cfg,
		now:            time.Now,
		awarded:        map[string]int{},
	}
}

func (s *RewardsService) today() string {
	return s.now().Format("2006-01-02")
}

// ClaimDailyBonus grants the daily bonus once per calendar date. The
// date stamp and the credit commit together, so a double claim can
// never double credit.
func (s *RewardsService) ClaimDailyBonus(ctx context.Context, userID uuid.UUID) (*domain.RewardResult, error) {
	claimed, err := s.dailyBonusRepo.Claim(ctx, userID, s.today(), s.cfg.DailyBonusPoints)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, domain.ErrBonusAlreadyClaimed
	}

	total, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.RewardResult{
		PointsEarned: s.cfg.DailyBonusPoints,
		TotalPoints:  total,
	}, nil
}

// consumeKey counts one use of a day-scoped idempotency key and
// reports whether it stayed within limit. limit <= 0 means unlimited.
func (s *RewardsService) consumeKey(key string, limit int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.today()
	if s.awardDay != day {
		s.awardDay = day
		s.awarded = map[string]int{}
	}

	if limit > 0 && s.awarded[key] >= limit {
		return false
	}
	s.awarded[key]++
	return true
}

// TrackView rewards viewing a champion, at most once per (user, item,
// calendar day).
func (s *RewardsService) TrackView(ctx context.Context, userID uuid.UUID, championID uint) (*domain.RewardResult, error) {
	key := fmt.Sprintf("view:%s:%d", userID, championID)
	earned := 0
	if s.consumeKey(key, 1) {
		if err := s.ledger.Credit(ctx, userID, s.cfg.ViewRewardPoints); err != nil {
			return nil, err
		}
		earned = s.cfg.ViewRewardPoints
	}

	total, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.RewardResult{PointsEarned: earned, TotalPoints: total}, nil
}

// TrackComment rewards a created comment, up to the configured number
// of rewarded comments per day (unlimited when the cap is zero).
func (s *RewardsService) TrackComment(ctx context.Context, userID uuid.UUID) (*domain.RewardResult, error) {
	key := fmt.Sprintf("comment:%s", userID)
	earned := 0
	if s.consumeKey(key, s.cfg.CommentRewardDailyCap) {
		if err := s.ledger.Credit(ctx, userID, s.cfg.CommentRewardPoints); err != nil {
			return nil, err
		}
		earned = s.cfg.CommentRewardPoints
	}

	total, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.RewardResult{PointsEarned: earned, TotalPoints: total}, nil
}

// Progress summarizes a user's economy state for the profile screen.
type Progress struct {
	Points                 int    `json:"points"`
	UnlockedChampionsCount int64  `json:"unlockedChampionsCount"`
	UnlockedSkinsCount     int64  `json:"unlockedSkinsCount"`
	UnlockedChampionIDs    []uint `json:"unlockedChampionIds"`
	UnlockedSkinIDs        []uint `json:"unlockedSkinIds"`
}

func (s *RewardsService) Progress(ctx context.Context, userID uuid.UUID) (*Progress, error) {
	points, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	championIDs, err := s.unlockRepo.ListUnlockedIDs(ctx, userID, domain.ItemTypeChampion)
	if err != nil {
		return nil, err
	}
	skinIDs, err := s.unlockRepo.ListUnlockedIDs(ctx, userID, domain.ItemTypeSkin)
	if err != nil {
		return nil, err
	}

	return &Progress{
		Points:                 points,
		UnlockedChampionsCount: int64(len(championIDs)),
		UnlockedSkinsCount:     int64(len(skinIDs)),
		UnlockedChampionIDs:    championIDs,
		UnlockedSkinIDs:        skinIDs,
	}, nil
}
