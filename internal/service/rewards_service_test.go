package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/repository/postgres"
	"github.com/akis/champion-vault/internal/service"
	"github.com/akis/champion-vault/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardsService_ClaimDailyBonus(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	rewards := service.NewRewardsService(repos.DailyBonus, repos.Unlock, repos.Ledger, cfg)
	ctx := context.Background()

	day := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rewards.SetNow(func() time.Time { return day })

	user, _ := testutil.NewUserBuilder().WithPoints(100).Build(t, testDB.DB)

	result, err := rewards.ClaimDailyBonus(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, cfg.DailyBonusPoints, result.PointsEarned)
	assert.Equal(t, 110, result.TotalPoints)

	// Same calendar day, even hours later.
	rewards.SetNow(func() time.Time { return day.Add(10 * time.Hour) })
	_, err = rewards.ClaimDailyBonus(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrBonusAlreadyClaimed)
	testutil.AssertBalance(t, testDB.DB, user.ID, 110)

	// Midnight rollover opens a fresh claim.
	rewards.SetNow(func() time.Time { return day.AddDate(0, 0, 1) })
	result, err = rewards.ClaimDailyBonus(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, result.TotalPoints)
}

func TestRewardsService_TrackView(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	rewards := service.NewRewardsService(repos.DailyBonus, repos.Unlock, repos.Ledger, cfg)
	ctx := context.Background()

	day := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rewards.SetNow(func() time.Time { return day })

	user, _ := testutil.NewUserBuilder().WithPoints(100).Build(t, testDB.DB)
	first := testutil.NewChampionBuilder().Build(t, testDB.DB)
	second := testutil.NewChampionBuilder().Build(t, testDB.DB)

	result, err := rewards.TrackView(ctx, user.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, cfg.ViewRewardPoints, result.PointsEarned)
	assert.Equal(t, 102, result.TotalPoints)

	// Repeat view of the same champion earns nothing.
	result, err = rewards.TrackView(ctx, user.ID, first.ID)
	require.NoError(t, err)
	assert.Zero(t, result.PointsEarned)
	assert.Equal(t, 102, result.TotalPoints)

	// A different champion is a separate reward.
	result, err = rewards.TrackView(ctx, user.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, cfg.ViewRewardPoints, result.PointsEarned)

	// Next day the same champion rewards again.
	rewards.SetNow(func() time.Time { return day.AddDate(0, 0, 1) })
	result, err = rewards.TrackView(ctx, user.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, cfg.ViewRewardPoints, result.PointsEarned)
	assert.Equal(t, 106, result.TotalPoints)
}

func TestRewardsService_TrackComment(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	cfg.CommentRewardDailyCap = 2
	rewards := service.NewRewardsService(repos.DailyBonus, repos.Unlock, repos.Ledger, cfg)
	ctx := context.Background()

	day := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rewards.SetNow(func() time.Time { return day })

	user, _ := testutil.NewUserBuilder().WithPoints(0).Build(t, testDB.DB)

	for i := 0; i < 2; i++ {
		result, err := rewards.TrackComment(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, cfg.CommentRewardPoints, result.PointsEarned)
	}

	// Capped for the rest of the day.
	result, err := rewards.TrackComment(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, result.PointsEarned)
	assert.Equal(t, 10, result.TotalPoints)

	// The cap resets with the day.
	rewards.SetNow(func() time.Time { return day.AddDate(0, 0, 1) })
	result, err = rewards.TrackComment(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, cfg.CommentRewardPoints, result.PointsEarned)
}

func TestRewardsService_TrackComment_Uncapped(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	cfg.CommentRewardDailyCap = 0
	rewards := service.NewRewardsService(repos.DailyBonus, repos.Unlock, repos.Ledger, cfg)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithPoints(0).Build(t, testDB.DB)

	for i := 0; i < 15; i++ {
		result, err := rewards.TrackComment(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, cfg.CommentRewardPoints, result.PointsEarned)
	}
	testutil.AssertBalance(t, testDB.DB, user.ID, 75)
}

func TestRewardsService_Progress(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig())
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithPoints(100).Build(t, testDB.DB)
	champion := testutil.NewChampionBuilder().WithUnlockCost(30).Build(t, testDB.DB)
	testutil.NewSkinBuilder(champion.ID).WithName("Classic").Build(t, testDB.DB)
	skin := testutil.NewSkinBuilder(champion.ID).WithName("Premium").WithUnlockCost(10).Build(t, testDB.DB)

	_, err := services.Unlock.Unlock(ctx, user.ID, domain.ItemTypeChampion, champion.ID)
	require.NoError(t, err)
	_, err = services.Unlock.Unlock(ctx, user.ID, domain.ItemTypeSkin, skin.ID)
	require.NoError(t, err)

	progress, err := services.Rewards.Progress(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 60, progress.Points)
	assert.Equal(t, int64(1), progress.UnlockedChampionsCount)
	assert.Equal(t, int64(1), progress.UnlockedSkinsCount)
	assert.Equal(t, []uint{champion.ID}, progress.UnlockedChampionIDs)
	assert.Equal(t, []uint{skin.ID}, progress.UnlockedSkinIDs)
}
