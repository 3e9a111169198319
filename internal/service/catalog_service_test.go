package service_test

import (
	"context"
	"testing"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/repository/postgres"
	"github.com/akis/champion-vault/internal/service"
	"github.com/akis/champion-vault/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) (*service.CatalogService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewCatalogService(repos.Champion, repos.Skin, testutil.TestConfig()), testDB
}

func TestCatalogService_CreateChampion(t *testing.T) {
	catalog, _ := newCatalogService(t)
	ctx := context.Background()

	t.Run("defaults the unlock cost", func(t *testing.T) {
		champion, err := catalog.CreateChampion(ctx, service.CreateChampionInput{
			Name:  "Aatrox",
			Title: "the Darkin Blade",
			Role:  "Fighter",
		})
		require.NoError(t, err)
		assert.Equal(t, 30, champion.UnlockCost)
		assert.False(t, champion.IsUnlockedByDefault)
	})

	t.Run("explicit cost wins", func(t *testing.T) {
		cost := 75
		champion, err := catalog.CreateChampion(ctx, service.CreateChampionInput{
			Name:       "Ahri",
			UnlockCost: &cost,
		})
		require.NoError(t, err)
		assert.Equal(t, 75, champion.UnlockCost)
	})

	t.Run("negative cost rejected", func(t *testing.T) {
		cost := -1
		_, err := catalog.CreateChampion(ctx, service.CreateChampionInput{
			Name:       "Akali",
			UnlockCost: &cost,
		})
		assert.Error(t, err)
	})
}

func TestCatalogService_UpdateChampion(t *testing.T) {
	catalog, testDB := newCatalogService(t)
	ctx := context.Background()

	champion := testutil.NewChampionBuilder().WithName("Garen").WithUnlockCost(30).Build(t, testDB.DB)

	cost := 50
	flag := true
	updated, err := catalog.UpdateChampion(ctx, champion.ID, service.UpdateChampionInput{
		UnlockCost:          &cost,
		IsUnlockedByDefault: &flag,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.UnlockCost)
	assert.True(t, updated.IsUnlockedByDefault)
	assert.Equal(t, "Garen", updated.Name, "untouched fields survive")

	_, err = catalog.UpdateChampion(ctx, 99999, service.UpdateChampionInput{})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestCatalogService_CreateSkin(t *testing.T) {
	catalog, testDB := newCatalogService(t)
	ctx := context.Background()

	champion := testutil.NewChampionBuilder().Build(t, testDB.DB)

	t.Run("defaults the unlock cost", func(t *testing.T) {
		skin, err := catalog.CreateSkin(ctx, service.CreateSkinInput{
			ChampionID: champion.ID,
			Name:       "Classic",
		})
		require.NoError(t, err)
		assert.Equal(t, 10, skin.UnlockCost)
	})

	t.Run("unknown champion rejected", func(t *testing.T) {
		_, err := catalog.CreateSkin(ctx, service.CreateSkinInput{
			ChampionID: 99999,
			Name:       "Orphan",
		})
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

func TestCatalogService_IsSkinDefaultUnlocked(t *testing.T) {
	catalog, testDB := newCatalogService(t)
	ctx := context.Background()

	champion := testutil.NewChampionBuilder().Build(t, testDB.DB)
	first := testutil.NewSkinBuilder(champion.ID).WithName("Classic").Build(t, testDB.DB)
	second := testutil.NewSkinBuilder(champion.ID).WithName("Premium").Build(t, testDB.DB)
	flagged := testutil.NewSkinBuilder(champion.ID).WithName("Event").WithDefaultUnlocked().Build(t, testDB.DB)

	free, err := catalog.IsSkinDefaultUnlocked(ctx, first)
	require.NoError(t, err)
	assert.True(t, free, "lowest-ID skin is the free base look")

	free, err = catalog.IsSkinDefaultUnlocked(ctx, second)
	require.NoError(t, err)
	assert.False(t, free)

	free, err = catalog.IsSkinDefaultUnlocked(ctx, flagged)
	require.NoError(t, err)
	assert.True(t, free, "explicit flag wins regardless of position")
}

func TestCatalogService_GetChampionSkins(t *testing.T) {
	catalog, testDB := newCatalogService(t)
	ctx := context.Background()

	champion := testutil.NewChampionBuilder().Build(t, testDB.DB)
	testutil.NewSkinBuilder(champion.ID).Build(t, testDB.DB)
	testutil.NewSkinBuilder(champion.ID).Build(t, testDB.DB)

	skins, err := catalog.GetChampionSkins(ctx, champion.ID)
	require.NoError(t, err)
	assert.Len(t, skins, 2)

	_, err = catalog.GetChampionSkins(ctx, 99999)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestCatalogService_DeleteChampion(t *testing.T) {
	catalog, testDB := newCatalogService(t)
	ctx := context.Background()

	champion := testutil.NewChampionBuilder().Build(t, testDB.DB)

	require.NoError(t, catalog.DeleteChampion(ctx, champion.ID))

	_, err := catalog.GetChampion(ctx, champion.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
