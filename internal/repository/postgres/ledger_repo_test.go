package postgres_test

import (
	"context"
	"sync"
	"testing"

	"github.com/akis/champion-vault/internal/repository/postgres"
	"github.com/akis/champion-vault/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository_Credit(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithPoints(50).
		Build(t, testDB.DB)

	tests := []struct {
		name        string
		userID      uuid.UUID
		amount      int
		wantErr     bool
		wantBalance int
	}{
		{
			name:        "successful credit",
			userID:      user.ID,
			amount:      25,
			wantBalance: 75,
		},
		{
			name:    "zero amount rejected",
			userID:  user.ID,
			amount:  0,
			wantErr: true,
		},
		{
			name:    "negative amount rejected",
			userID:  user.ID,
			amount:  -5,
			wantErr: true,
		},
		{
			name:    "non-existent user",
			userID:  uuid.New(),
			amount:  10,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Credit(ctx, tt.userID, tt.amount)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			balance, err := repo.Balance(ctx, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, balance)
		})
	}
}

func TestLedgerRepository_Debit(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	t.Run("sufficient balance", func(t *testing.T) {
		user, _ := testutil.NewUserBuilder().WithPoints(100).Build(t, testDB.DB)

		ok, err := repo.Debit(ctx, user.ID, 30)
		require.NoError(t, err)
		assert.True(t, ok)
		testutil.AssertBalance(t, testDB.DB, user.ID, 70)
	})

	t.Run("insufficient balance leaves points untouched", func(t *testing.T) {
		user, _ := testutil.NewUserBuilder().WithPoints(5).Build(t, testDB.DB)

		ok, err := repo.Debit(ctx, user.ID, 30)
		require.NoError(t, err)
		assert.False(t, ok)
		testutil.AssertBalance(t, testDB.DB, user.ID, 5)
	})

	t.Run("exact balance", func(t *testing.T) {
		user, _ := testutil.NewUserBuilder().WithPoints(30).Build(t, testDB.DB)

		ok, err := repo.Debit(ctx, user.ID, 30)
		require.NoError(t, err)
		assert.True(t, ok)
		testutil.AssertBalance(t, testDB.DB, user.ID, 0)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		user, _ := testutil.NewUserBuilder().WithPoints(100).Build(t, testDB.DB)

		_, err := repo.Debit(ctx, user.ID, 0)
		assert.Error(t, err)
		_, err = repo.Debit(ctx, user.ID, -10)
		assert.Error(t, err)
	})

	t.Run("non-existent user", func(t *testing.T) {
		ok, err := repo.Debit(ctx, uuid.New(), 10)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLedgerRepository_Debit_Concurrent(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	// Balance covers exactly one of the concurrent debits.
	user, _ := testutil.NewUserBuilder().WithPoints(30).Build(t, testDB.DB)

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Debit(ctx, user.ID, 30)
			if err != nil {
				t.Errorf("debit failed: %v", err)
				return
			}
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for ok := range results {
		if ok {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one debit should win")
	testutil.AssertBalance(t, testDB.DB, user.ID, 0)
}

func TestLedgerRepository_Balance(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithPoints(42).Build(t, testDB.DB)

	balance, err := repo.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, balance)

	_, err = repo.Balance(ctx, uuid.New())
	assert.Error(t, err)
}

func TestLedgerRepository_CreditThenDebit(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithPoints(0).Build(t, testDB.DB)

	require.NoError(t, repo.Credit(ctx, user.ID, 100))

	ok, err := repo.Debit(ctx, user.ID, 60)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Debit(ctx, user.ID, 60)
	require.NoError(t, err)
	assert.False(t, ok, "second debit exceeds the remaining balance")

	testutil.AssertBalance(t, testDB.DB, user.ID, 40)
}
