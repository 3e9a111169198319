package service_test

import (
	"context"
	"testing"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/repository/postgres"
	"github.com/akis/champion-vault/internal/service"
	"github.com/akis/champion-vault/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     service.RegisterInput
		setup     func()
		wantErr   error
		checkUser bool
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				DisplayName: "newuser",
				Password:    "password123",
			},
			checkUser: true,
		},
		{
			name: "duplicate display name",
			input: service.RegisterInput{
				DisplayName: "existinguser",
				Password:    "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithDisplayName("existinguser").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrDisplayNameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkUser {
				assert.NotNil(t, result.User)
				assert.Equal(t, tt.input.DisplayName, result.User.DisplayName)
				assert.Equal(t, domain.RoleUser, result.User.Role)
				assert.Equal(t, cfg.StartingPoints, result.User.Points, "registration grants the starting balance")
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)

				testutil.AssertBalance(t, testDB.DB, result.User.ID, cfg.StartingPoints)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithDisplayName("loginuser").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name: "successful login",
			input: service.LoginInput{
				DisplayName: user.DisplayName,
				Password:    rawPassword,
			},
		},
		{
			name: "wrong password",
			input: service.LoginInput{
				DisplayName: user.DisplayName,
				Password:    "wrongpassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "unknown user",
			input: service.LoginInput{
				DisplayName: "nobody",
				Password:    "whatever",
			},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEmpty(t, result.AccessToken)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	result, err := authService.Register(ctx, service.RegisterInput{
		DisplayName: "tokenuser",
		Password:    "password123",
	})
	require.NoError(t, err)

	claims, err := authService.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), (*claims)["sub"])
	assert.Equal(t, string(domain.RoleUser), (*claims)["role"])

	_, err = authService.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	authService := service.NewAuthService(repos.User, repos.Session, testutil.TestConfig())
	ctx := context.Background()

	result, err := authService.Register(ctx, service.RegisterInput{
		DisplayName: "logoutuser",
		Password:    "password123",
	})
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, result.User.ID))

	_, err = repos.Session.GetByUserID(ctx, result.User.ID)
	assert.Error(t, err, "sessions are removed on logout")

	// Logging out an unknown user is a no-op.
	assert.NoError(t, authService.Logout(ctx, uuid.New()))
}
