package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	displayName string
	password    string
	role        domain.UserRole
	points      int
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		displayName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
		role:        domain.RoleUser,
		points:      100,
	}
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRole sets the user role
func (b *UserBuilder) WithRole(role domain.UserRole) *UserBuilder {
	b.role = role
	return b
}

// WithPoints sets the starting points balance
func (b *UserBuilder) WithPoints(points int) *UserBuilder {
	b.points = points
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		Points:       b.points,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Role        string `json:"role"`
		Points      int    `json:"points"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via API and returns the user and access token.
// The user is created with the server's configured starting grant, not the
// builder's points; use Build plus a direct login when a custom balance matters.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:          userID,
		DisplayName: authResp.User.DisplayName,
		Role:        domain.UserRole(authResp.User.Role),
		Points:      authResp.User.Points,
	}

	return user, authResp.AccessToken
}

// Authenticate logs an existing user in via the API and returns the access token
func Authenticate(t *testing.T, ts *TestServer, displayName, password string) string {
	t.Helper()

	reqBody := map[string]string{
		"displayName": displayName,
		"password":    password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to login user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return authResp.AccessToken
}

// ChampionBuilder creates test champions
type ChampionBuilder struct {
	name              string
	title             string
	role              string
	region            string
	unlockCost        int
	unlockedByDefault bool
	stats             map[string]int
}

// NewChampionBuilder creates a new ChampionBuilder with default values
func NewChampionBuilder() *ChampionBuilder {
	return &ChampionBuilder{
		name:       fmt.Sprintf("Champion_%s", uuid.New().String()[:8]),
		title:      "the Test Champion",
		role:       "Fighter",
		region:     "Runeterra",
		unlockCost: 30,
		stats:      map[string]int{"attack": 5, "defense": 5, "magic": 5},
	}
}

// WithName sets the champion name
func (b *ChampionBuilder) WithName(name string) *ChampionBuilder {
	b.name = name
	return b
}

// WithTitle sets the champion title
func (b *ChampionBuilder) WithTitle(title string) *ChampionBuilder {
	b.title = title
	return b
}

// WithRole sets the champion role
func (b *ChampionBuilder) WithRole(role string) *ChampionBuilder {
	b.role = role
	return b
}

// WithUnlockCost sets the unlock cost
func (b *ChampionBuilder) WithUnlockCost(cost int) *ChampionBuilder {
	b.unlockCost = cost
	return b
}

// WithDefaultUnlocked marks the champion as available without purchase
func (b *ChampionBuilder) WithDefaultUnlocked() *ChampionBuilder {
	b.unlockedByDefault = true
	return b
}

// Build creates the champion in the database
func (b *ChampionBuilder) Build(t *testing.T, db *gorm.DB) *domain.Champion {
	t.Helper()

	statsJSON, _ := json.Marshal(b.stats)
	champion := &domain.Champion{
		Name:                b.name,
		Title:               b.title,
		Role:                b.role,
		Region:              b.region,
		ImageURL:            fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/14.1.1/img/champion/%s.png", b.name),
		Stats:               datatypes.JSON(statsJSON),
		UnlockCost:          b.unlockCost,
		IsUnlockedByDefault: b.unlockedByDefault,
	}

	if err := db.Create(champion).Error; err != nil {
		t.Fatalf("failed to create champion: %v", err)
	}

	return champion
}

// SkinBuilder creates test skins
type SkinBuilder struct {
	championID        uint
	name              string
	unlockCost        int
	unlockedByDefault bool
}

// NewSkinBuilder creates a new SkinBuilder for the given champion
func NewSkinBuilder(championID uint) *SkinBuilder {
	return &SkinBuilder{
		championID: championID,
		name:       fmt.Sprintf("Skin_%s", uuid.New().String()[:8]),
		unlockCost: 10,
	}
}

// WithName sets the skin name
func (b *SkinBuilder) WithName(name string) *SkinBuilder {
	b.name = name
	return b
}

// WithUnlockCost sets the unlock cost
func (b *SkinBuilder) WithUnlockCost(cost int) *SkinBuilder {
	b.unlockCost = cost
	return b
}

// WithDefaultUnlocked marks the skin as explicitly free
func (b *SkinBuilder) WithDefaultUnlocked() *SkinBuilder {
	b.unlockedByDefault = true
	return b
}

// Build creates the skin in the database
func (b *SkinBuilder) Build(t *testing.T, db *gorm.DB) *domain.Skin {
	t.Helper()

	skin := &domain.Skin{
		ChampionID:          b.championID,
		Name:                b.name,
		ImageURL:            fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/14.1.1/img/skin/%s.png", b.name),
		UnlockCost:          b.unlockCost,
		IsUnlockedByDefault: b.unlockedByDefault,
	}

	if err := db.Create(skin).Error; err != nil {
		t.Fatalf("failed to create skin: %v", err)
	}

	return skin
}

// SeedChampions creates N test champions in the database
func SeedChampions(t *testing.T, db *gorm.DB, count int) []*domain.Champion {
	t.Helper()

	champions := make([]*domain.Champion, count)
	for i := 0; i < count; i++ {
		champions[i] = NewChampionBuilder().
			WithName(fmt.Sprintf("TestChampion%d_%s", i, uuid.New().String()[:6])).
			Build(t, db)
	}
	return champions
}

// SeedRealChampions creates champions with real LoL champion names for realistic testing
func SeedRealChampions(t *testing.T, db *gorm.DB) []*domain.Champion {
	t.Helper()

	championNames := []string{
		"Aatrox", "Ahri", "Akali", "Alistar", "Amumu",
		"Anivia", "Annie", "Ashe", "Azir", "Bard",
	}

	champions := make([]*domain.Champion, len(championNames))
	for i, name := range championNames {
		champions[i] = NewChampionBuilder().
			WithName(name).
			Build(t, db)
	}
	return champions
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
