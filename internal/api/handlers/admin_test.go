package handlers_test

import (
	"net/http"
	"testing"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminToken(t *testing.T, ts *testutil.TestServer) string {
	t.Helper()
	admin, _ := testutil.NewUserBuilder().
		WithRole(domain.RoleAdmin).
		WithPassword("adminpass123").
		Build(t, ts.DB.DB)
	return testutil.Authenticate(t, ts, admin.DisplayName, "adminpass123")
}

func TestAdminHandler_RequiresAdminRole(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, userToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{"regular user forbidden", userToken, http.StatusForbidden},
		{"guest unauthorized", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/admin/champions"),
				map[string]string{"name": "Aatrox"}, tt.token)
			resp, err := (&http.Client{}).Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAdminHandler_ChampionCRUD(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := adminToken(t, ts)
	client := &http.Client{}

	var championID uint

	t.Run("create", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/admin/champions"),
			map[string]interface{}{
				"name":  "Aatrox",
				"title": "the Darkin Blade",
				"role":  "Fighter",
			}, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result struct {
			ID         uint   `json:"id"`
			Name       string `json:"name"`
			UnlockCost int    `json:"unlockCost"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "Aatrox", result.Name)
		assert.Equal(t, ts.Config.DefaultChampionCost, result.UnlockCost)
		championID = result.ID
	})

	t.Run("update", func(t *testing.T) {
		cost := 60
		req := testutil.CreateAuthenticatedRequest(t, "PUT", ts.APIURL("/admin/champions/"+itoa(championID)),
			map[string]interface{}{"unlockCost": cost}, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			UnlockCost int    `json:"unlockCost"`
			Name       string `json:"name"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, 60, result.UnlockCost)
		assert.Equal(t, "Aatrox", result.Name)
	})

	t.Run("update missing champion", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "PUT", ts.APIURL("/admin/champions/99999"),
			map[string]interface{}{"title": "nobody"}, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "DELETE", ts.APIURL("/admin/champions/"+itoa(championID)), nil, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		getResp, err := http.Get(ts.APIURL("/champions/" + itoa(championID)))
		require.NoError(t, err)
		getResp.Body.Close()
		assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	})
}

func TestAdminHandler_SkinCRUD(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := adminToken(t, ts)
	client := &http.Client{}

	champion := testutil.NewChampionBuilder().Build(t, ts.DB.DB)

	t.Run("create with defaulted cost", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/admin/skins"),
			map[string]interface{}{
				"championId": champion.ID,
				"name":       "Classic",
			}, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result struct {
			UnlockCost int `json:"unlockCost"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, ts.Config.DefaultSkinCost, result.UnlockCost)
	})

	t.Run("create under missing champion", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/admin/skins"),
			map[string]interface{}{
				"championId": 99999,
				"name":       "Orphan",
			}, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/admin/skins"),
			map[string]interface{}{"championId": champion.ID}, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAdminHandler_GrantPoints(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := adminToken(t, ts)
	client := &http.Client{}

	user, _ := testutil.NewUserBuilder().WithPoints(10).Build(t, ts.DB.DB)

	t.Run("successful grant", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/admin/users/"+user.ID.String()+"/points"),
			map[string]int{"amount": 50}, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Success bool `json:"success"`
			Points  int  `json:"points"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.True(t, result.Success)
		assert.Equal(t, 60, result.Points)
		testutil.AssertBalance(t, ts.DB.DB, user.ID, 60)
	})

	t.Run("amount out of range", func(t *testing.T) {
		for _, amount := range []int{0, -5, 1001} {
			req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/admin/users/"+user.ID.String()+"/points"),
				map[string]int{"amount": amount}, token)
			resp, err := client.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/admin/users/"+uuid.NewString()+"/points"),
			map[string]int{"amount": 50}, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid user id", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/admin/users/not-a-uuid/points"),
			map[string]int{"amount": 50}, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
