package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/repository"
	"github.com/akis/champion-vault/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminHandler is the content-management surface: catalog CRUD, the
// Data Dragon sync, and manual point grants.
type AdminHandler struct {
	catalogService *service.CatalogService
	ledger         repository.LedgerRepository
}

func NewAdminHandler(catalogService *service.CatalogService, ledger repository.LedgerRepository) *AdminHandler {
	return &AdminHandler{
		catalogService: catalogService,
		ledger:         ledger,
	}
}

type ChampionRequest struct {
	Name                string          `json:"name"`
	Title               string          `json:"title"`
	Role                string          `json:"role"`
	Region              string          `json:"region"`
	Description         string          `json:"description"`
	ImageURL            string          `json:"imageUrl"`
	Stats               json.RawMessage `json:"stats"`
	UnlockCost          *int            `json:"unlockCost"`
	IsUnlockedByDefault bool            `json:"isUnlockedByDefault"`
}

func (h *AdminHandler) CreateChampion(w http.ResponseWriter, r *http.Request) {
	var req ChampionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Champion name is required")
		return
	}

	champion, err := h.catalogService.CreateChampion(r.Context(), service.CreateChampionInput{
		Name:                req.Name,
		Title:               req.Title,
		Role:                req.Role,
		Region:              req.Region,
		Description:         req.Description,
		ImageURL:            req.ImageURL,
		Stats:               req.Stats,
		UnlockCost:          req.UnlockCost,
		IsUnlockedByDefault: req.IsUnlockedByDefault,
	})
	if err != nil {
		log.Printf("ERROR [admin.CreateChampion]: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create champion")
		return
	}

	writeJSON(w, http.StatusCreated, champion)
}

type UpdateChampionRequest struct {
	Title               *string `json:"title"`
	Role                *string `json:"role"`
	Region              *string `json:"region"`
	Description         *string `json:"description"`
	ImageURL            *string `json:"imageUrl"`
	UnlockCost          *int    `json:"unlockCost"`
	IsUnlockedByDefault *bool   `json:"isUnlockedByDefault"`
}

func (h *AdminHandler) UpdateChampion(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid champion ID")
		return
	}

	var req UpdateChampionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	champion, err := h.catalogService.UpdateChampion(r.Context(), id, service.UpdateChampionInput{
		Title:               req.Title,
		Role:                req.Role,
		Region:              req.Region,
		Description:         req.Description,
		ImageURL:            req.ImageURL,
		UnlockCost:          req.UnlockCost,
		IsUnlockedByDefault: req.IsUnlockedByDefault,
	})
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Champion not found")
			return
		}
		log.Printf("ERROR [admin.UpdateChampion] championID=%d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update champion")
		return
	}

	writeJSON(w, http.StatusOK, champion)
}

func (h *AdminHandler) DeleteChampion(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid champion ID")
		return
	}

	if err := h.catalogService.DeleteChampion(r.Context(), id); err != nil {
		log.Printf("ERROR [admin.DeleteChampion] championID=%d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete champion")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type SkinRequest struct {
	ChampionID          uint   `json:"championId"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	ImageURL            string `json:"imageUrl"`
	UnlockCost          *int   `json:"unlockCost"`
	IsUnlockedByDefault bool   `json:"isUnlockedByDefault"`
}

func (h *AdminHandler) CreateSkin(w http.ResponseWriter, r *http.Request) {
	var req SkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.ChampionID == 0 {
		writeError(w, http.StatusBadRequest, "Skin name and champion ID are required")
		return
	}

	skin, err := h.catalogService.CreateSkin(r.Context(), service.CreateSkinInput{
		ChampionID:          req.ChampionID,
		Name:                req.Name,
		Description:         req.Description,
		ImageURL:            req.ImageURL,
		UnlockCost:          req.UnlockCost,
		IsUnlockedByDefault: req.IsUnlockedByDefault,
	})
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Champion not found")
			return
		}
		log.Printf("ERROR [admin.CreateSkin]: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create skin")
		return
	}

	writeJSON(w, http.StatusCreated, skin)
}

type UpdateSkinRequest struct {
	Name                *string `json:"name"`
	Description         *string `json:"description"`
	ImageURL            *string `json:"imageUrl"`
	UnlockCost          *int    `json:"unlockCost"`
	IsUnlockedByDefault *bool   `json:"isUnlockedByDefault"`
}

func (h *AdminHandler) UpdateSkin(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid skin ID")
		return
	}

	var req UpdateSkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	skin, err := h.catalogService.UpdateSkin(r.Context(), id, service.UpdateSkinInput{
		Name:                req.Name,
		Description:         req.Description,
		ImageURL:            req.ImageURL,
		UnlockCost:          req.UnlockCost,
		IsUnlockedByDefault: req.IsUnlockedByDefault,
	})
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Skin not found")
			return
		}
		log.Printf("ERROR [admin.UpdateSkin] skinID=%d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update skin")
		return
	}

	writeJSON(w, http.StatusOK, skin)
}

func (h *AdminHandler) DeleteSkin(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid skin ID")
		return
	}

	if err := h.catalogService.DeleteSkin(r.Context(), id); err != nil {
		log.Printf("ERROR [admin.DeleteSkin] skinID=%d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete skin")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type SyncResponse struct {
	Synced  int    `json:"synced"`
	Version string `json:"version"`
}

func (h *AdminHandler) SyncChampions(w http.ResponseWriter, r *http.Request) {
	count, version, err := h.catalogService.SyncFromDataDragon(r.Context())
	if err != nil {
		log.Printf("ERROR [admin.SyncChampions]: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to sync champions")
		return
	}

	writeJSON(w, http.StatusOK, SyncResponse{Synced: count, Version: version})
}

type GrantPointsRequest struct {
	Amount int `json:"amount"`
}

// GrantPoints credits a user's balance directly. Kept for admin and
// testing use, matching the rest of the economy's credit path.
func (h *AdminHandler) GrantPoints(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req GrantPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount <= 0 || req.Amount > 1000 {
		writeError(w, http.StatusBadRequest, "Amount must be between 1 and 1000")
		return
	}

	if err := h.ledger.Credit(r.Context(), userID, req.Amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR [admin.GrantPoints] userID=%s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to grant points")
		return
	}

	balance, err := h.ledger.Balance(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [admin.GrantPoints] balance userID=%s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to grant points")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"points":  balance,
	})
}
