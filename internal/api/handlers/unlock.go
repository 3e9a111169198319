package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/akis/champion-vault/internal/api/middleware"
	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/service"
)

type UnlockHandler struct {
	unlockService *service.UnlockService
}

func NewUnlockHandler(unlockService *service.UnlockService) *UnlockHandler {
	return &UnlockHandler{unlockService: unlockService}
}

type UnlockResponse struct {
	Success         bool            `json:"success"`
	Message         string          `json:"message"`
	ItemType        domain.ItemType `json:"itemType"`
	ItemID          uint            `json:"itemId"`
	ItemName        string          `json:"itemName"`
	CostPaid        int             `json:"costPaid"`
	RemainingPoints int             `json:"remainingPoints"`
}

func (h *UnlockHandler) UnlockChampion(w http.ResponseWriter, r *http.Request) {
	h.unlock(w, r, domain.ItemTypeChampion)
}

func (h *UnlockHandler) UnlockSkin(w http.ResponseWriter, r *http.Request) {
	h.unlock(w, r, domain.ItemTypeSkin)
}

func (h *UnlockHandler) unlock(w http.ResponseWriter, r *http.Request, itemType domain.ItemType) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	itemID, ok := uintParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	result, err := h.unlockService.Unlock(r.Context(), userID, itemType, itemID)
	if err != nil {
		h.writeUnlockError(w, itemType, itemID, err)
		return
	}

	writeJSON(w, http.StatusOK, UnlockResponse{
		Success:         true,
		Message:         "Successfully unlocked!",
		ItemType:        result.ItemType,
		ItemID:          result.ItemID,
		ItemName:        result.ItemName,
		CostPaid:        result.CostPaid,
		RemainingPoints: result.RemainingPoints,
	})
}

// writeUnlockError maps business outcomes to 4xx responses. Anything
// unexpected is a 500; the purchase transaction has already rolled
// back by the time it surfaces here.
func (h *UnlockHandler) writeUnlockError(w http.ResponseWriter, itemType domain.ItemType, itemID uint, err error) {
	var insufficient *domain.InsufficientPointsError

	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "Item not found")
	case errors.Is(err, domain.ErrAlreadyAvailable):
		writeError(w, http.StatusBadRequest, "This item is already unlocked by default")
	case errors.Is(err, domain.ErrAlreadyUnlocked):
		writeError(w, http.StatusBadRequest, "You have already unlocked this item")
	case errors.Is(err, domain.ErrChampionLocked):
		writeError(w, http.StatusBadRequest, "You must unlock the champion first before unlocking their skins")
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusBadRequest, errorBody{
			Success:  false,
			Message:  "Insufficient points",
			Required: insufficient.Required,
			Current:  insufficient.Current,
		})
	default:
		log.Printf("ERROR [unlock.Unlock] itemType=%s itemID=%d: %v", itemType, itemID, err)
		writeError(w, http.StatusInternalServerError, "Failed to unlock item")
	}
}
