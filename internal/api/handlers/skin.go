package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/service"
)

type SkinHandler struct {
	catalogService    *service.CatalogService
	visibilityService *service.VisibilityService
}

func NewSkinHandler(catalogService *service.CatalogService, visibilityService *service.VisibilityService) *SkinHandler {
	return &SkinHandler{
		catalogService:    catalogService,
		visibilityService: visibilityService,
	}
}

type SkinsResponse struct {
	Skins []*service.SkinView `json:"skins"`
}

// GetChampionSkins lists a champion's skins for any actor. Locked
// skins are listed with their cost so the client can show the unlock
// price even when the champion itself is still locked.
func (h *SkinHandler) GetChampionSkins(w http.ResponseWriter, r *http.Request) {
	championID, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid champion ID", http.StatusBadRequest)
		return
	}

	champion, err := h.catalogService.GetChampion(r.Context(), championID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			http.Error(w, "Champion not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [skin.GetChampionSkins] championID=%d: %v", championID, err)
		http.Error(w, "Failed to get skins", http.StatusInternalServerError)
		return
	}

	skins, err := h.catalogService.GetChampionSkins(r.Context(), championID)
	if err != nil {
		log.Printf("ERROR [skin.GetChampionSkins] championID=%d: %v", championID, err)
		http.Error(w, "Failed to get skins", http.StatusInternalServerError)
		return
	}

	views, err := h.visibilityService.AnnotateSkins(r.Context(), actorFromContext(r), champion, skins)
	if err != nil {
		log.Printf("ERROR [skin.GetChampionSkins] annotate championID=%d: %v", championID, err)
		http.Error(w, "Failed to get skins", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, SkinsResponse{Skins: views})
}

type LockedSkinResponse struct {
	ID         uint   `json:"id"`
	ChampionID uint   `json:"championId"`
	Name       string `json:"name"`
	ImageURL   string `json:"imageUrl"`
	UnlockCost int    `json:"unlockCost"`
	IsLocked   bool   `json:"isLocked"`
	Message    string `json:"message"`
}

func (h *SkinHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid skin ID", http.StatusBadRequest)
		return
	}

	skin, err := h.catalogService.GetSkin(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			http.Error(w, "Skin not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [skin.Get] skinID=%d: %v", id, err)
		http.Error(w, "Failed to get skin", http.StatusInternalServerError)
		return
	}

	view, err := h.visibilityService.AnnotateSkin(r.Context(), actorFromContext(r), skin)
	if err != nil {
		log.Printf("ERROR [skin.Get] annotate skinID=%d: %v", id, err)
		http.Error(w, "Failed to get skin", http.StatusInternalServerError)
		return
	}

	if view.IsLocked {
		writeJSON(w, http.StatusOK, LockedSkinResponse{
			ID:         skin.ID,
			ChampionID: skin.ChampionID,
			Name:       skin.Name,
			ImageURL:   skin.ImageURL,
			UnlockCost: skin.UnlockCost,
			IsLocked:   true,
			Message:    "This skin is locked. Unlock it to see its full detail.",
		})
		return
	}

	writeJSON(w, http.StatusOK, view)
}
