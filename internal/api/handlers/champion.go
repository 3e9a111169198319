package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/akis/champion-vault/internal/api/middleware"
	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/service"
)

type ChampionHandler struct {
	catalogService    *service.CatalogService
	visibilityService *service.VisibilityService
}

func NewChampionHandler(catalogService *service.CatalogService, visibilityService *service.VisibilityService) *ChampionHandler {
	return &ChampionHandler{
		catalogService:    catalogService,
		visibilityService: visibilityService,
	}
}

func actorFromContext(r *http.Request) service.Actor {
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		return service.AuthenticatedActor(userID)
	}
	return service.Guest()
}

type ChampionsResponse struct {
	Champions []*service.ChampionView `json:"champions"`
}

func (h *ChampionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	champions, err := h.catalogService.GetAllChampions(r.Context())
	if err != nil {
		log.Printf("ERROR [champion.GetAll]: %v", err)
		http.Error(w, "Failed to get champions", http.StatusInternalServerError)
		return
	}

	views, err := h.visibilityService.AnnotateChampions(r.Context(), actorFromContext(r), champions)
	if err != nil {
		log.Printf("ERROR [champion.GetAll] annotate: %v", err)
		http.Error(w, "Failed to get champions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ChampionsResponse{Champions: views})
}

// LockedChampionResponse is the reduced payload for a champion the
// actor has not unlocked: enough metadata to render an unlock prompt,
// nothing more.
type LockedChampionResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Role       string `json:"role"`
	Region     string `json:"region"`
	ImageURL   string `json:"imageUrl"`
	UnlockCost int    `json:"unlockCost"`
	IsLocked   bool   `json:"isLocked"`
	Message    string `json:"message"`
}

func (h *ChampionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		http.Error(w, "Invalid champion ID", http.StatusBadRequest)
		return
	}

	champion, err := h.catalogService.GetChampion(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			http.Error(w, "Champion not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [champion.Get] championID=%d: %v", id, err)
		http.Error(w, "Failed to get champion", http.StatusInternalServerError)
		return
	}

	view, err := h.visibilityService.AnnotateChampion(r.Context(), actorFromContext(r), champion)
	if err != nil {
		log.Printf("ERROR [champion.Get] annotate championID=%d: %v", id, err)
		http.Error(w, "Failed to get champion", http.StatusInternalServerError)
		return
	}

	// Locked champions still answer 200, with cost metadata but
	// without the full profile.
	if view.IsLocked {
		writeJSON(w, http.StatusOK, LockedChampionResponse{
			ID:         champion.ID,
			Name:       champion.Name,
			Title:      champion.Title,
			Role:       champion.Role,
			Region:     champion.Region,
			ImageURL:   champion.ImageURL,
			UnlockCost: champion.UnlockCost,
			IsLocked:   true,
			Message:    "This champion is locked. Unlock it to see its full profile.",
		})
		return
	}

	writeJSON(w, http.StatusOK, view)
}
