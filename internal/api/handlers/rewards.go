package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/akis/champion-vault/internal/api/middleware"
	"github.com/akis/champion-vault/internal/domain"
	"github.com/akis/champion-vault/internal/repository"
	"github.com/akis/champion-vault/internal/service"
)

type RewardsHandler struct {
	rewardsService *service.RewardsService
	unlockService  *service.UnlockService
	catalogService *service.CatalogService
	commentRepo    repository.CommentRepository
}

func NewRewardsHandler(rewardsService *service.RewardsService, unlockService *service.UnlockService, catalogService *service.CatalogService, commentRepo repository.CommentRepository) *RewardsHandler {
	return &RewardsHandler{
		rewardsService: rewardsService,
		unlockService:  unlockService,
		catalogService: catalogService,
		commentRepo:    commentRepo,
	}
}

type RewardResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	PointsEarned int    `json:"pointsEarned"`
	TotalPoints  int    `json:"totalPoints"`
}

func (h *RewardsHandler) ClaimDailyBonus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.rewardsService.ClaimDailyBonus(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrBonusAlreadyClaimed) {
			writeError(w, http.StatusBadRequest, "Daily bonus already claimed today")
			return
		}
		log.Printf("ERROR [rewards.ClaimDailyBonus]: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to claim daily bonus")
		return
	}

	writeJSON(w, http.StatusOK, RewardResponse{
		Success:      true,
		Message:      "Daily bonus claimed!",
		PointsEarned: result.PointsEarned,
		TotalPoints:  result.TotalPoints,
	})
}

// TrackView awards view points for a champion, once per day per
// champion. A repeat view is still a 200, with pointsEarned zero.
func (h *RewardsHandler) TrackView(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	championID, ok := uintParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid champion ID")
		return
	}

	if _, err := h.catalogService.GetChampion(r.Context(), championID); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Champion not found")
			return
		}
		log.Printf("ERROR [rewards.TrackView] championID=%d: %v", championID, err)
		writeError(w, http.StatusInternalServerError, "Failed to track view")
		return
	}

	result, err := h.rewardsService.TrackView(r.Context(), userID, championID)
	if err != nil {
		log.Printf("ERROR [rewards.TrackView] championID=%d: %v", championID, err)
		writeError(w, http.StatusInternalServerError, "Failed to track view")
		return
	}

	message := "View reward earned"
	if result.PointsEarned == 0 {
		message = "View already rewarded today"
	}
	writeJSON(w, http.StatusOK, RewardResponse{
		Success:      true,
		Message:      message,
		PointsEarned: result.PointsEarned,
		TotalPoints:  result.TotalPoints,
	})
}

type CreateCommentRequest struct {
	Body string `json:"body"`
}

type CommentResponse struct {
	Comment      *domain.Comment `json:"comment"`
	PointsEarned int             `json:"pointsEarned"`
	TotalPoints  int             `json:"totalPoints"`
}

func (h *RewardsHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	championID, ok := uintParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid champion ID")
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		writeError(w, http.StatusBadRequest, "Comment body is required")
		return
	}

	if _, err := h.catalogService.GetChampion(r.Context(), championID); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Champion not found")
			return
		}
		log.Printf("ERROR [rewards.CreateComment] championID=%d: %v", championID, err)
		writeError(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	comment := &domain.Comment{
		ChampionID: championID,
		UserID:     userID,
		Body:       req.Body,
		CreatedAt:  time.Now(),
	}
	if err := h.commentRepo.Create(r.Context(), comment); err != nil {
		log.Printf("ERROR [rewards.CreateComment] championID=%d: %v", championID, err)
		writeError(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	result, err := h.rewardsService.TrackComment(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [rewards.CreateComment] reward championID=%d: %v", championID, err)
		writeError(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	writeJSON(w, http.StatusOK, CommentResponse{
		Comment:      comment,
		PointsEarned: result.PointsEarned,
		TotalPoints:  result.TotalPoints,
	})
}

func (h *RewardsHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	championID, ok := uintParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid champion ID")
		return
	}

	comments, err := h.commentRepo.GetByChampionID(r.Context(), championID)
	if err != nil {
		log.Printf("ERROR [rewards.GetComments] championID=%d: %v", championID, err)
		writeError(w, http.StatusInternalServerError, "Failed to get comments")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

func (h *RewardsHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	progress, err := h.rewardsService.Progress(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [rewards.GetProgress]: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get progress")
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

func (h *RewardsHandler) GetAvailableUnlocks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	available, err := h.unlockService.ListAvailable(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [rewards.GetAvailableUnlocks]: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get available unlocks")
		return
	}

	writeJSON(w, http.StatusOK, available)
}
