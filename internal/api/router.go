package api

import (
	"net/http"

	"github.com/akis/champion-vault/internal/api/handlers"
	"github.com/akis/champion-vault/internal/api/middleware"
	"github.com/akis/champion-vault/internal/config"
	"github.com/akis/champion-vault/internal/repository"
	"github.com/akis/champion-vault/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, repos *repository.Repositories, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	championHandler := handlers.NewChampionHandler(services.Catalog, services.Visibility)
	skinHandler := handlers.NewSkinHandler(services.Catalog, services.Visibility)
	unlockHandler := handlers.NewUnlockHandler(services.Unlock)
	rewardsHandler := handlers.NewRewardsHandler(services.Rewards, services.Unlock, services.Catalog, repos.Comment)
	adminHandler := handlers.NewAdminHandler(services.Catalog, repos.Ledger)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Catalog routes: guests get the default-unlock projection,
		// authenticated users their own.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(services.Auth))

			r.Get("/champions", championHandler.GetAll)
			r.Get("/champions/{id}", championHandler.Get)
			r.Get("/champions/{id}/skins", skinHandler.GetChampionSkins)
			r.Get("/champions/{id}/comments", rewardsHandler.GetComments)
			r.Get("/skins/{id}", skinHandler.Get)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Post("/champions/{id}/unlock", unlockHandler.UnlockChampion)
			r.Post("/skins/{id}/unlock", unlockHandler.UnlockSkin)

			r.Post("/champions/{id}/view", rewardsHandler.TrackView)
			r.Post("/champions/{id}/comments", rewardsHandler.CreateComment)

			r.Post("/rewards/daily-bonus", rewardsHandler.ClaimDailyBonus)
			r.Get("/progress", rewardsHandler.GetProgress)
			r.Get("/progress/available", rewardsHandler.GetAvailableUnlocks)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Use(middleware.RequireAdmin(services.Auth))

			r.Route("/admin", func(r chi.Router) {
				r.Post("/champions", adminHandler.CreateChampion)
				r.Put("/champions/{id}", adminHandler.UpdateChampion)
				r.Delete("/champions/{id}", adminHandler.DeleteChampion)
				r.Post("/champions/sync", adminHandler.SyncChampions)

				r.Post("/skins", adminHandler.CreateSkin)
				r.Put("/skins/{id}", adminHandler.UpdateSkin)
				r.Delete("/skins/{id}", adminHandler.DeleteSkin)

				r.Post("/users/{id}/points", adminHandler.GrantPoints)
			})
		})
	})

	return r
}
