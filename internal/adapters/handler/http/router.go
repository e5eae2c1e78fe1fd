package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	restaurantHandler *RestaurantHandler,
	menuItemHandler *MenuItemHandler,
	voteHandler *VoteHandler,
	resultHandler *ResultHandler,
	userHandler *UserHandler,
	authHandler *AuthHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", restaurantHandler.ListRestaurants)
			r.Get("/{id}", restaurantHandler.GetRestaurant)
			r.Get("/{id}/menu", menuItemHandler.GetMenu)
			r.Get("/{id}/votes", resultHandler.GetLiveCount)
		})

		r.Get("/votes/results", resultHandler.GetResults)

		r.Route("/profile", func(r chi.Router) {
			r.Use(AuthMiddleware)
			r.Get("/", userHandler.GetMe)
			r.Route("/votes", func(r chi.Router) {
				r.Get("/", voteHandler.GetVoteHistory)
				r.Put("/", voteHandler.CastVote)
				r.Get("/today", voteHandler.GetTodayVote)
				r.Delete("/today", voteHandler.DeleteTodayVote)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware)
			r.Use(AdminOnly)
			r.Route("/restaurants", func(r chi.Router) {
				r.Post("/", restaurantHandler.CreateRestaurant)
				r.Put("/{id}", restaurantHandler.UpdateRestaurant)
				r.Delete("/{id}", restaurantHandler.DeleteRestaurant)
				r.Post("/{id}/menu-items", menuItemHandler.CreateMenuItem)
				r.Put("/{id}/menu-items/{itemID}", menuItemHandler.UpdateMenuItem)
				r.Delete("/{id}/menu-items/{itemID}", menuItemHandler.DeleteMenuItem)
			})
		})
	})

	return r
}
