package routes

import (
	"github.com/PoojanJaviya/chess-pairing/handlers"
	"github.com/PoojanJaviya/chess-pairing/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires every handler onto the router. Read endpoints are
// public; anything that mutates tournament state requires a director token.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	roundHandler *handlers.RoundHandler,
	matchHandler *handlers.MatchHandler,
	standingsHandler *handlers.StandingsHandler,
	tournamentHandler *handlers.TournamentHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireDirector := middleware.RequireDirector(jwtSecret)

	router.Post("/auth/login", authHandler.Login)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.List)
		r.Post("/", playerHandler.Register)
	})

	router.Route("/rounds", func(r chi.Router) {
		r.Get("/current", roundHandler.Current)
		r.Get("/status", roundHandler.Status)

		r.Group(func(r chi.Router) {
			r.Use(requireDirector)
			r.Post("/", roundHandler.Generate)
			r.Post("/current/conclude", roundHandler.Conclude)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(requireDirector)
			r.Put("/{tableNo}/result", matchHandler.RecordResult)
		})
	})

	router.Route("/standings", func(r chi.Router) {
		r.Get("/", standingsHandler.Get)
		r.Get("/csv", standingsHandler.ExportCSV)
	})

	router.Route("/tournament", func(r chi.Router) {
		r.Use(requireDirector)
		r.Post("/reset", tournamentHandler.Reset)
		r.Post("/archive", tournamentHandler.Archive)
	})

	router.Get("/ws", webSocketHandler.ServeWs)
}
