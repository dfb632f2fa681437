package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/retroboard-dev/retroboard/internal/middleware"
	"github.com/retroboard-dev/retroboard/internal/middleware/metrics"
	rl "github.com/retroboard-dev/retroboard/internal/middleware/ratelimiter"
	"github.com/retroboard-dev/retroboard/internal/setup"
)

// New creates and configures the router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints in that group combined
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	// CORS for the browser client; credentials on because auth rides an
	// HttpOnly cookie
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Route("/auth", func(auth chi.Router) {
			// signup is the expensive one (bcrypt), keep it slow per IP
			auth.With(mw.RateLimit(rl.New(1.0/5, 1, time.Hour), mw.GetIP)).
				Post("/signup", h.Signup)
			auth.With(mw.RateLimit(rl.OnceInSecond(), mw.GetIP)).
				Post("/login", h.Login)
			auth.Post("/logout", h.Logout)
		})

		v1.Group(func(loggedIn chi.Router) {
			loggedIn.Use(mw.NeedAuth(deps.Jwt))
			loggedIn.Use(mw.RateLimit(rl.Rps100(), mw.GetUserIDFromContext))

			loggedIn.Get("/boards", h.GetBoards)
			loggedIn.Post("/boards", h.CreateBoard)

			loggedIn.Route("/boards/{board}", func(board chi.Router) {
				board.Get("/", h.GetBoard)
				board.Patch("/", h.UpdateBoard)
				board.Delete("/", h.DeleteBoard)

				board.Get("/events", h.StreamBoard)
				board.Get("/export/csv", h.ExportCSV)
				board.Get("/export/html", h.ExportHTML)

				// writes get their own, tighter per-user budgets
				board.With(mw.RateLimit(rl.OnceInSecond(), mw.GetUserIDFromContext)).
					Post("/items", h.CreateItem)
				board.With(mw.RateLimit(rl.Rps10(), mw.GetUserIDFromContext)).
					Post("/items/{item}/vote", h.Vote)
				board.Delete("/items/{item}", h.DeleteItem)
			})
		})
	})

	return r
}
