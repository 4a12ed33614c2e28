package app

import (
	"log/slog"
	"time"

	"github.com/fourplay/platform/internal/auth"
	"github.com/fourplay/platform/internal/guard"
	"github.com/fourplay/platform/internal/handler"
	"github.com/fourplay/platform/internal/oddsfeed"
	"github.com/fourplay/platform/internal/provider"
	"github.com/fourplay/platform/internal/service"
	"github.com/fourplay/platform/internal/session"
	"github.com/go-chi/chi/v5"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Logger    *slog.Logger
	Publisher service.EventPublisher

	// Hosted backend config
	BackendURL       string
	BackendAnonKey   string
	BackendJWTSecret string
	SignupRedirectTo string

	CORSOrigin string
	SessionTTL time.Duration
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	logger := deps.Logger

	// Backend clients
	datastore := provider.NewDatastore(deps.BackendURL, deps.BackendAnonKey, logger)
	authAPI := provider.NewAuthAPI(deps.BackendURL, deps.BackendAnonKey)

	// Token verification and per-user browsing state
	verifier := auth.NewVerifier(deps.BackendJWTSecret)
	sessions := session.NewStore(deps.SessionTTL)

	// Services
	fetcher := oddsfeed.NewFetcher(datastore, logger)
	catalogSvc := service.NewCatalogService(fetcher, logger)
	authSvc := service.NewAuthService(authAPI, deps.SignupRedirectTo)
	ticketSvc := service.NewTicketService(datastore, deps.Publisher, logger)
	profileSvc := service.NewProfileService(datastore, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	gamesHandler := handler.NewGamesHandler(catalogSvc, sessions)
	slipHandler := handler.NewSlipHandler(catalogSvc, ticketSvc, sessions)
	profileHandler := handler.NewProfileHandler(profileSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(deps.CORSOrigin))
	r.Use(handler.JSONContentType)
	r.Use(auth.Resolve(verifier))

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(datastore))

	// Auth routes, throttled per caller IP
	authLimiter := guard.NewRateLimiter(10, time.Minute)
	r.Route("/auth", func(r chi.Router) {
		r.Use(handler.Throttle(authLimiter))
		r.Post("/signup", authHandler.SignUp)
		r.Post("/login", authHandler.SignIn)
		r.Post("/logout", authHandler.SignOut)
	})

	// Public browsing
	r.Get("/games", gamesHandler.Today)
	r.Get("/games/{gameID}/markets", gamesHandler.Markets)
	r.Get("/leaderboard", profileHandler.Leaderboard)

	// Signed-in routes
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)

		r.Get("/me", authHandler.Me)
		r.Post("/games/{gameID}/markets/{marketID}/pin", gamesHandler.TogglePin)

		r.Route("/slip", func(r chi.Router) {
			r.Get("/", slipHandler.Get)
			r.Post("/picks", slipHandler.Select)
			r.Delete("/picks/{eventID}", slipHandler.Remove)
			r.Delete("/", slipHandler.Clear)
			r.Post("/submit", slipHandler.Submit)
		})

		r.Get("/profile", profileHandler.Me)
	})

	return r
}
