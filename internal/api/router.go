package api

import (
	"net/http"
	"time"

	"runboard/internal/api/handler"
	"runboard/internal/api/middleware"
	"runboard/internal/app/fanout"
	"runboard/internal/app/service"
	"runboard/internal/common/security"
	"runboard/internal/domain/repository"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/cors"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Tokens   *security.TokenIssuer
	UserRepo repository.UserRepository
	Hub      *fanout.Hub

	AuthService        *service.AuthService
	UserService        *service.UserService
	ProfileService     *service.ProfileService
	LeaderboardService *service.LeaderboardService
	RunService         *service.RunService
	DiscussionService  *service.DiscussionService
	ChallengeService   *service.ChallengeService

	AllowedOrigins []string
	AvatarMaxBytes int64
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger())
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// The socket lives outside the request timeout.
	r.Route("/ws", handler.NewSocketHandler(d.Hub, d.Tokens, d.UserRepo).RegisterRoutes)

	guard := middleware.NewGuard(d.UserRepo)
	requireUser := chain(middleware.Authenticator(security.TokenTypeAccess), guard.LoadUser)
	requireRefresh := middleware.Authenticator(security.TokenTypeRefresh)

	r.Route("/api", func(api chi.Router) {
		api.Use(chiMiddleware.Timeout(60 * time.Second))
		// Verifies a bearer token when present and puts the result in context.
		api.Use(jwtauth.Verifier(d.Tokens.JWTAuth()))

		handler.NewAuthHandler(d.AuthService, requireRefresh).RegisterRoutes(api)

		api.Route("/profile", handler.NewProfileHandler(d.ProfileService, requireUser, d.AvatarMaxBytes).RegisterRoutes)
		api.Route("/leaderboard", handler.NewLeaderboardHandler(d.LeaderboardService).RegisterRoutes)
		api.Route("/runs", handler.NewRunHandler(d.RunService, requireUser).RegisterRoutes)
		api.Route("/discussions", handler.NewDiscussionHandler(d.DiscussionService, requireUser).RegisterRoutes)
		api.Route("/users", handler.NewUserHandler(d.UserService, requireUser).RegisterRoutes)
		api.Route("/challenges", handler.NewChallengeHandler(d.ChallengeService, requireUser).RegisterRoutes)
	})

	return r
}

func chain(mws ...func(http.Handler) http.Handler) handler.Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
