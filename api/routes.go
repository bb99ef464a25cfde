package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hackercoop/coop/internal/config"
	"github.com/hackercoop/coop/internal/db"
	"github.com/hackercoop/coop/internal/identity"
	"github.com/hackercoop/coop/internal/notify"
	"github.com/hackercoop/coop/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(db)

	// External services
	notifier := notify.NewDiscord(cfg.DiscordWebhookURL, nil, logger)
	provider := identity.NewProvider(cfg.Github.ClientID, cfg.Github.ClientSecret, cfg.BaseURL+"/v1/auth/callback")

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(provider, cfg.SessionSecret, cfg.SessionDuration, !cfg.IsDevelopment())
	applicationsHandler := NewApplicationsHandler(repo, notifier)
	membersHandler := NewMembersHandler(repo, repo)
	boopHandler := NewBoopHandler(notifier)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/ping", systemHandler.PingHandler).Methods("GET")
	r.HandleFunc("/boop", boopHandler.Boop).Methods("POST")
	r.HandleFunc("/v1/auth/login", authHandler.Login).Methods("GET")
	r.HandleFunc("/v1/auth/callback", authHandler.Callback).Methods("GET")
	r.HandleFunc("/v1/auth/signout", authHandler.Signout).Methods("POST")

	// Applicant self-service: capability token in the path, no session
	r.HandleFunc("/v1/applications", applicationsHandler.Create).Methods("POST")

	// Admin endpoints (must register before the {token} routes so the bare
	// collection path and the /status suffix win the match)
	admin := AdminAuthMiddleware(cfg.AdminTokenHash, cfg.IsDevelopment())
	r.Handle("/v1/applications", admin(http.HandlerFunc(applicationsHandler.List))).Methods("GET")
	r.Handle("/v1/applications/{id:[0-9]+}/status", admin(http.HandlerFunc(applicationsHandler.UpdateStatus))).Methods("POST", "PUT")

	r.HandleFunc("/v1/applications/{token}", applicationsHandler.Get).Methods("GET")
	r.HandleFunc("/v1/applications/{token}", applicationsHandler.Update).Methods("PUT")

	// API v1 session-protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(SessionMiddlewareWithSecret(cfg.SessionSecret))
	apiV1.HandleFunc("/members", membersHandler.List).Methods("GET")
	apiV1.HandleFunc("/members/{username}", membersHandler.GetByUsername).Methods("GET")
	apiV1.HandleFunc("/me", membersHandler.Me).Methods("GET")
	apiV1.HandleFunc("/me", membersHandler.UpdateMe).Methods("POST")

	return r
}
