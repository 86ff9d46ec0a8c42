package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/eventhub/internal/application/auth"
	"github.com/baechuer/eventhub/internal/application/category"
	"github.com/baechuer/eventhub/internal/application/event"
	"github.com/baechuer/eventhub/internal/application/ticket"
	"github.com/baechuer/eventhub/internal/config"
	"github.com/baechuer/eventhub/internal/infrastructure/postgres"
	redisinfra "github.com/baechuer/eventhub/internal/infrastructure/redis"
	"github.com/baechuer/eventhub/internal/infrastructure/security"
	"github.com/baechuer/eventhub/internal/logger"
	"github.com/baechuer/eventhub/internal/qr"
	"github.com/baechuer/eventhub/internal/storage"
	"github.com/baechuer/eventhub/internal/transport/http/handlers"
	authmw "github.com/baechuer/eventhub/internal/transport/http/middleware"
	"github.com/baechuer/eventhub/internal/transport/http/router"
)

// sysClock is the production clock.
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB
	Redis  *redisinfra.Client
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	u, _ := url.Parse(cfg.DatabaseURL)
	zlog.Info().
		Str("db_user", u.User.Username()).
		Str("db_host", u.Host).
		Str("db_db", u.Path).
		Msg("db config loaded")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}

	app, err := NewApp(cfg, db)
	if err != nil {
		zlog.Fatal().Err(err).Msg("app init failed")
	}
	defer func() {
		if app.Redis != nil {
			_ = app.Redis.Close()
		}
	}()

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
}

func NewApp(cfg *config.Config, db *sql.DB) (*App, error) {
	// 1) Infrastructure
	events := postgres.NewEventsRepo(db)
	tickets := postgres.NewTicketsRepo(db)
	likes := postgres.NewLikesRepo(db)
	registrations := postgres.NewRegistrationsRepo(db)
	categories := postgres.NewCategoriesRepo(db)
	users := postgres.NewUsersRepo(db)

	var cache *redisinfra.Client
	var sessions auth.SessionStore
	rc, err := redisinfra.New(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	cache = rc
	sessions = redisinfra.NewSessionStore(rc)

	media, err := newMediaStore(cfg)
	if err != nil {
		return nil, err
	}

	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)
	hasher := security.NewBcryptHasher(0)

	// 2) Application
	eventSvc := event.New(
		events, tickets, likes, registrations, categories,
		media, qr.Encode, cache, sysClock{},
		cfg.CacheTTLDetails, cfg.CacheTTLList,
	)
	ticketSvc := ticket.New(tickets, events, sysClock{})
	categorySvc := category.New(categories)
	authSvc := auth.New(users, hasher, signer, sessions, sysClock{}, auth.Config{})

	// 3) Transport
	h := router.Handlers{
		Events:     handlers.NewEventsHandler(eventSvc),
		Tickets:    handlers.NewTicketsHandler(ticketSvc, media.URL),
		Auth:       handlers.NewAuthHandler(authSvc, media, media.URL),
		Categories: handlers.NewCategoriesHandler(categorySvc),
		Health:     handlers.NewHealthHandler(db),
	}
	mw := authmw.NewAuth(signer)

	// 4) Router + server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.New(h, mw, cfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config: cfg,
		Server: srv,
		DB:     db,
		Redis:  cache,
	}, nil
}

func newMediaStore(cfg *config.Config) (event.MediaStore, error) {
	if cfg.MediaDriver == "s3" {
		return storage.NewS3Store(cfg)
	}
	return storage.NewFSStore(cfg.MediaRoot, cfg.MediaBaseURL)
}
