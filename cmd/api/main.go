package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "estate_catalog/internal/adapters/http_server"
	"estate_catalog/internal/adapters/media"
	"estate_catalog/internal/adapters/observability"
	redisad "estate_catalog/internal/adapters/redis"
	"estate_catalog/internal/catalog"
	"estate_catalog/internal/shared"
	mysqlrepo "estate_catalog/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	mediaClient, err := media.New(cfg.MediaBase, cfg.MediaKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize media client")
	}
	q := catalog.NewQueryService(repo, cache, cfg.CacheTTL)
	c := catalog.NewCommandService(repo, mediaClient, cache)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, C: c, MaxLimit: cfg.MaxLimit}, cfg.AdminToken)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
