package main

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "propcomfy/internal/adapters/http_server"
	kafkaad "propcomfy/internal/adapters/kafka"
	"propcomfy/internal/adapters/observability"
	redisad "propcomfy/internal/adapters/redis"
	"propcomfy/internal/app"
	"propcomfy/internal/catalog"
	"propcomfy/internal/domain"
	"propcomfy/internal/localstore"
	"propcomfy/internal/shared"
	mysqlrepo "propcomfy/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	// db (optional; catalog falls back to the file or the built-in seed)
	var repo *mysqlrepo.Repo
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		defer db.Close()
		log.Info().Msg("database connection ok")
		repo = mysqlrepo.New(db)
	}

	var catalogRepo domain.CatalogRepository
	switch {
	case repo != nil:
		catalogRepo = repo
	case cfg.CatalogFile != "":
		st, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			log.Fatal().Err(err).Msg("catalog load failed")
		}
		catalogRepo = st
	default:
		catalogRepo = catalog.Builtin()
	}

	// cache
	var cache domain.Cache
	var rc *redisad.Cache
	if cfg.RedisAddr != "" {
		rc = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		cache = rc
	}

	// per-client local storage
	var store domain.LocalStore
	switch cfg.StoreBackend {
	case "redis":
		if rc == nil {
			rc = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		}
		store = redisad.NewLocalStore(rc.Client())
	case "mysql":
		if repo == nil {
			log.Fatal().Msg("STORE_BACKEND=mysql requires MYSQL_DSN")
		}
		store = repo
	default:
		store = localstore.NewMemory()
	}

	// events
	var pub domain.EventPublisher = kafkaad.Nop{}
	if cfg.KafkaBrokers != "" {
		p := kafkaad.NewPublisher(kafkaad.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
		defer p.Close()
		pub = p
	}

	q := app.NewQueryService(catalogRepo, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Q:       q,
		S:       app.NewSessionService(store),
		B:       app.NewBookingService(q, store, pub),
		PayRate: cfg.PayRate,
	})

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("store", cfg.StoreBackend).
		Bool("cache", cache != nil).
		Bool("kafka", cfg.KafkaBrokers != "").
		Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
