package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"propcomfy/internal/adapters/media"
	"propcomfy/internal/adapters/observability"
	redisad "propcomfy/internal/adapters/redis"
	"propcomfy/internal/app"
	"propcomfy/internal/catalog"
	"propcomfy/internal/domain"
	"propcomfy/internal/shared"
	mysqlrepo "propcomfy/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("media", cfg.MediaBase).
		Str("catalog", cfg.CatalogFile).
		Int("workers", cfg.Workers).
		Msg("seeder starting")

	if cfg.MySQLDSN == "" {
		log.Fatal().Msg("MYSQL_DSN is required")
	}
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	src := catalog.Builtin()
	if cfg.CatalogFile != "" {
		if src, err = catalog.LoadFile(cfg.CatalogFile); err != nil {
			log.Fatal().Err(err).Msg("catalog load failed")
		}
	}

	var client domain.MediaClient
	if cfg.MediaBase != "" {
		c, err := media.New(cfg.MediaBase, cfg.MediaKey, 5)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize media client")
		}
		client = c
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}
	seed := app.NewSeedService(client, repo, cache).WithLocal(src)

	units, _ := src.UnitsByCity(ctx)
	sem := semaphore.NewWeighted(int64(max(1, cfg.Workers)))
	var wg sync.WaitGroup

	for _, city := range src.Cities() {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(city string, list []domain.Unit) {
			defer wg.Done()
			defer sem.Release(1)

			if err := seed.SeedCity(ctx, city, list); err != nil {
				log.Warn().Str("city", city).Err(err).Msg("seed failed")
				return
			}
			log.Info().Str("city", city).Int("units", len(list)).Msg("seed ok")
		}(city, units[city])
	}

	wg.Wait()

	locs, _ := src.Locations(ctx)
	for _, l := range locs {
		if err := seed.SeedLocation(ctx, l); err != nil {
			log.Warn().Str("city", l.City).Err(err).Msg("location seed failed")
		}
	}
	log.Info().Int("locations", len(locs)).Msg("seeding completed")
}
