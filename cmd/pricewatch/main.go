package main

import (
	"context"
	"database/sql"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"gamecatalog/internal/adapters/observability"
	"gamecatalog/internal/app"
	"gamecatalog/internal/locale"
	"gamecatalog/internal/pricing"
	"gamecatalog/internal/shared"
	mysqlrepo "gamecatalog/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	observability.Serve(cfg.MetricsAddr, observability.InitRegistry())

	log.Info().
		Int("workers", cfg.WatchWorkers).
		Int("titles", len(cfg.Watchlist)).
		Str("locale", cfg.DefaultLocale).
		Msg("pricewatch starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	agg := pricing.NewAggregator(pricing.VendorsFromConfig(cfg))
	watch := app.NewSnapshotService(agg, mysqlrepo.New(db))
	profile := locale.NewResolver(cfg.DefaultLocale).Resolve(cfg.DefaultLocale)

	workers := cfg.WatchWorkers
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg     sync.WaitGroup
		stored atomic.Int64
		failed atomic.Int64
	)

	for _, e := range cfg.Watchlist {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("interrupted; waiting for running lookups")
			break
		}

		wg.Add(1)
		go func(item app.WatchItem) {
			defer wg.Done()
			defer sem.Release(1)

			n, err := watch.Capture(ctx, item, profile)
			if err != nil {
				failed.Add(1)
				log.Warn().Str("title", item.Title).Err(err).Msg("capture failed")
				return
			}
			stored.Add(int64(n))
			log.Info().Str("title", item.Title).Int("offers", n).Msg("capture ok")
		}(app.WatchItem{Title: e.Title, SteamAppID: e.SteamAppID})
	}

	wg.Wait()
	log.Info().
		Int64("offers_stored", stored.Load()).
		Int64("failed", failed.Load()).
		Str("currency", profile.CurrencyCode).
		Msg("pricewatch completed")
}
