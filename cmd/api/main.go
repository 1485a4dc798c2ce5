package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "gamecatalog/internal/adapters/http_server"
	"gamecatalog/internal/adapters/observability"
	"gamecatalog/internal/adapters/rawg"
	redisad "gamecatalog/internal/adapters/redis"
	"gamecatalog/internal/app"
	"gamecatalog/internal/locale"
	"gamecatalog/internal/pricing"
	"gamecatalog/internal/shared"
	mysqlrepo "gamecatalog/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// price pipeline: always available, holds no state
	agg := pricing.NewAggregator(pricing.VendorsFromConfig(cfg))
	resolver := locale.NewResolver(cfg.DefaultLocale)
	h := &server.Handlers{Offers: app.NewOfferService(agg, resolver)}

	// catalog (needs an API key; cache is best-effort)
	if client, err := rawg.New(cfg.RawgBase, cfg.RawgKey, cfg.VendorRPS, cfg.VendorTimeout); err != nil {
		log.Warn().Err(err).Msg("catalog disabled")
	} else {
		cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := cache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; serving catalog uncached")
		}
		h.Catalog = app.NewCatalogService(client, cache, cfg.CacheTTL)
	}

	// price history (optional)
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Warn().Err(err).Msg("db.Ping failed; price history disabled")
	} else {
		log.Info().Msg("database connection ok")
		h.Snapshots = app.NewSnapshotService(agg, mysqlrepo.New(db))
	}

	// http
	srv := server.New(2*cfg.VendorTimeout + 5*time.Second)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	log.Info().Str("addr", cfg.HTTPAddr).Str("default_locale", cfg.DefaultLocale).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
