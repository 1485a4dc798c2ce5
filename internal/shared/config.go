package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration

	RawgBase  string
	RawgKey   string
	DealsBase string
	SteamBase string
	PassBase  string
	PassID    string
	RatesBase string

	VendorRPS     int
	VendorTimeout time.Duration
	DefaultLocale string

	WatchWorkers int
	Watchlist    []WatchEntry
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/gamecatalog?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		RawgBase:  env("RAWG_BASE_URL", "https://api.rawg.io/api"),
		RawgKey:   env("RAWG_API_KEY", ""),
		DealsBase: env("CHEAPSHARK_BASE_URL", "https://www.cheapshark.com/api/1.0"),
		SteamBase: env("STEAM_BASE_URL", "https://store.steampowered.com/api"),
		PassBase:  env("GAMEPASS_BASE_URL", "https://catalog.gamepass.com"),
		PassID:    env("GAMEPASS_CATALOG_ID", "fdd9e2a7-0fee-49f6-ad69-4354098401ff"),
		RatesBase: env("EXCHANGE_BASE_URL", "https://api.exchangerate-api.com/v4"),

		VendorRPS:     atoi("VENDOR_RPS", 5),
		VendorTimeout: time.Duration(atoi("VENDOR_TIMEOUT_SECONDS", 8)) * time.Second,
		DefaultLocale: env("DEFAULT_LOCALE", "en-GB"),

		WatchWorkers: atoi("WATCH_WORKERS", 4),
		Watchlist:    ParseWatchlist(os.Getenv("WATCHLIST")),
	}
	if len(c.Watchlist) == 0 {
		c.Watchlist = DefaultWatchlist
	}
	if c.RawgKey == "" {
		log.Warn().Msg("RAWG_API_KEY is empty; catalog endpoints are disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
