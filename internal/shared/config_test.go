package shared_test

import (
	"testing"
	"time"

	"gamecatalog/internal/shared"
)

func TestParseWatchlist(t *testing.T) {
	got := shared.ParseWatchlist(" Portal 2 # 620 ;; Halo Infinite;#99")
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %+v", got)
	}
	if got[0].Title != "Portal 2" || got[0].SteamAppID != "620" {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if got[1].Title != "Halo Infinite" || got[1].SteamAppID != "" {
		t.Fatalf("unexpected second entry: %+v", got[1])
	}
	if shared.ParseWatchlist("") != nil {
		t.Fatal("empty input should yield nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VENDOR_RPS", "2")
	t.Setenv("VENDOR_TIMEOUT_SECONDS", "3")
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")
	t.Setenv("WATCHLIST", "Hades#1145360")
	t.Setenv("DEFAULT_LOCALE", "en-US")

	c := shared.Load()
	if c.VendorRPS != 2 || c.VendorTimeout != 3*time.Second {
		t.Fatalf("vendor settings not applied: %+v", c)
	}
	if c.CacheTTL != 900*time.Second {
		t.Fatalf("bad int should fall back to default, got %s", c.CacheTTL)
	}
	if len(c.Watchlist) != 1 || c.Watchlist[0].SteamAppID != "1145360" {
		t.Fatalf("unexpected watchlist: %+v", c.Watchlist)
	}
	if c.DefaultLocale != "en-US" {
		t.Fatalf("unexpected default locale %q", c.DefaultLocale)
	}
}

func TestLoad_DefaultWatchlist(t *testing.T) {
	t.Setenv("WATCHLIST", "")
	if c := shared.Load(); len(c.Watchlist) != len(shared.DefaultWatchlist) {
		t.Fatalf("expected default watchlist, got %d entries", len(c.Watchlist))
	}
}
