//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"

	"gamecatalog/internal/adapters/cheapshark"
	"gamecatalog/internal/adapters/exchange"
	"gamecatalog/internal/adapters/gamepass"
	server "gamecatalog/internal/adapters/http_server"
	"gamecatalog/internal/adapters/steam"
	"gamecatalog/internal/app"
	"gamecatalog/internal/domain"
	"gamecatalog/internal/locale"
	"gamecatalog/internal/pricing"
	mysqlrepo "gamecatalog/internal/storage/mysql"
)

// ---------- helpers ----------
func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir()

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// vendorStub answers the four pricing APIs from one server.
func vendorStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/games", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("title") == "Portal 2":
			_, _ = w.Write([]byte(`[{"gameID":"612","steamAppID":"620","external":"Portal 2"}]`))
		case q.Get("title") != "":
			_, _ = w.Write([]byte(`[]`))
		case q.Get("id") == "612":
			_, _ = w.Write([]byte(`{"info":{"title":"Portal 2"},"deals":[
				{"storeID":"7","dealID":"gog-1","price":"4.00","retailPrice":"10.00","savings":"60.000000"},
				{"storeID":"404","dealID":"x","price":"1.00","retailPrice":"10.00","savings":"90"}]}`))
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/appdetails", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"620":{"success":true,"data":{"price_overview":{"currency":"GBP","initial":799,"final":799,"discount_percent":0}}}}`))
	})
	mux.HandleFunc("/sigls/v2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"siglId":"x"},{"name":"Portal 2"},{"name":"Halo Infinite"}]`))
	})
	mux.HandleFunc("/latest/USD", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"USD":1,"GBP":0.8}}`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// ---------- the test ----------
func TestHTTP_EndToEnd_PriceWatchHistory(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=gamecatalog",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "gamecatalog")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Apply the real migrations
	applyMigrations(t, db)

	// Real adapters against stubbed vendors
	stub := vendorStub(t)
	agg := pricing.NewAggregator(pricing.Vendors{
		Deals:        cheapshark.New(stub.URL, 50, 2*time.Second),
		Storefront:   steam.New(stub.URL, 50, 2*time.Second),
		Subscription: gamepass.New(stub.URL, gamepass.DefaultCatalogID, 50, 2*time.Second),
		Rates:        exchange.New(stub.URL, 50, 2*time.Second),
	})
	resolver := locale.NewResolver(locale.DefaultTag)
	repo := mysqlrepo.New(db)
	snaps := app.NewSnapshotService(agg, repo)
	ctx := context.Background()

	// One watch run: a title with listings and one without
	n, err := snaps.Capture(ctx, app.WatchItem{Title: "Portal 2", SteamAppID: "620"}, resolver.Resolve("en-GB"))
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 offers captured (GOG, Steam, Game Pass), got %d", n)
	}
	if n, err := snaps.Capture(ctx, app.WatchItem{Title: "Unreleased Thing"}, resolver.Resolve("en-GB")); err != nil || n != 0 {
		t.Fatalf("miss capture: n=%d err=%v", n, err)
	}
	if misses, _ := repo.MissCount(ctx, "Unreleased Thing"); misses != 1 {
		t.Fatalf("expected one recorded miss, got %d", misses)
	}

	// Serve the history through the real router
	srv := server.New(5 * time.Second)
	srv.MountHandlers(&server.Handlers{
		Offers:    app.NewOfferService(agg, resolver),
		Snapshots: snaps,
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/offers/history?title=Portal%202")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var rows []domain.OfferSnapshot
	if err := json.NewDecoder(res.Body).Decode(&rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %+v", rows)
	}
	byStore := map[string]domain.OfferSnapshot{}
	for _, r := range rows {
		byStore[r.StoreName] = r
	}
	gog, ok := byStore["GOG"]
	if !ok || gog.Currency != "GBP" || !gog.Price.Amount.Equal(decimal.RequireFromString("3.2")) {
		t.Fatalf("unexpected GOG row: %+v", gog)
	}
	if st := byStore["Steam"]; !st.Price.Amount.Equal(decimal.RequireFromString("7.99")) || st.RetailPrice != nil {
		t.Fatalf("unexpected Steam row: %+v", st)
	}
	if gp := byStore["Xbox Game Pass"]; gp.Kind != domain.OfferSubscription || gp.Price.Label != "Included with subscription" {
		t.Fatalf("unexpected Game Pass row: %+v", gp)
	}

	// Live lookup goes through the same pipeline
	live, err := http.Get(ts.URL + "/v1/offers?title=Unreleased%20Thing&locale=en-US")
	if err != nil {
		t.Fatalf("GET offers: %v", err)
	}
	defer live.Body.Close()
	var view app.OffersView
	if err := json.NewDecoder(live.Body).Decode(&view); err != nil {
		t.Fatalf("decode offers: %v", err)
	}
	if len(view.Offers) != 1 || view.Offers[0].Kind != domain.OfferUnavailable {
		t.Fatalf("expected sentinel offer, got %+v", view.Offers)
	}
}
