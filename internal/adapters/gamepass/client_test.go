package gamepass_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamecatalog/internal/adapters/gamepass"
	"gamecatalog/internal/domain"
)

func TestClient_CatalogTitles(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/sigls/v2" || q.Get("id") != "cat" || q.Get("language") != "en-gb" || q.Get("market") != "GB" {
			t.Errorf("unexpected request: %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"siglId":"cat","title":"All PC games"},{"id":"9NBLGGH4R315","name":"Halo Infinite"},{"name":" Starfield "}]`))
	}))
	defer ts.Close()

	cl := gamepass.New(ts.URL, "cat", 100, 2*time.Second)
	got, err := cl.CatalogTitles(context.Background(), "en-gb", "GB")
	if err != nil {
		t.Fatalf("CatalogTitles: %v", err)
	}
	if len(got) != 2 || got[0] != "Halo Infinite" || got[1] != "Starfield" {
		t.Fatalf("unexpected titles: %v", got)
	}
}

func TestClient_CatalogTitles_BadShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer ts.Close()

	cl := gamepass.New(ts.URL, "", 100, 2*time.Second)
	if _, err := cl.CatalogTitles(context.Background(), "en-us", "US"); !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}
