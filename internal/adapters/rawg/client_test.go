package rawg_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamecatalog/internal/adapters/rawg"
	"gamecatalog/internal/domain"
)

func TestClient_Games(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/games" || q.Get("key") != "k" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		if q.Get("search") != "portal" || q.Get("page") != "2" {
			t.Errorf("params not forwarded: %s", r.URL.RawQuery)
		}
		if _, ok := q["genres"]; ok {
			t.Errorf("empty params should be omitted: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"count":41,"next":"https://api.rawg.io/api/games?page=3","results":[
			{"id":4200,"slug":"portal-2","name":"Portal 2","released":"2011-04-18","rating":4.6,"metacritic":95,
			 "genres":[{"id":7,"name":"Puzzle","slug":"puzzle"}],
			 "parent_platforms":[{"platform":{"id":1,"name":"PC","slug":"pc"}}]}]}`))
	}))
	defer ts.Close()

	cl, err := rawg.New(ts.URL, "k", 100, 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	page, err := cl.Games(context.Background(), map[string]string{"search": "portal", "page": "2", "genres": ""})
	if err != nil {
		t.Fatalf("Games: %v", err)
	}
	if page.Count != 41 || page.Page != 2 || !page.HasNext || len(page.Items) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	g := page.Items[0]
	if g.Name != "Portal 2" || g.Metacritic == nil || *g.Metacritic != 95 || len(g.Platforms) != 1 || g.Platforms[0].Name != "PC" {
		t.Fatalf("unexpected game: %+v", g)
	}
}

func TestClient_GameAndScreenshots(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/games/4200":
			_, _ = w.Write([]byte(`{"id":4200,"slug":"portal-2","name":"Portal 2","description_raw":"Cake.",
				"stores":[{"url":"https://www.gog.com/game/portal_2","store":{"id":5,"name":"GOG"}},
				          {"url":"https://store.steampowered.com/app/620/Portal_2/","store":{"id":1,"name":"Steam"}}]}`))
		case "/games/4200/screenshots":
			_, _ = w.Write([]byte(`{"count":1,"results":[{"id":1,"image":"https://media.rawg.io/a.jpg"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	cl, _ := rawg.New(ts.URL, "k", 100, 2*time.Second)
	ctx := context.Background()

	g, err := cl.Game(ctx, 4200)
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if g.SteamAppID != "620" || g.Description != "Cake." || len(g.StoreURLs) != 2 {
		t.Fatalf("unexpected detail: %+v", g)
	}

	shots, err := cl.Screenshots(ctx, 4200)
	if err != nil || len(shots) != 1 || shots[0].Image == "" {
		t.Fatalf("Screenshots: %v %+v", err, shots)
	}

	if _, err := cl.Game(ctx, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := rawg.New("http://x", "", 1, time.Second); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestSteamAppID(t *testing.T) {
	cases := map[string][]string{
		"":       {"https://www.gog.com/game/witcher_3"},
		"292030": {"https://store.steampowered.com/app/292030/The_Witcher_3/"},
		"10":     {"http://store.steampowered.com/app/10", "https://store.steampowered.com/app/20"},
	}
	for want, urls := range cases {
		if got := rawg.SteamAppID(urls); got != want {
			t.Errorf("SteamAppID(%v) = %q, want %q", urls, got, want)
		}
	}
}
