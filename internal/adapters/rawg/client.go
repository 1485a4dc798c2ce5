// Package rawg adapts the RAWG game metadata API.
package rawg

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gamecatalog/internal/adapters/httpclient"
	"gamecatalog/internal/domain"
)

const DefaultBase = "https://api.rawg.io/api"

type Client struct {
	base string
	key  string
	http *httpclient.Client
}

var _ domain.CatalogClient = (*Client)(nil)

func New(base, key string, rps int, timeout time.Duration) (*Client, error) {
	if key == "" {
		return nil, errors.New("RAWG API key is required")
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		key:  key,
		http: httpclient.New(httpclient.Options{Service: "rawg", RPS: rps, Timeout: timeout, Attempts: 3}),
	}, nil
}

// ---- wire types ----

type named struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type platformRef struct {
	Platform named `json:"platform"`
}

type storeRef struct {
	URL   string `json:"url"`
	Store named  `json:"store"`
}

type game struct {
	ID              int           `json:"id"`
	Slug            string        `json:"slug"`
	Name            string        `json:"name"`
	Released        string        `json:"released"`
	BackgroundImage string        `json:"background_image"`
	Rating          float64       `json:"rating"`
	Metacritic      *int          `json:"metacritic"`
	Genres          []named       `json:"genres"`
	ParentPlatforms []platformRef `json:"parent_platforms"`
	Platforms       []platformRef `json:"platforms"`
	DescriptionRaw  string        `json:"description_raw"`
	Website         string        `json:"website"`
	Stores          []storeRef    `json:"stores"`
}

type list[T any] struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// ---- public API ----

// Games lists /games with the given query parameters. The API key is added here.
func (c *Client) Games(ctx context.Context, params map[string]string) (domain.GamesPage, error) {
	var out list[game]
	if err := c.get(ctx, "/games", params, &out); err != nil {
		return domain.GamesPage{}, err
	}
	page, _ := strconv.Atoi(params["page"])
	if page < 1 {
		page = 1
	}
	gp := domain.GamesPage{
		Count:   out.Count,
		Page:    page,
		HasNext: out.Next != nil && *out.Next != "",
		Search:  params["search"],
		Items:   make([]domain.Game, 0, len(out.Results)),
	}
	for _, g := range out.Results {
		gp.Items = append(gp.Items, toGame(g))
	}
	return gp, nil
}

func (c *Client) Game(ctx context.Context, id int) (domain.Game, error) {
	var g game
	if err := c.get(ctx, "/games/{id}", nil, &g, strconv.Itoa(id)); err != nil {
		return domain.Game{}, err
	}
	return toGame(g), nil
}

func (c *Client) Screenshots(ctx context.Context, id int) ([]domain.Screenshot, error) {
	var out list[domain.Screenshot]
	if err := c.get(ctx, "/games/{id}/screenshots", nil, &out, strconv.Itoa(id)); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) Genres(ctx context.Context) ([]domain.Named, error) {
	return c.named(ctx, "/genres")
}

func (c *Client) Platforms(ctx context.Context) ([]domain.Named, error) {
	return c.named(ctx, "/platforms")
}

// ---- internals ----

func (c *Client) named(ctx context.Context, endpoint string) ([]domain.Named, error) {
	var out list[named]
	if err := c.get(ctx, endpoint, map[string]string{"page_size": "40"}, &out); err != nil {
		return nil, err
	}
	res := make([]domain.Named, 0, len(out.Results))
	for _, n := range out.Results {
		res = append(res, domain.Named(n))
	}
	return res, nil
}

// get expands {id} in endpoint with the optional path argument, appends the
// key and params, and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, out any, id ...string) error {
	path := endpoint
	if len(id) > 0 {
		path = strings.Replace(endpoint, "{id}", url.PathEscape(id[0]), 1)
	}
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	q.Set("key", c.key)
	if err := c.http.GetJSON(ctx, endpoint, c.base+path+"?"+q.Encode(), out); err != nil {
		return fmt.Errorf("rawg: %w", err)
	}
	return nil
}

func toGame(g game) domain.Game {
	out := domain.Game{
		ID:              g.ID,
		Slug:            g.Slug,
		Name:            g.Name,
		Released:        g.Released,
		BackgroundImage: g.BackgroundImage,
		Rating:          g.Rating,
		Metacritic:      g.Metacritic,
		Description:     g.DescriptionRaw,
		Website:         g.Website,
	}
	for _, n := range g.Genres {
		out.Genres = append(out.Genres, domain.Named(n))
	}
	plats := g.ParentPlatforms
	if len(plats) == 0 {
		plats = g.Platforms
	}
	for _, p := range plats {
		out.Platforms = append(out.Platforms, domain.Named(p.Platform))
	}
	for _, s := range g.Stores {
		if s.URL != "" {
			out.StoreURLs = append(out.StoreURLs, s.URL)
		}
	}
	out.SteamAppID = SteamAppID(out.StoreURLs)
	return out
}

var steamAppRe = regexp.MustCompile(`store\.steampowered\.com/app/(\d+)`)

// SteamAppID returns the first Steam app id found in the store links, or "".
func SteamAppID(urls []string) string {
	for _, u := range urls {
		if m := steamAppRe.FindStringSubmatch(u); m != nil {
			return m[1]
		}
	}
	return ""
}
