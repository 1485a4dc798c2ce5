// Package cheapshark adapts the CheapShark deal aggregator API.
package cheapshark

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gamecatalog/internal/adapters/httpclient"
	"gamecatalog/internal/domain"
)

const DefaultBase = "https://www.cheapshark.com/api/1.0"

type Client struct {
	base string
	http *httpclient.Client
}

var _ domain.DealVendor = (*Client)(nil)

// New builds a single-attempt client: the price pipeline never retries.
func New(base string, rps int, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: httpclient.New(httpclient.Options{Service: "cheapshark", RPS: rps, Timeout: timeout, Attempts: 1}),
	}
}

type searchItem struct {
	GameID     string `json:"gameID"`
	SteamAppID string `json:"steamAppID"`
	External   string `json:"external"`
}

type gameResponse struct {
	Info struct {
		Title      string `json:"title"`
		SteamAppID string `json:"steamAppID"`
	} `json:"info"`
	Deals []dealItem `json:"deals"`
}

type dealItem struct {
	StoreID     storeID         `json:"storeID"`
	DealID      string          `json:"dealID"`
	Price       decimal.Decimal `json:"price"`
	RetailPrice decimal.Decimal `json:"retailPrice"`
	Savings     decimal.Decimal `json:"savings"`
}

// storeID accepts both 1 and "1"; the API sends strings.
type storeID int

func (s *storeID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("storeID %q: %w", b, err)
	}
	*s = storeID(n)
	return nil
}

// SearchTitle returns the first match for a free-text title.
func (c *Client) SearchTitle(ctx context.Context, title string) (domain.DealMatch, error) {
	q := url.Values{}
	q.Set("title", title)
	q.Set("limit", "1")

	var items []searchItem
	if err := c.http.GetJSON(ctx, "/games?title", c.base+"/games?"+q.Encode(), &items); err != nil {
		return domain.DealMatch{}, err
	}
	if len(items) == 0 || items[0].GameID == "" {
		return domain.DealMatch{}, fmt.Errorf("cheapshark %q: %w", title, domain.ErrNoMatch)
	}
	return domain.DealMatch{
		GameID:     items[0].GameID,
		Title:      items[0].External,
		SteamAppID: items[0].SteamAppID,
	}, nil
}

// GameDeals lists every deal for the matched game, in vendor order.
func (c *Client) GameDeals(ctx context.Context, gameID string) ([]domain.Deal, error) {
	q := url.Values{}
	q.Set("id", gameID)

	var out gameResponse
	if err := c.http.GetJSON(ctx, "/games?id", c.base+"/games?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	deals := make([]domain.Deal, 0, len(out.Deals))
	for _, d := range out.Deals {
		deals = append(deals, domain.Deal{
			StoreID:     int(d.StoreID),
			DealID:      d.DealID,
			Price:       d.Price,
			RetailPrice: d.RetailPrice,
			Savings:     d.Savings,
		})
	}
	return deals, nil
}

// DealURL is the vendor redirect link for a deal.
func DealURL(dealID string) string {
	return "https://www.cheapshark.com/redirect?dealID=" + url.QueryEscape(dealID)
}
