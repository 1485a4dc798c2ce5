// Package gamepass adapts the Xbox Game Pass catalog listing ("sigls").
package gamepass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gamecatalog/internal/adapters/httpclient"
	"gamecatalog/internal/domain"
)

const (
	DefaultBase      = "https://catalog.gamepass.com"
	DefaultCatalogID = "fdd9e2a7-0fee-49f6-ad69-4354098401ff"
)

type Client struct {
	base      string
	catalogID string
	http      *httpclient.Client
}

var _ domain.SubscriptionVendor = (*Client)(nil)

func New(base, catalogID string, rps int, timeout time.Duration) *Client {
	if catalogID == "" {
		catalogID = DefaultCatalogID
	}
	return &Client{
		base:      strings.TrimRight(base, "/"),
		catalogID: catalogID,
		http:      httpclient.New(httpclient.Options{Service: "gamepass", RPS: rps, Timeout: timeout, Attempts: 1}),
	}
}

// CatalogTitles lists the display names of every title in the subscription.
// Entries without a name (the listing header, bare ids) are skipped.
func (c *Client) CatalogTitles(ctx context.Context, language, market string) ([]string, error) {
	q := url.Values{}
	q.Set("id", c.catalogID)
	q.Set("language", language)
	q.Set("market", market)

	var raw []json.RawMessage
	if err := c.http.GetJSON(ctx, "/sigls/v2", c.base+"/sigls/v2?"+q.Encode(), &raw); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(raw))
	for _, r := range raw {
		var e struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(r, &e); err != nil {
			return nil, fmt.Errorf("gamepass: %w: %v", domain.ErrParse, err)
		}
		if n := strings.TrimSpace(e.Name); n != "" {
			titles = append(titles, n)
		}
	}
	return titles, nil
}
