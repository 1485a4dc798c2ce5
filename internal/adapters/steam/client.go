// Package steam adapts the Steam storefront price-overview endpoint.
package steam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gamecatalog/internal/adapters/httpclient"
	"gamecatalog/internal/domain"
)

const DefaultBase = "https://store.steampowered.com/api"

type Client struct {
	base string
	http *httpclient.Client
}

var _ domain.StorefrontVendor = (*Client)(nil)

func New(base string, rps int, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: httpclient.New(httpclient.Options{Service: "steam", RPS: rps, Timeout: timeout, Attempts: 1}),
	}
}

type appEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type appData struct {
	PriceOverview *struct {
		Currency        string `json:"currency"`
		Initial         int64  `json:"initial"`
		Final           int64  `json:"final"`
		DiscountPercent int    `json:"discount_percent"`
	} `json:"price_overview"`
}

// PriceOverview returns the app's price in the storefront currency of region.
// Free or delisted apps come back without a price overview and map to ErrNoMatch.
func (c *Client) PriceOverview(ctx context.Context, appID, region string) (domain.StorefrontPrice, error) {
	q := url.Values{}
	q.Set("appids", appID)
	if region != "" {
		q.Set("cc", strings.ToLower(region))
	}
	q.Set("filters", "price_overview")

	var out map[string]appEnvelope
	if err := c.http.GetJSON(ctx, "/appdetails", c.base+"/appdetails?"+q.Encode(), &out); err != nil {
		return domain.StorefrontPrice{}, err
	}
	env, ok := out[appID]
	if !ok {
		return domain.StorefrontPrice{}, fmt.Errorf("steam app %s: %w: app missing from response", appID, domain.ErrParse)
	}
	// data is [] rather than an object when the filter matched nothing
	if !env.Success || len(env.Data) == 0 || bytes.HasPrefix(bytes.TrimSpace(env.Data), []byte("[")) {
		return domain.StorefrontPrice{}, fmt.Errorf("steam app %s: %w", appID, domain.ErrNoMatch)
	}
	var data appData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return domain.StorefrontPrice{}, fmt.Errorf("steam app %s: %w: %v", appID, domain.ErrParse, err)
	}
	po := data.PriceOverview
	if po == nil {
		return domain.StorefrontPrice{}, fmt.Errorf("steam app %s: %w", appID, domain.ErrNoMatch)
	}
	if po.Currency == "" {
		return domain.StorefrontPrice{}, fmt.Errorf("steam app %s: %w: missing currency", appID, domain.ErrParse)
	}
	return domain.StorefrontPrice{
		AppID:           appID,
		Currency:        strings.ToUpper(po.Currency),
		Final:           decimal.New(po.Final, -2),
		Initial:         decimal.New(po.Initial, -2),
		DiscountPercent: po.DiscountPercent,
	}, nil
}

// StoreURL is the storefront page of an app.
func StoreURL(appID string) string {
	return "https://store.steampowered.com/app/" + url.PathEscape(appID)
}
