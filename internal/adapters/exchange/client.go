// Package exchange adapts a latest-rates exchange API (exchangerate-api.com v4 shape).
package exchange

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gamecatalog/internal/adapters/httpclient"
	"gamecatalog/internal/domain"
)

const DefaultBase = "https://api.exchangerate-api.com/v4"

type Client struct {
	base string
	http *httpclient.Client
}

var _ domain.RateVendor = (*Client)(nil)

func New(base string, rps int, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: httpclient.New(httpclient.Options{Service: "exchange", RPS: rps, Timeout: timeout, Attempts: 1}),
	}
}

type latestResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Rate returns how many units of quote one unit of base buys.
func (c *Client) Rate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	base, quote = strings.ToUpper(base), strings.ToUpper(quote)
	if base == quote {
		return decimal.NewFromInt(1), nil
	}
	var out latestResponse
	if err := c.http.GetJSON(ctx, "/latest", c.base+"/latest/"+url.PathEscape(base), &out); err != nil {
		return decimal.Decimal{}, err
	}
	r, ok := out.Rates[quote]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("rate %s/%s: %w", base, quote, domain.ErrNoMatch)
	}
	if r <= 0 {
		return decimal.Decimal{}, fmt.Errorf("rate %s/%s: %w: non-positive rate %v", base, quote, domain.ErrParse, r)
	}
	return decimal.NewFromFloat(r), nil
}
