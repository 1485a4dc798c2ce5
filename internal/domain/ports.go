package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Pricing vendors. Implementations report ErrNoMatch when the vendor has nothing
// for the input and wrap ErrNetwork/ErrParse for transport and shape failures.

type DealVendor interface {
	SearchTitle(ctx context.Context, title string) (DealMatch, error)
	GameDeals(ctx context.Context, gameID string) ([]Deal, error)
}

type StorefrontVendor interface {
	PriceOverview(ctx context.Context, appID, region string) (StorefrontPrice, error)
}

type SubscriptionVendor interface {
	CatalogTitles(ctx context.Context, language, market string) ([]string, error)
}

type RateVendor interface {
	Rate(ctx context.Context, base, quote string) (decimal.Decimal, error)
}

// CatalogClient is the game metadata API.
type CatalogClient interface {
	Games(ctx context.Context, params map[string]string) (GamesPage, error)
	Game(ctx context.Context, id int) (Game, error)
	Screenshots(ctx context.Context, id int) ([]Screenshot, error)
	Genres(ctx context.Context) ([]Named, error)
	Platforms(ctx context.Context) ([]Named, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type SnapshotRepository interface {
	// Write paths
	InsertSnapshots(ctx context.Context, title string, offers []StoreOffer, at time.Time) error
	LogMiss(ctx context.Context, title, reason string) error

	// Read paths
	ListSnapshots(ctx context.Context, title string, limit int) ([]OfferSnapshot, error)
}
