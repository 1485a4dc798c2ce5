package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealMatch is the deal aggregator's best title match.
type DealMatch struct {
	GameID     string
	Title      string
	SteamAppID string
}

// Deal is a raw deal record as returned by the deal aggregator (USD).
type Deal struct {
	StoreID     int
	DealID      string
	Price       decimal.Decimal
	RetailPrice decimal.Decimal
	Savings     decimal.Decimal
}

// StorefrontPrice is the platform storefront's price overview for one app.
// Amounts are in major units of Currency.
type StorefrontPrice struct {
	AppID           string
	Currency        string
	Final           decimal.Decimal
	Initial         decimal.Decimal
	DiscountPercent int
}

// OfferSnapshot is one persisted offer row of a price-watch run.
type OfferSnapshot struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	StoreName      string    `json:"storeName"`
	Kind           OfferKind `json:"kind"`
	Price          Price     `json:"price"`
	RetailPrice    *Price    `json:"retailPrice,omitempty"`
	SavingsPercent *int      `json:"savingsPercent,omitempty"`
	Currency       string    `json:"currency,omitempty"`
	URL            string    `json:"url,omitempty"`
	CapturedAt     time.Time `json:"capturedAt"`
}
