package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type OfferKind string

const (
	OfferStandard     OfferKind = "standard"
	OfferSubscription OfferKind = "subscription"
	OfferExclusive    OfferKind = "exclusive"
	OfferUnavailable  OfferKind = "unavailable"
)

// Price is either a numeric amount or a descriptive label
// ("Included with subscription"). A non-empty Label wins.
type Price struct {
	Amount decimal.Decimal
	Label  string
}

func Amount(d decimal.Decimal) Price { return Price{Amount: d} }
func Label(s string) Price           { return Price{Label: s} }

func (p Price) IsNumeric() bool { return p.Label == "" }

func (p Price) String() string {
	if p.IsNumeric() {
		return p.Amount.StringFixed(2)
	}
	return p.Label
}

// MarshalJSON renders numeric prices as bare JSON numbers.
func (p Price) MarshalJSON() ([]byte, error) {
	if p.IsNumeric() {
		return []byte(p.Amount.StringFixed(2)), nil
	}
	return json.Marshal(p.Label)
}

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = Price{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Label(s)
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("price %s: %w", b, err)
	}
	*p = Amount(d)
	return nil
}

// StoreOffer is one storefront's price/availability entry for a game.
type StoreOffer struct {
	StoreName            string    `json:"storeName"`
	StoreIcon            string    `json:"storeIcon"`
	Price                Price     `json:"price"`
	RetailPrice          *Price    `json:"retailPrice,omitempty"`
	SavingsPercent       *int      `json:"savingsPercent,omitempty"`
	OnSale               bool      `json:"onSale"`
	URL                  string    `json:"url,omitempty"`
	Kind                 OfferKind `json:"kind"`
	Currency             string    `json:"currency,omitempty"`
	FormattedPrice       string    `json:"formattedPrice,omitempty"`
	FormattedRetailPrice string    `json:"formattedRetailPrice,omitempty"`
}

// LocaleProfile carries the caller's language, market and currency preference.
// Format is bound to CurrencyCode.
type LocaleProfile struct {
	LanguageTag  string
	Region       string
	CurrencyCode string
	Format       func(decimal.Decimal) string
}

// FormatAmount applies the profile formatter, falling back to a plain
// "<code> 0.00" rendering when the profile has none.
func (p LocaleProfile) FormatAmount(d decimal.Decimal) string {
	if p.Format == nil {
		return p.CurrencyCode + " " + d.StringFixed(2)
	}
	return p.Format(d)
}
