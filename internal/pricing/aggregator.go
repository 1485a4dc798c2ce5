// Package pricing merges store offers for a game from several pricing vendors.
package pricing

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"gamecatalog/internal/adapters/cheapshark"
	"gamecatalog/internal/adapters/observability"
	"gamecatalog/internal/adapters/steam"
	"gamecatalog/internal/domain"
)

// NativeCurrency is the currency the deal aggregator quotes in.
const NativeCurrency = "USD"

const (
	vendorDeals        = "cheapshark"
	vendorStorefront   = "steam"
	vendorSubscription = "gamepass"
	vendorRates        = "exchange"
)

// Vendors wires the pricing sources. A nil vendor contributes nothing.
type Vendors struct {
	Deals        domain.DealVendor
	Storefront   domain.StorefrontVendor
	Subscription domain.SubscriptionVendor
	Rates        domain.RateVendor
}

type Aggregator struct {
	v Vendors
}

func NewAggregator(v Vendors) *Aggregator {
	return &Aggregator{v: v}
}

// GetOffers never fails: vendor errors are logged and collapse to "no offers
// from that vendor". The result is never empty.
//
// Order: deals in vendor order, then the storefront offer, then the
// subscription offer.
func (a *Aggregator) GetOffers(ctx context.Context, title, platformAppID string, profile domain.LocaleProfile) []domain.StoreOffer {
	if ex, ok := ExclusiveOffer(title); ok {
		observability.ObserveLookup("exclusive")
		return []domain.StoreOffer{ex}
	}

	var (
		deals      []domain.StoreOffer
		storefront *domain.StoreOffer
		subscribed bool
	)

	// every task returns nil so one vendor never cancels the others
	var g errgroup.Group
	g.Go(func() error {
		deals = a.dealOffers(ctx, title, profile)
		return nil
	})
	if platformAppID != "" && a.v.Storefront != nil {
		g.Go(func() error {
			storefront = a.storefrontOffer(ctx, platformAppID, profile)
			return nil
		})
	} else {
		observability.ObserveVendor(vendorStorefront, "skipped")
	}
	g.Go(func() error {
		subscribed = a.subscribed(ctx, title, profile)
		return nil
	})
	_ = g.Wait()

	offers := make([]domain.StoreOffer, 0, len(deals)+2)
	offers = append(offers, deals...)
	// a deal row for Steam already carries its price; a second Steam row could disagree
	if storefront != nil && !containsStore(deals, storefront.StoreName) {
		offers = append(offers, *storefront)
	}
	if subscribed {
		offers = append(offers, subscriptionOffer())
	}
	if len(offers) == 0 {
		observability.ObserveLookup("unavailable")
		return []domain.StoreOffer{unavailableOffer()}
	}
	observability.ObserveLookup("offers")
	return offers
}

func (a *Aggregator) dealOffers(ctx context.Context, title string, profile domain.LocaleProfile) []domain.StoreOffer {
	if a.v.Deals == nil {
		return nil
	}
	match, err := a.v.Deals.SearchTitle(ctx, title)
	if err != nil {
		vendorFailed(vendorDeals, title, err)
		return nil
	}
	raw, err := a.v.Deals.GameDeals(ctx, match.GameID)
	if err != nil {
		vendorFailed(vendorDeals, title, err)
		return nil
	}

	type known struct {
		deal domain.Deal
		info StoreInfo
	}
	var kept []known
	for _, d := range raw {
		info, ok := LookupStore(d.StoreID)
		if !ok {
			log.Debug().Int("store_id", d.StoreID).Str("title", title).Msg("dropping deal from unknown store")
			continue
		}
		kept = append(kept, known{deal: d, info: info})
	}
	if len(kept) == 0 {
		observability.ObserveVendor(vendorDeals, "no_match")
		return nil
	}

	// Amounts that cannot be converted are dropped rather than shown in the
	// wrong currency.
	rate, err := a.rate(ctx, NativeCurrency, profile.CurrencyCode)
	if err != nil {
		vendorFailed(vendorDeals, title, err)
		return nil
	}

	out := make([]domain.StoreOffer, 0, len(kept))
	for _, k := range kept {
		out = append(out, dealOffer(k.deal, k.info, rate, profile))
	}
	observability.ObserveVendor(vendorDeals, "ok")
	return out
}

func dealOffer(d domain.Deal, info StoreInfo, rate decimal.Decimal, profile domain.LocaleProfile) domain.StoreOffer {
	price := d.Price.Mul(rate)
	savings := clampPercent(int(d.Savings.Round(0).IntPart()))
	o := domain.StoreOffer{
		StoreName:      info.Name,
		StoreIcon:      info.Icon,
		Price:          domain.Amount(price),
		SavingsPercent: &savings,
		OnSale:         d.Savings.IsPositive(),
		URL:            cheapshark.DealURL(d.DealID),
		Kind:           domain.OfferStandard,
		Currency:       profile.CurrencyCode,
		FormattedPrice: profile.FormatAmount(price),
	}
	if !d.RetailPrice.Equal(d.Price) {
		retail := d.RetailPrice.Mul(rate)
		rp := domain.Amount(retail)
		o.RetailPrice = &rp
		o.FormattedRetailPrice = profile.FormatAmount(retail)
	}
	return o
}

func (a *Aggregator) storefrontOffer(ctx context.Context, appID string, profile domain.LocaleProfile) *domain.StoreOffer {
	sp, err := a.v.Storefront.PriceOverview(ctx, appID, profile.Region)
	if err != nil {
		vendorFailed(vendorStorefront, appID, err)
		return nil
	}

	rate := decimal.NewFromInt(1)
	switch {
	case strings.EqualFold(sp.Currency, profile.CurrencyCode):
	case strings.EqualFold(sp.Currency, NativeCurrency):
		rate, err = a.rate(ctx, NativeCurrency, profile.CurrencyCode)
		if err != nil {
			vendorFailed(vendorStorefront, appID, err)
			return nil
		}
	default:
		log.Warn().Str("vendor", vendorStorefront).Str("app_id", appID).
			Str("currency", sp.Currency).Str("want", profile.CurrencyCode).
			Msg("storefront currency does not match profile; dropping offer")
		observability.ObserveVendor(vendorStorefront, "currency_mismatch")
		return nil
	}

	info, _ := LookupStore(steamStoreID)
	final := sp.Final.Mul(rate)
	savings := clampPercent(sp.DiscountPercent)
	o := domain.StoreOffer{
		StoreName:      info.Name,
		StoreIcon:      info.Icon,
		Price:          domain.Amount(final),
		SavingsPercent: &savings,
		OnSale:         sp.DiscountPercent > 0,
		URL:            steam.StoreURL(appID),
		Kind:           domain.OfferStandard,
		Currency:       profile.CurrencyCode,
		FormattedPrice: profile.FormatAmount(final),
	}
	if !sp.Initial.Equal(sp.Final) {
		initial := sp.Initial.Mul(rate)
		rp := domain.Amount(initial)
		o.RetailPrice = &rp
		o.FormattedRetailPrice = profile.FormatAmount(initial)
	}
	observability.ObserveVendor(vendorStorefront, "ok")
	return &o
}

func (a *Aggregator) subscribed(ctx context.Context, title string, profile domain.LocaleProfile) bool {
	if a.v.Subscription == nil {
		return false
	}
	market := profile.Region
	if market == "" {
		market = "US"
	}
	titles, err := a.v.Subscription.CatalogTitles(ctx, strings.ToLower(profile.LanguageTag), market)
	if err != nil {
		vendorFailed(vendorSubscription, title, err)
		return false
	}
	want := NormalizeTitle(title)
	for _, t := range titles {
		if NormalizeTitle(t) == want {
			observability.ObserveVendor(vendorSubscription, "ok")
			return true
		}
	}
	observability.ObserveVendor(vendorSubscription, "no_match")
	return false
}

func (a *Aggregator) rate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	if strings.EqualFold(base, quote) {
		return decimal.NewFromInt(1), nil
	}
	if a.v.Rates == nil {
		return decimal.Decimal{}, errors.New("no exchange-rate source configured")
	}
	r, err := a.v.Rates.Rate(ctx, base, quote)
	if err != nil {
		observability.ObserveVendor(vendorRates, outcome(err))
		return decimal.Decimal{}, err
	}
	observability.ObserveVendor(vendorRates, "ok")
	return r, nil
}

func vendorFailed(vendor, subject string, err error) {
	oc := outcome(err)
	observability.ObserveVendor(vendor, oc)
	ev := log.Warn()
	if oc == "no_match" {
		ev = log.Info()
	}
	ev.Str("vendor", vendor).Str("subject", subject).Str("outcome", oc).Err(err).Msg("vendor lookup yielded no offers")
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoMatch), errors.Is(err, domain.ErrNotFound):
		return "no_match"
	case errors.Is(err, domain.ErrNetwork):
		return "network"
	case errors.Is(err, domain.ErrParse):
		return "parse"
	default:
		return "error"
	}
}

func containsStore(offers []domain.StoreOffer, name string) bool {
	for _, o := range offers {
		if o.StoreName == name {
			return true
		}
	}
	return false
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
