// Package locale derives a LocaleProfile (language, market, currency and a
// bound price formatter) from whatever preference the caller has: an
// Accept-Language header, a BCP-47 tag or a POSIX locale string.
package locale

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gamecatalog/internal/domain"
)

const (
	DefaultTag            = "en-GB"
	DefaultMarket         = "GB"
	DefaultMarketCurrency = "GBP"
	GlobalCurrency        = "USD"
)

// Resolver holds the market heuristic: preferences whose region equals Market
// get MarketCurrency, everything else GlobalCurrency.
type Resolver struct {
	Default        language.Tag
	Market         language.Region
	MarketCurrency currency.Unit
	GlobalCurrency currency.Unit
}

// NewResolver parses the configured default tag, falling back to en-GB.
func NewResolver(defaultTag string) *Resolver {
	tag, err := language.Parse(defaultTag)
	if err != nil {
		tag = language.BritishEnglish
	}
	return &Resolver{
		Default:        tag,
		Market:         language.MustParseRegion(DefaultMarket),
		MarketCurrency: currency.GBP,
		GlobalCurrency: currency.USD,
	}
}

// Resolve never fails; an empty or unparsable preference yields the default profile.
func (r *Resolver) Resolve(pref string) domain.LocaleProfile {
	return r.profile(r.parse(pref))
}

// ResolveEnv reads LC_ALL, LC_MESSAGES and LANG in that order.
func (r *Resolver) ResolveEnv() domain.LocaleProfile {
	for _, k := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(k); v != "" && v != "C" && v != "POSIX" {
			return r.Resolve(v)
		}
	}
	return r.Resolve("")
}

func (r *Resolver) parse(pref string) language.Tag {
	pref = strings.TrimSpace(pref)
	if pref == "" {
		return r.Default
	}
	// POSIX form: en_GB.UTF-8@euro
	if i := strings.IndexAny(pref, ".@"); i >= 0 && !strings.ContainsAny(pref, ",;") {
		pref = pref[:i]
	}
	pref = strings.ReplaceAll(pref, "_", "-")

	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil {
		return r.Default
	}
	for _, t := range tags {
		if usable(t) {
			return t
		}
	}
	return r.Default
}

var wildcard = language.MustParseBase("mul")

// usable rejects "*" (parsed as mul) and tags naming no real language.
func usable(t language.Tag) bool {
	if t == language.Und {
		return false
	}
	base, conf := t.Base()
	return conf != language.No && base != wildcard
}

func (r *Resolver) profile(tag language.Tag) domain.LocaleProfile {
	region, conf := tag.Region()
	unit := r.GlobalCurrency
	// only an explicit region counts; "en" alone must not be guessed into GB
	if conf == language.Exact && region == r.Market {
		unit = r.MarketCurrency
	}
	return domain.LocaleProfile{
		LanguageTag:  tag.String(),
		Region:       regionCode(region, conf),
		CurrencyCode: unit.String(),
		Format:       Formatter(tag, unit),
	}
}

func regionCode(region language.Region, conf language.Confidence) string {
	if conf == language.No || !region.IsCountry() {
		return ""
	}
	return region.String()
}

// Formatter returns a closure printing amounts as narrow symbol + localized
// number at the currency's standard scale (e.g. "£12.50", "¥1,200").
func Formatter(tag language.Tag, unit currency.Unit) func(decimal.Decimal) string {
	p := message.NewPrinter(tag)
	sym := p.Sprint(currency.NarrowSymbol(unit))
	scale, _ := currency.Standard.Rounding(unit)
	verb := fmt.Sprintf("%%.%df", scale)
	return func(d decimal.Decimal) string {
		return sym + p.Sprintf(verb, d.Round(int32(scale)).InexactFloat64())
	}
}
