package locale_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamecatalog/internal/locale"
)

func TestResolve_CurrencyHeuristic(t *testing.T) {
	r := locale.NewResolver(locale.DefaultTag)

	cases := []struct {
		pref     string
		currency string
		region   string
	}{
		{"en-GB", "GBP", "GB"},
		{"en-GB,en;q=0.9", "GBP", "GB"},
		{"en_GB.UTF-8", "GBP", "GB"},
		{"cy-GB", "GBP", "GB"},
		{"en-US", "USD", "US"},
		{"de-DE,de;q=0.8", "USD", "DE"},
		{"fr_FR@euro", "USD", "FR"},
	}
	for _, tc := range cases {
		t.Run(tc.pref, func(t *testing.T) {
			p := r.Resolve(tc.pref)
			assert.Equal(t, tc.currency, p.CurrencyCode)
			assert.Equal(t, tc.region, p.Region)
			require.NotNil(t, p.Format)
		})
	}
}

func TestResolve_FallsBackToDefault(t *testing.T) {
	r := locale.NewResolver(locale.DefaultTag)
	for _, pref := range []string{"", "   ", "!!not-a-locale!!"} {
		p := r.Resolve(pref)
		assert.Equal(t, "en-GB", p.LanguageTag, "pref %q", pref)
		assert.Equal(t, "GBP", p.CurrencyCode, "pref %q", pref)
	}
}

func TestResolve_WildcardIsSkipped(t *testing.T) {
	r := locale.NewResolver(locale.DefaultTag)

	p := r.Resolve("*")
	assert.Equal(t, "en-GB", p.LanguageTag)
	assert.Equal(t, "GB", p.Region)
	assert.Equal(t, "GBP", p.CurrencyCode)

	p = r.Resolve("*, en-US;q=0.8")
	assert.Equal(t, "en-US", p.LanguageTag)
	assert.Equal(t, "US", p.Region)
	assert.Equal(t, "USD", p.CurrencyCode)

	for _, pref := range []string{"*", "*;q=0.5", "fr-FR, *;q=0.1"} {
		p := r.Resolve(pref)
		assert.NotEqual(t, "ZZ", p.Region, pref)
		assert.NotContains(t, p.LanguageTag, "mul", pref)
	}
}

func TestResolve_LanguageWithoutRegionIsGlobal(t *testing.T) {
	p := locale.NewResolver(locale.DefaultTag).Resolve("en")
	assert.Equal(t, "USD", p.CurrencyCode)
}

func TestNewResolver_BadDefault(t *testing.T) {
	p := locale.NewResolver("???").Resolve("")
	assert.Equal(t, "en-GB", p.LanguageTag)
}

func TestResolveEnv(t *testing.T) {
	r := locale.NewResolver(locale.DefaultTag)

	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "en_US.UTF-8")
	assert.Equal(t, "USD", r.ResolveEnv().CurrencyCode)

	t.Setenv("LC_ALL", "en_GB.UTF-8")
	assert.Equal(t, "GBP", r.ResolveEnv().CurrencyCode)

	t.Setenv("LC_ALL", "C")
	t.Setenv("LANG", "")
	assert.Equal(t, "en-GB", r.ResolveEnv().LanguageTag)
}

func TestFormatter_BoundToCurrency(t *testing.T) {
	r := locale.NewResolver(locale.DefaultTag)

	gb := r.Resolve("en-GB").Format(decimal.RequireFromString("12.5"))
	assert.Contains(t, gb, "12.50")
	assert.Contains(t, gb, "£")

	us := r.Resolve("en-US").Format(decimal.RequireFromString("3.999"))
	assert.Contains(t, us, "4.00")
	assert.Contains(t, us, "$")
}
