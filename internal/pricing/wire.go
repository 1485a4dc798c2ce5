package pricing

import (
	"gamecatalog/internal/adapters/cheapshark"
	"gamecatalog/internal/adapters/exchange"
	"gamecatalog/internal/adapters/gamepass"
	"gamecatalog/internal/adapters/steam"
	"gamecatalog/internal/shared"
)

// VendorsFromConfig builds the four live vendor clients.
func VendorsFromConfig(cfg shared.Config) Vendors {
	return Vendors{
		Deals:        cheapshark.New(cfg.DealsBase, cfg.VendorRPS, cfg.VendorTimeout),
		Storefront:   steam.New(cfg.SteamBase, cfg.VendorRPS, cfg.VendorTimeout),
		Subscription: gamepass.New(cfg.PassBase, cfg.PassID, cfg.VendorRPS, cfg.VendorTimeout),
		Rates:        exchange.New(cfg.RatesBase, cfg.VendorRPS, cfg.VendorTimeout),
	}
}
