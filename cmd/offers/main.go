// offers looks up aggregated store prices from the command line.
//
// Usage:
//
//	offers lookup --title "Portal 2" [--steam-app-id 620] [--locale en-GB]
//	offers normalize --title "Counter-Strike!"
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"gamecatalog/internal/adapters/observability"
	"gamecatalog/internal/app"
	"gamecatalog/internal/locale"
	"gamecatalog/internal/pricing"
	"gamecatalog/internal/shared"
)

var version = "dev"

func main() {
	a := &cli.App{
		Name:    "offers",
		Usage:   "Aggregate store prices for a game",
		Version: version,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			log.Logger = observability.NewLogger("dev", c.String("log-level")).Output(os.Stderr)
			return nil
		},

		Commands: []*cli.Command{
			lookupCommand(),
			normalizeCommand(),
		},
	}

	if err := a.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func lookupCommand() *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "Print the offer list for a title as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Game title as displayed in the catalog",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "steam-app-id",
				Usage: "Steam app id; enables the storefront price",
			},
			&cli.StringFlag{
				Name:  "locale",
				Usage: "Locale (en-GB, en_US.UTF-8); defaults to LC_ALL/LC_MESSAGES/LANG",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 20 * time.Second,
				Usage: "Overall lookup deadline",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := shared.Load()
			resolver := locale.NewResolver(cfg.DefaultLocale)

			pref := c.String("locale")
			if pref == "" {
				pref = resolver.ResolveEnv().LanguageTag
			}

			ctx, cancel := contextWithTimeout(c, c.Duration("timeout"))
			defer cancel()

			svc := app.NewOfferService(pricing.NewAggregator(pricing.VendorsFromConfig(cfg)), resolver)
			view, err := svc.Lookup(ctx, c.String("title"), c.String("steam-app-id"), pref)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		},
	}
}

func normalizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "normalize",
		Usage: "Print the folded form used to match titles across vendors",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprintln(c.App.Writer, pricing.NormalizeTitle(c.String("title")))
			return err
		},
	}
}
