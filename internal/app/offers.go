package app

import (
	"context"
	"fmt"
	"strings"

	"gamecatalog/internal/domain"
)

// OfferSource is the price pipeline. It never fails and never returns an
// empty list.
type OfferSource interface {
	GetOffers(ctx context.Context, title, platformAppID string, profile domain.LocaleProfile) []domain.StoreOffer
}

type LocaleResolver interface {
	Resolve(preference string) domain.LocaleProfile
}

type OffersView struct {
	Title      string              `json:"title"`
	SteamAppID string              `json:"steamAppId,omitempty"`
	Locale     string              `json:"locale"`
	Currency   string              `json:"currency"`
	Offers     []domain.StoreOffer `json:"offers"`
}

type OfferService struct {
	src    OfferSource
	locale LocaleResolver
}

func NewOfferService(src OfferSource, loc LocaleResolver) *OfferService {
	return &OfferService{src: src, locale: loc}
}

// Lookup resolves the caller's locale preference (a tag, an Accept-Language
// value or a POSIX locale) and collects the offers for title.
func (s *OfferService) Lookup(ctx context.Context, title, steamAppID, localePref string) (OffersView, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return OffersView{}, fmt.Errorf("title is required: %w", domain.ErrInvalidArgument)
	}
	steamAppID = strings.TrimSpace(steamAppID)
	for _, r := range steamAppID {
		if r < '0' || r > '9' {
			return OffersView{}, fmt.Errorf("steam app id %q: %w", steamAppID, domain.ErrInvalidArgument)
		}
	}
	profile := s.locale.Resolve(localePref)
	return OffersView{
		Title:      title,
		SteamAppID: steamAppID,
		Locale:     profile.LanguageTag,
		Currency:   profile.CurrencyCode,
		Offers:     s.src.GetOffers(ctx, title, steamAppID, profile),
	}, nil
}

// ForGame looks up offers for a catalog entry using its Steam app id when known.
func (s *OfferService) ForGame(ctx context.Context, g domain.Game, localePref string) (OffersView, error) {
	return s.Lookup(ctx, g.Name, g.SteamAppID, localePref)
}
