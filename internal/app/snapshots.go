package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"gamecatalog/internal/domain"
	"gamecatalog/internal/pricing"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// WatchItem is one title tracked by the price watch.
type WatchItem struct {
	Title      string
	SteamAppID string
}

// SnapshotService records offer lists over time and serves them back.
type SnapshotService struct {
	src  OfferSource
	repo domain.SnapshotRepository
	now  func() time.Time
}

func NewSnapshotService(src OfferSource, r domain.SnapshotRepository) *SnapshotService {
	return &SnapshotService{src: src, repo: r, now: time.Now}
}

// WithClock overrides the capture timestamp source.
func (s *SnapshotService) WithClock(now func() time.Time) *SnapshotService {
	s.now = now
	return s
}

// Capture runs the price pipeline for one watched title and persists the
// result. Titles with no listings are recorded as misses and stored nothing.
// It returns the number of offers written.
func (s *SnapshotService) Capture(ctx context.Context, item WatchItem, profile domain.LocaleProfile) (int, error) {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return 0, fmt.Errorf("watch item without title: %w", domain.ErrInvalidArgument)
	}
	offers := s.src.GetOffers(ctx, title, item.SteamAppID, profile)

	if pricing.IsUnavailable(offers) {
		if err := s.repo.LogMiss(ctx, title, offers[0].Price.Label); err != nil {
			return 0, fmt.Errorf("log miss %q: %w", title, err)
		}
		log.Info().Str("title", title).Msg("no store listings; recorded miss")
		return 0, nil
	}

	if err := s.repo.InsertSnapshots(ctx, title, offers, s.now().UTC()); err != nil {
		return 0, fmt.Errorf("insert snapshots %q: %w", title, err)
	}
	return len(offers), nil
}

// History returns the most recent snapshots for title, newest first.
func (s *SnapshotService) History(ctx context.Context, title string, limit int) ([]domain.OfferSnapshot, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", domain.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	out, err := s.repo.ListSnapshots(ctx, title, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.OfferSnapshot{}
	}
	return out, nil
}
