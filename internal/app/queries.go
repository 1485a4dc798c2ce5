package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"gamecatalog/internal/domain"
)

// CatalogService serves browse, detail and landing-page reads from the game
// metadata API through the response cache.
type CatalogService struct {
	api      domain.CatalogClient
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewCatalogService(api domain.CatalogClient, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{api: api, cache: c, cacheTTL: ttl, now: time.Now}
}

// WithClock overrides the clock used for date-relative queries.
func (s *CatalogService) WithClock(now func() time.Time) *CatalogService {
	s.now = now
	return s
}

// Browse lists games for the filter panel. A search that finds nothing is
// retried once with a known alias of the term.
func (s *CatalogService) Browse(ctx context.Context, q domain.BrowseQuery) (domain.GamesPage, error) {
	params, err := browseParams(q, s.now())
	if err != nil {
		return domain.GamesPage{}, err
	}
	page, err := s.games(ctx, params)
	if err != nil {
		return domain.GamesPage{}, err
	}
	if len(page.Items) > 0 || params["search"] == "" {
		return page, nil
	}
	alt, ok := alternateSearch(params["search"])
	if !ok {
		return page, nil
	}
	log.Debug().Str("search", params["search"]).Str("alias", alt).Msg("empty search; retrying with alias")
	params["search"] = alt
	return s.games(ctx, params)
}

// Game returns the detail view with screenshots. Screenshots are best-effort.
func (s *CatalogService) Game(ctx context.Context, id int) (domain.GameDetail, error) {
	if id <= 0 {
		return domain.GameDetail{}, fmt.Errorf("game id %d: %w", id, domain.ErrInvalidArgument)
	}
	key := fmt.Sprintf("game:%d", id)
	var gd domain.GameDetail
	if s.cached(ctx, key, &gd) {
		return gd, nil
	}

	var (
		g     domain.Game
		shots []domain.Screenshot
	)
	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		g, err = s.api.Game(ectx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		if shots, err = s.api.Screenshots(ectx, id); err != nil {
			log.Warn().Err(err).Int("game_id", id).Msg("screenshots unavailable")
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return domain.GameDetail{}, err
	}
	if shots == nil {
		shots = []domain.Screenshot{}
	}
	gd = domain.GameDetail{Game: g, Screenshots: shots}
	s.store(ctx, key, gd)
	return gd, nil
}

// Home fetches the three landing-page sections concurrently.
func (s *CatalogService) Home(ctx context.Context) (domain.HomeView, error) {
	const key = "home"
	var hv domain.HomeView
	if s.cached(ctx, key, &hv) {
		return hv, nil
	}

	popular, fresh, top := homeSections(s.now())
	eg, ectx := errgroup.WithContext(ctx)
	section := func(params map[string]string, dst *[]domain.Game) {
		eg.Go(func() error {
			p, err := s.api.Games(ectx, params)
			if err != nil {
				return err
			}
			*dst = p.Items
			return nil
		})
	}
	section(popular, &hv.Popular)
	section(fresh, &hv.NewReleases)
	section(top, &hv.TopRated)
	if err := eg.Wait(); err != nil {
		return domain.HomeView{}, err
	}
	s.store(ctx, key, hv)
	return hv, nil
}

func (s *CatalogService) Genres(ctx context.Context) ([]domain.Named, error) {
	return s.named(ctx, "genres", s.api.Genres)
}

func (s *CatalogService) Platforms(ctx context.Context) ([]domain.Named, error) {
	return s.named(ctx, "platforms", s.api.Platforms)
}

func (s *CatalogService) named(ctx context.Context, key string, fetch func(context.Context) ([]domain.Named, error)) ([]domain.Named, error) {
	var out []domain.Named
	if s.cached(ctx, key, &out) {
		return out, nil
	}
	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, out)
	return out, nil
}

func (s *CatalogService) games(ctx context.Context, params map[string]string) (domain.GamesPage, error) {
	key := browseCacheKey(params)
	var page domain.GamesPage
	if s.cached(ctx, key, &page) {
		return page, nil
	}
	page, err := s.api.Games(ctx, params)
	if err != nil {
		return domain.GamesPage{}, err
	}
	s.store(ctx, key, page)
	return page, nil
}

// cached and store treat the cache as optional; errors only cost a miss.
func (s *CatalogService) cached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	return ok
}

func (s *CatalogService) store(ctx context.Context, key string, v any) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}
