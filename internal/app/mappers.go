package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gamecatalog/internal/domain"
)

const (
	defaultOrdering = "-rating"
	defaultPageSize = 30
	maxPageSize     = 40
	minYear         = 1990

	// PC, PlayStation and Xbox families.
	parentPlatforms = "1,2,3"
)

var allowedOrderings = map[string]bool{
	"-rating": true, "rating": true,
	"-released": true, "released": true,
	"-metacritic": true, "metacritic": true,
	"-added": true,
}

// browseParams maps the filter panel onto catalog query parameters.
func browseParams(q domain.BrowseQuery, now time.Time) (map[string]string, error) {
	ordering := q.Ordering
	if ordering == "" {
		ordering = defaultOrdering
	}
	if !allowedOrderings[ordering] {
		return nil, fmt.Errorf("ordering %q: %w", ordering, domain.ErrInvalidArgument)
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	p := map[string]string{
		"ordering":         ordering,
		"page":             strconv.Itoa(page),
		"page_size":        strconv.Itoa(size),
		"parent_platforms": parentPlatforms,
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		p["search"] = s
		p["search_exact"] = "false"
	}
	if q.Genre != "" {
		p["genres"] = q.Genre
	}
	if q.Platform != "" {
		p["platforms"] = q.Platform
	}
	if q.Year != 0 {
		if q.Year < minYear || q.Year > now.Year() {
			return nil, fmt.Errorf("year %d outside %d..%d: %w", q.Year, minYear, now.Year(), domain.ErrInvalidArgument)
		}
		p["dates"] = fmt.Sprintf("%d-01-01,%d-12-31", q.Year, q.Year)
	}
	return p, nil
}

// homeSections builds the three landing-page queries relative to now.
func homeSections(now time.Time) (popular, newReleases, topRated map[string]string) {
	day := func(t time.Time) string { return t.Format("2006-01-02") }
	popular = map[string]string{
		"ordering":  "-added",
		"page_size": "10",
		"dates":     fmt.Sprintf("%d-01-01,%d-12-31", now.Year()-1, now.Year()),
	}
	newReleases = map[string]string{
		"ordering":  "-released",
		"page_size": "10",
		"dates":     day(now.AddDate(0, -1, 0)) + "," + day(now),
	}
	topRated = map[string]string{
		"ordering":   "-rating",
		"page_size":  "10",
		"metacritic": "80,100",
	}
	return
}

func browseCacheKey(p map[string]string) string {
	return fmt.Sprintf("games:%s:%s:%s:%s:%s:%s:%s",
		p["search"], p["genres"], p["platforms"], p["dates"], p["ordering"], p["page"], p["page_size"])
}
