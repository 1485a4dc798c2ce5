package domain

type Named struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type Game struct {
	ID              int      `json:"id"`
	Slug            string   `json:"slug"`
	Name            string   `json:"name"`
	Released        string   `json:"released,omitempty"`
	BackgroundImage string   `json:"backgroundImage,omitempty"`
	Rating          float64  `json:"rating"`
	Metacritic      *int     `json:"metacritic,omitempty"`
	Genres          []Named  `json:"genres,omitempty"`
	Platforms       []Named  `json:"platforms,omitempty"`
	Description     string   `json:"description,omitempty"`
	Website         string   `json:"website,omitempty"`
	StoreURLs       []string `json:"storeUrls,omitempty"`
	SteamAppID      string   `json:"steamAppId,omitempty"`
}

type Screenshot struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
}

type GamesPage struct {
	Count   int    `json:"count"`
	Page    int    `json:"page"`
	HasNext bool   `json:"hasNext"`
	Search  string `json:"search,omitempty"` // effective search term after alias fallback
	Items   []Game `json:"items"`
}

// BrowseQuery mirrors the catalog's filter panel.
type BrowseQuery struct {
	Search   string
	Genre    string
	Platform string
	Year     int
	Ordering string
	Page     int
	PageSize int
}

type HomeView struct {
	Popular     []Game `json:"popular"`
	NewReleases []Game `json:"newReleases"`
	TopRated    []Game `json:"topRated"`
}

type GameDetail struct {
	Game        Game         `json:"game"`
	Screenshots []Screenshot `json:"screenshots"`
}
