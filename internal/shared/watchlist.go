package shared

import "strings"

// WatchEntry is one title tracked by the price watch, with its Steam app id
// when known.
type WatchEntry struct {
	Title      string
	SteamAppID string
}

// DefaultWatchlist is used when WATCHLIST is unset.
var DefaultWatchlist = []WatchEntry{
	{Title: "Portal 2", SteamAppID: "620"},
	{Title: "Counter-Strike 2", SteamAppID: "730"},
	{Title: "The Witcher 3: Wild Hunt", SteamAppID: "292030"},
	{Title: "Grand Theft Auto V", SteamAppID: "271590"},
	{Title: "Cyberpunk 2077", SteamAppID: "1091500"},
	{Title: "Halo Infinite", SteamAppID: "1240440"},
	{Title: "Starfield", SteamAppID: "1716740"},
	{Title: "Hades", SteamAppID: "1145360"},
	{Title: "World of Warcraft"},
	{Title: "League of Legends"},
}

// ParseWatchlist reads "Title#appid;Other Title" into entries. Blank items
// are skipped.
func ParseWatchlist(s string) []WatchEntry {
	var out []WatchEntry
	for _, item := range strings.Split(s, ";") {
		title, app, _ := strings.Cut(item, "#")
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		out = append(out, WatchEntry{Title: title, SteamAppID: strings.TrimSpace(app)})
	}
	return out
}
