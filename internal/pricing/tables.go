package pricing

import "gamecatalog/internal/domain"

// StoreInfo is the display metadata of a deal-aggregator store id.
type StoreInfo struct {
	Name string
	Icon string
}

// steamStoreID is the deal aggregator's id for the Steam storefront.
const steamStoreID = 1

var storeInfo = map[int]StoreInfo{
	1:  {Name: "Steam", Icon: "https://www.cheapshark.com/img/stores/icons/0.png"},
	2:  {Name: "GamersGate", Icon: "https://www.cheapshark.com/img/stores/icons/1.png"},
	3:  {Name: "GreenManGaming", Icon: "https://www.cheapshark.com/img/stores/icons/2.png"},
	4:  {Name: "Amazon", Icon: "https://www.cheapshark.com/img/stores/icons/3.png"},
	5:  {Name: "GameStop", Icon: "https://www.cheapshark.com/img/stores/icons/4.png"},
	7:  {Name: "GOG", Icon: "https://www.cheapshark.com/img/stores/icons/6.png"},
	8:  {Name: "Origin", Icon: "https://www.cheapshark.com/img/stores/icons/7.png"},
	11: {Name: "Humble Store", Icon: "https://www.cheapshark.com/img/stores/icons/11.png"},
	13: {Name: "Epic Games Store", Icon: "https://www.cheapshark.com/img/stores/icons/13.png"},
	15: {Name: "Fanatical", Icon: "https://www.cheapshark.com/img/stores/icons/15.png"},
}

// LookupStore reports the metadata for a store id; unknown ids are not surfaced.
func LookupStore(id int) (StoreInfo, bool) {
	s, ok := storeInfo[id]
	return s, ok
}

type exclusive struct {
	Store string
	Icon  string
	URL   string
}

// Keyed by exact display title. Lookup is case-sensitive.
var exclusives = map[string]exclusive{
	"World of Warcraft": {
		Store: "Battle.net",
		Icon:  "/store-icons/battlenet.png",
		URL:   "https://worldofwarcraft.blizzard.com/en-gb/",
	},
	"League of Legends": {
		Store: "Riot Games",
		Icon:  "/store-icons/riot.png",
		URL:   "https://www.leagueoflegends.com",
	},
}

const (
	exclusiveLabel    = "Available Here"
	subscriptionStore = "Xbox Game Pass"
	subscriptionIcon  = "/api/placeholder/32/32"
	subscriptionLabel = "Included with subscription"
	subscriptionURL   = "https://www.xbox.com/xbox-game-pass"
	unavailableStore  = "Not Available"
	unavailableIcon   = "/api/placeholder/32/32"
	unavailableLabel  = "No store listings found"
)

// ExclusiveOffer returns the override offer when title is sold through a
// single non-aggregated storefront.
func ExclusiveOffer(title string) (domain.StoreOffer, bool) {
	ex, ok := exclusives[title]
	if !ok {
		return domain.StoreOffer{}, false
	}
	return domain.StoreOffer{
		StoreName: ex.Store,
		StoreIcon: ex.Icon,
		Price:     domain.Label(exclusiveLabel),
		URL:       ex.URL,
		Kind:      domain.OfferExclusive,
	}, true
}

func subscriptionOffer() domain.StoreOffer {
	return domain.StoreOffer{
		StoreName: subscriptionStore,
		StoreIcon: subscriptionIcon,
		Price:     domain.Label(subscriptionLabel),
		URL:       subscriptionURL,
		Kind:      domain.OfferSubscription,
	}
}

func unavailableOffer() domain.StoreOffer {
	return domain.StoreOffer{
		StoreName: unavailableStore,
		StoreIcon: unavailableIcon,
		Price:     domain.Label(unavailableLabel),
		Kind:      domain.OfferUnavailable,
	}
}

// IsUnavailable reports whether offers is the sentinel "nothing found" result.
func IsUnavailable(offers []domain.StoreOffer) bool {
	return len(offers) == 1 && offers[0].Kind == domain.OfferUnavailable
}
