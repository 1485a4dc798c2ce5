package app

import "strings"

// Groups of interchangeable search terms. The first entry is the canonical
// title, the rest are the abbreviations players actually type.
var searchAliases = [][]string{
	{"call of duty", "cod"},
	{"counter strike", "cs", "csgo", "counter-strike"},
	{"grand theft auto", "gta"},
	{"player unknowns battlegrounds", "pubg"},
	{"the witcher", "witcher"},
}

// alternateSearch returns the term to retry with when term found nothing.
// Alias phrases are matched on whole words anywhere in term and swapped for
// the first other member of their group, so "gta v" retries as
// "grand theft auto v". The longest matching phrase wins.
func alternateSearch(term string) (string, bool) {
	words := strings.Fields(strings.ToLower(term))
	if len(words) == 0 {
		return "", false
	}
	var (
		best      []string
		bestAt    int
		bestGroup []string
	)
	for _, group := range searchAliases {
		for _, member := range group {
			phrase := strings.Fields(member)
			if len(phrase) <= len(best) {
				continue
			}
			if at := indexWords(words, phrase); at >= 0 {
				best, bestAt, bestGroup = phrase, at, group
			}
		}
	}
	if best == nil {
		return "", false
	}
	matched := strings.Join(best, " ")
	for _, alt := range bestGroup {
		if alt == matched {
			continue
		}
		out := make([]string, 0, len(words))
		out = append(out, words[:bestAt]...)
		out = append(out, alt)
		out = append(out, words[bestAt+len(best):]...)
		return strings.Join(out, " "), true
	}
	return "", false
}

// indexWords reports where phrase occurs as a run of whole words in words, or -1.
func indexWords(words, phrase []string) int {
	for i := 0; i+len(phrase) <= len(words); i++ {
		ok := true
		for j, p := range phrase {
			if words[i+j] != p {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}
