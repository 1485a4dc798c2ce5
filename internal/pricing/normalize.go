package pricing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeTitle folds a title for cross-vendor comparison: lowercase,
// diacritics removed, apostrophes dropped, any other non-alphanumeric rune
// treated as a word break, whitespace collapsed.
//
//	"Counter-Strike!"   -> "counter strike"
//	"Assassin's Creed"  -> "assassins creed"
//	"Pokémon  Legends"  -> "pokemon legends"
func NormalizeTitle(title string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		title,
	)
	if err != nil {
		folded = title
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		switch {
		case r == '\'' || r == '’' || r == '`':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
