package index

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// Kind classifies a dataset row's district text. Every row registers a
// Plain variant; rows with a recognized parenthetical notation register
// one specialized variant on top of it.
type Kind int

const (
	KindPlain Kind = iota
	KindChomeRange
	KindSpecificLot
	KindVillageSubDistrict
	KindGenericFallback
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindChomeRange:
		return "chome_range"
	case KindSpecificLot:
		return "specific_lot"
	case KindVillageSubDistrict:
		return "village_sub_district"
	case KindGenericFallback:
		return "generic_fallback"
	}
	return "unknown"
}

// Variant is one classified entry of a city's district list. Text is the
// cleaned district name (parentheticals removed, widths folded); the
// specialized fields are populated according to Kind. Row links back to
// the originating dataset row so sibling variants of the same row can be
// recognized during disambiguation.
type Variant struct {
	Kind       Kind
	Text       string
	Start, End int    // chome range bounds, inclusive
	Lot        string // dedicated lot number
	Village    string
	Sub        string
	PostalCode string
	Row        int
}

var (
	chomeRangeRe = regexp.MustCompile(`\(([0-9]+)[〜~‐−-]([0-9]+)丁目\)`)
	chomeEnumRe  = regexp.MustCompile(`\(([0-9]+)[、,]([0-9]+)丁目\)`)
	lotParenRe   = regexp.MustCompile(`\(([0-9]+)番地\)`)
	villageSubRe = regexp.MustCompile(`^(.+村)\((.+)\)$`)
	parenRe      = regexp.MustCompile(`\([^)]*\)`)
)

// genericFallbackTexts are the dataset's catch-all district spellings,
// in lookup priority order.
var genericFallbackTexts = []string{
	"以下に掲載がない場合",
	"その他",
	"該当地域なし",
}

// CleanDistrict folds widths and removes parenthetical qualifiers from a
// raw district text, yielding the Plain form.
func CleanDistrict(raw string) string {
	folded := width.Fold.String(raw)
	return strings.TrimSpace(parenRe.ReplaceAllString(folded, ""))
}

// IsGenericFallback reports whether a cleaned district text is one of
// the dataset's "no other listing applies" catch-all entries.
func IsGenericFallback(text string) bool {
	for _, g := range genericFallbackTexts {
		if text == g {
			return true
		}
	}
	return false
}

// ContainsChome reports whether the variant is a chome range covering n.
func (v Variant) ContainsChome(n int) bool {
	return v.Kind == KindChomeRange && n >= v.Start && n <= v.End
}

// MatchesLot reports whether the variant is the dedicated entry for the
// given lot number. The lot has to match exactly; a specific-lot entry
// is never a default.
func (v Variant) MatchesLot(lot string) bool {
	return v.Kind == KindSpecificLot && lot != "" && v.Lot == lot
}

// MatchesVillageSub reports whether district is exactly the concatenated
// village+sub form of this variant. A mismatch on either token excludes
// the variant; there is no partial credit.
func (v Variant) MatchesVillageSub(district string) bool {
	if v.Kind != KindVillageSubDistrict {
		return false
	}
	rest, ok := strings.CutPrefix(district, v.Village)
	return ok && rest == v.Sub
}
