// Package resolver matches a parsed address against the postal index.
// Resolution is a deterministic three-phase scan: exact match, prefix
// fallback with disambiguation, then partial match with catch-all
// entries. Later phases never hand back to earlier ones.
package resolver

import (
	"errors"
	"strings"

	"github.com/masanorih/address2zip/internal/index"
	"github.com/masanorih/address2zip/internal/models"
	"github.com/masanorih/address2zip/internal/normalizer"
)

// ErrNotFound means the address anchored to a known prefecture and city
// but no district-level entry matched in any phase.
var ErrNotFound = errors.New("no matching postal code")

// ErrMalformedAddress means the input could not be anchored to a
// non-empty prefecture and city at all.
var ErrMalformedAddress = errors.New("address has no recognizable prefecture or city")

// Resolve maps a parsed address to its postal code. It is a pure
// function of the parsed address and the index; both failure modes are
// ordinary return values.
func Resolve(parsed models.ParsedAddress, ix *index.Index) (models.Match, error) {
	if parsed.Prefecture == "" || parsed.City == "" {
		return models.Match{}, ErrMalformedAddress
	}

	entries := ix.LookupCity(parsed.Prefecture, parsed.City)
	probes := normalizer.DistrictVariants(parsed.District)
	chome := normalizer.ChomeNumber(parsed.District + parsed.Remainder)

	if v, ok := exactMatch(entries, parsed.District, chome); ok {
		return match(parsed, v), nil
	}
	if v, ok := fallbackMatch(entries, parsed, probes); ok {
		return match(parsed, v), nil
	}
	if v, ok := partialMatch(entries, probes); ok {
		return match(parsed, v), nil
	}
	if v, ok := ix.GenericFallback(parsed.Prefecture, parsed.City); ok {
		return match(parsed, v), nil
	}
	return models.Match{}, ErrNotFound
}

func match(parsed models.ParsedAddress, v index.Variant) models.Match {
	return models.Match{
		PostalCode: v.PostalCode,
		Prefecture: parsed.Prefecture,
		City:       parsed.City,
		District:   v.Text,
	}
}

// exactMatch looks for a Plain entry equal to the district (probing both
// numeral encodings) or a chome range containing the parsed chome
// number. The first candidate in insertion order wins; clean data never
// produces more than one.
func exactMatch(entries []index.Variant, district string, chome int) (index.Variant, bool) {
	probes := normalizer.EncodingVariants(district)
	// The chome suffix is stripped before re-encoding so that the base
	// still strips cleanly when the suffix would turn kanji.
	bases := normalizer.EncodingVariants(normalizer.StripChome(district))

	for _, v := range entries {
		switch v.Kind {
		case index.KindPlain:
			for _, probe := range probes {
				if v.Text == probe {
					return v, true
				}
			}
		case index.KindChomeRange:
			if chome <= 0 || !v.ContainsChome(chome) {
				continue
			}
			for _, base := range bases {
				if v.Text == base {
					return v, true
				}
			}
		}
	}
	return index.Variant{}, false
}

// fallbackMatch collects prefix candidates in either direction and
// applies the disambiguation rules: specific-lot precedence first, then
// village+sub exactness. Leftover ambiguity resolves to the first
// candidate by insertion order.
func fallbackMatch(entries []index.Variant, parsed models.ParsedAddress, probes []string) (index.Variant, bool) {
	candidates := prefixCandidates(entries, probes)
	if len(candidates) == 0 {
		return index.Variant{}, false
	}

	// A specific-lot entry wins only when the address names that exact
	// lot. Otherwise the lot row is excluded entirely, including its
	// Plain sibling, so the catch-all row takes over.
	if hasKind(candidates, index.KindSpecificLot) {
		for _, v := range candidates {
			if v.MatchesLot(parsed.LotNumber) {
				return v, true
			}
		}
		candidates = dropLotRows(candidates)
	}

	if hasKind(candidates, index.KindVillageSubDistrict) {
		for _, probe := range probes {
			for _, v := range candidates {
				if v.MatchesVillageSub(probe) {
					return v, true
				}
			}
		}
		candidates = dropKind(candidates, index.KindVillageSubDistrict)
	}

	if len(candidates) == 0 {
		return index.Variant{}, false
	}
	// Documented tie-break, not a principled choice.
	return candidates[0], true
}

func prefixCandidates(entries []index.Variant, probes []string) []index.Variant {
	var candidates []index.Variant
	seen := make(map[int]bool)
	for _, probe := range probes {
		for i, v := range entries {
			if seen[i] || v.Kind == index.KindGenericFallback {
				continue
			}
			if strings.HasPrefix(v.Text, probe) || strings.HasPrefix(probe, v.Text) {
				seen[i] = true
				candidates = append(candidates, v)
			}
		}
	}
	return candidates
}

func hasKind(candidates []index.Variant, kind index.Kind) bool {
	for _, v := range candidates {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

func dropKind(candidates []index.Variant, kind index.Kind) []index.Variant {
	var kept []index.Variant
	for _, v := range candidates {
		if v.Kind != kind {
			kept = append(kept, v)
		}
	}
	return kept
}

// dropLotRows removes specific-lot candidates together with the Plain
// variants of the same dataset rows.
func dropLotRows(candidates []index.Variant) []index.Variant {
	lotRows := make(map[int]bool)
	for _, v := range candidates {
		if v.Kind == index.KindSpecificLot {
			lotRows[v.Row] = true
		}
	}
	var kept []index.Variant
	for _, v := range candidates {
		if !lotRows[v.Row] {
			kept = append(kept, v)
		}
	}
	return kept
}

// partialMatch scans for substring containment in either direction
// within the city. Only Plain texts are scanned; specialized variants
// share their row's Plain text.
func partialMatch(entries []index.Variant, probes []string) (index.Variant, bool) {
	for _, probe := range probes {
		for _, v := range entries {
			if v.Kind != index.KindPlain || index.IsGenericFallback(v.Text) {
				continue
			}
			if strings.Contains(v.Text, probe) || strings.Contains(probe, v.Text) {
				return v, true
			}
		}
	}
	return index.Variant{}, false
}
