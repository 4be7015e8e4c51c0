// Package index builds the read-only hierarchical postal index:
// prefecture → city → ordered district variants. Classification of the
// dataset's parenthetical notations happens once here, so the resolver
// works against a closed set of variant kinds instead of re-matching
// strings per query.
package index

import (
	"strconv"

	"golang.org/x/text/width"

	"github.com/masanorih/address2zip/internal/models"
)

// Index is immutable after Build and safe to share by reference across
// any number of concurrent resolutions.
type Index struct {
	cities    map[string]map[string][]Variant
	cityOrder map[string][]string
	rows      int
}

// Build constructs the index from a fully-materialized dataset snapshot.
// Rows with an empty district are skipped. Insertion order is preserved
// within each city; it is the documented tie-break for ambiguous matches.
func Build(rows []models.Row) *Index {
	ix := &Index{
		cities:    make(map[string]map[string][]Variant),
		cityOrder: make(map[string][]string),
	}

	for i, row := range rows {
		if row.District == "" || row.Prefecture == "" || row.City == "" {
			continue
		}

		text := CleanDistrict(row.District)
		if text == "" {
			continue
		}

		byCity, ok := ix.cities[row.Prefecture]
		if !ok {
			byCity = make(map[string][]Variant)
			ix.cities[row.Prefecture] = byCity
		}
		if _, ok := byCity[row.City]; !ok {
			ix.cityOrder[row.Prefecture] = append(ix.cityOrder[row.Prefecture], row.City)
		}

		// A row always contributes its Plain form, even when a
		// specialized variant is derived below.
		variants := []Variant{{
			Kind:       KindPlain,
			Text:       text,
			PostalCode: row.PostalCode,
			Row:        i,
		}}
		if v, ok := classify(row.District, text); ok {
			v.PostalCode = row.PostalCode
			v.Row = i
			variants = append(variants, v)
		}

		byCity[row.City] = append(byCity[row.City], variants...)
		ix.rows++
	}
	return ix
}

// classify detects the specialized notations in a raw district text.
// Exactly one specialized variant is derived per row at most.
func classify(raw, cleaned string) (Variant, bool) {
	folded := width.Fold.String(raw)

	if IsGenericFallback(cleaned) {
		return Variant{Kind: KindGenericFallback, Text: cleaned}, true
	}

	if m := chomeRangeRe.FindStringSubmatch(folded); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		return Variant{Kind: KindChomeRange, Text: cleaned, Start: start, End: end}, true
	}

	// Comma-separated enumeration collapsed to an inclusive min-max
	// range. The dataset only ever lists two values this way; a row
	// with more values falls through to its Plain variant.
	if m := chomeEnumRe.FindStringSubmatch(folded); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		if a > b {
			a, b = b, a
		}
		return Variant{Kind: KindChomeRange, Text: cleaned, Start: a, End: b}, true
	}

	if m := lotParenRe.FindStringSubmatch(folded); m != nil {
		return Variant{Kind: KindSpecificLot, Text: cleaned, Lot: m[1]}, true
	}

	if m := villageSubRe.FindStringSubmatch(folded); m != nil {
		return Variant{
			Kind:    KindVillageSubDistrict,
			Text:    m[1] + m[2],
			Village: m[1],
			Sub:     m[2],
		}, true
	}

	return Variant{}, false
}

// LookupCity returns the ordered variant list for a city, or nil when
// the prefecture or city is unknown.
func (ix *Index) LookupCity(prefecture, city string) []Variant {
	byCity, ok := ix.cities[prefecture]
	if !ok {
		return nil
	}
	return byCity[city]
}

// GenericFallback finds a catch-all entry, first within the city, then
// across the whole prefecture in city insertion order.
func (ix *Index) GenericFallback(prefecture, city string) (Variant, bool) {
	if v, ok := firstGeneric(ix.LookupCity(prefecture, city)); ok {
		return v, ok
	}
	for _, c := range ix.cityOrder[prefecture] {
		if c == city {
			continue
		}
		if v, ok := firstGeneric(ix.cities[prefecture][c]); ok {
			return v, ok
		}
	}
	return Variant{}, false
}

func firstGeneric(variants []Variant) (Variant, bool) {
	for _, g := range genericFallbackTexts {
		for _, v := range variants {
			if v.Kind == KindGenericFallback && v.Text == g {
				return v, true
			}
		}
	}
	return Variant{}, false
}

// Rows reports how many dataset rows were indexed. An empty index is a
// startup fault, not a per-request condition.
func (ix *Index) Rows() int {
	return ix.rows
}
