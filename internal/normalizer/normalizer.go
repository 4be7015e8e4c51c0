// Package normalizer canonicalizes free-form Japanese address strings and
// segments them into the prefecture/city/district hierarchy used by the
// postal index. All functions are pure and operate on in-memory strings.
package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/masanorih/address2zip/internal/models"
)

var (
	kanjiChomeRe = regexp.MustCompile(`([一二三四五六七八九十]+)丁目`)
	kanjiJoRe    = regexp.MustCompile(`([一二三四五六七八九十]+)条`)

	arabicChomeRe = regexp.MustCompile(`([0-9]+)丁目`)
	arabicJoRe    = regexp.MustCompile(`([0-9]+)条`)

	specificLotRe = regexp.MustCompile(`([0-9]+)番地$`)
	blockLotRe    = regexp.MustCompile(`[0-9]+[-−][0-9]+[-−]*[0-9]*.*$`)
	banGoRe       = regexp.MustCompile(`[0-9]+番[0-9]+号?.*$`)
	chomeTrailRe  = regexp.MustCompile(`([0-9]+丁目)[0-9]+[-−].*$`)

	chomeNumberRe = regexp.MustCompile(`([0-9]+)丁目`)
	chomeSuffixRe = regexp.MustCompile(`[0-9]+丁目.*$`)
	lotSuffixRe   = regexp.MustCompile(`[0-9]+[-−][0-9]+.*$`)

	baseDistrictRes = []*regexp.Regexp{
		regexp.MustCompile(`^(.*?町)`),
		regexp.MustCompile(`^(.*?新田町)`),
		regexp.MustCompile(`^(.*?大字)`),
	}

	// Building-name tokens that never affect the postal code. Everything
	// from the token to the end of the string is dropped.
	buildingRes = []*regexp.Regexp{
		regexp.MustCompile(`ヒルズ.*$`),
		regexp.MustCompile(`タワー.*$`),
		regexp.MustCompile(`ビル.*$`),
		regexp.MustCompile(`マンション.*$`),
		regexp.MustCompile(`アパート.*$`),
		regexp.MustCompile(`ハイツ.*$`),
		regexp.MustCompile(`コーポ.*$`),
		regexp.MustCompile(`プラザ.*$`),
		regexp.MustCompile(`センター.*$`),
		regexp.MustCompile(`フィナンシャル.*$`),
	}
)

// prefectures is the fixed set of 47 administrative units an address can
// be anchored on. Matching the full names avoids truncating 京都府 at
// the embedded 都.
var prefectures = []string{
	"北海道",
	"青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県",
	"岐阜県", "静岡県", "愛知県", "三重県",
	"滋賀県", "京都府", "大阪府", "兵庫県", "奈良県", "和歌山県",
	"鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県",
	"福岡県", "佐賀県", "長崎県", "熊本県", "大分県", "宮崎県", "鹿児島県",
	"沖縄県",
}

// cityRes is the extraction cascade for the city segment, tried in order.
// The bare 市 pattern is greedy so that city names embedding an earlier
// marker (十日町市, 四日市市, 町田市) are carried through to the final 市.
var cityRes = []*regexp.Regexp{
	regexp.MustCompile(`^.*?市.*?区`),   // 政令指定都市 + ward
	regexp.MustCompile(`^.*?郡.*?[町村]`), // county + town/village
	regexp.MustCompile(`^.*市`),        // plain city, greedy
	regexp.MustCompile(`^.*?区`),       // special ward
	regexp.MustCompile(`^.*?[町村]`),    // standalone town/village
	regexp.MustCompile(`^.*?郡`),       // bare county
}

// NormalizeNumerals folds full-width characters to their half-width
// forms and rewrites kanji chome/jo numerals (1-48) to arabic digits.
// Pure, total and idempotent.
func NormalizeNumerals(s string) string {
	s = width.Fold.String(s)
	s = replaceKanjiNumeral(s, kanjiChomeRe, "丁目")
	s = replaceKanjiNumeral(s, kanjiJoRe, "条")
	return s
}

func replaceKanjiNumeral(s string, re *regexp.Regexp, suffix string) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		kanji := strings.TrimSuffix(m, suffix)
		if n, ok := KanjiToNumber(kanji); ok {
			return strconv.Itoa(n) + suffix
		}
		return m
	})
}

// ArabicToKanji rewrites arabic jo/chome numbers (1-10) back to kanji.
// The dataset stores Sapporo-style districts in kanji, so both encodings
// have to be probed against the index.
func ArabicToKanji(s string) string {
	s = replaceArabicNumeral(s, arabicJoRe, "条")
	s = replaceArabicNumeral(s, arabicChomeRe, "丁目")
	return s
}

func replaceArabicNumeral(s string, re *regexp.Regexp, suffix string) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.Atoi(strings.TrimSuffix(m, suffix))
		if err != nil {
			return m
		}
		if k, ok := NumberToKanji(n); ok {
			return k + suffix
		}
		return m
	})
}

// StripBuildingAndLot removes trailing block/lot numbers and building
// names, which never affect the postal code. A terminal "N番地" token is
// the one exception: some districts carry a dedicated code for a single
// lot, so the token is kept in the text and returned as a tag.
func StripBuildingAndLot(s string) (string, string) {
	if m := specificLotRe.FindStringSubmatch(s); m != nil {
		return s, m[1]
	}

	s = blockLotRe.ReplaceAllString(s, "")
	s = banGoRe.ReplaceAllString(s, "")
	s = chomeTrailRe.ReplaceAllString(s, "$1")

	for _, re := range buildingRes {
		s = re.ReplaceAllString(s, "")
	}
	return s, ""
}

// Normalize canonicalizes an address string: whitespace trim, numeral
// normalization, building/lot stripping, 大字/字 removal and ケ→ヶ
// folding. The returned string is what gets segmented and reported back
// to the caller as the normalized address.
func Normalize(address string) string {
	s, _ := normalize(address)
	return s
}

func normalize(address string) (string, string) {
	s := strings.TrimSpace(address)
	s = NormalizeNumerals(s)
	s, lot := StripBuildingAndLot(s)
	s = strings.ReplaceAll(s, "大字", "")
	s = strings.ReplaceAll(s, "字", "")
	s = strings.ReplaceAll(s, "ケ", "ヶ")
	return strings.TrimSpace(s), lot
}

// Parse normalizes an address and segments it into prefecture, city,
// district and remainder. It never fails on non-empty input: segments
// that cannot be anchored are left empty and the resolver decides what
// that means.
func Parse(address string) models.ParsedAddress {
	s, lot := normalize(address)

	var parsed models.ParsedAddress
	for _, p := range prefectures {
		if strings.HasPrefix(s, p) {
			parsed.Prefecture = p
			s = s[len(p):]
			break
		}
	}
	if parsed.Prefecture == "" {
		parsed.District = s
		return parsed
	}

	for _, re := range cityRes {
		if m := re.FindString(s); m != "" {
			parsed.City = m
			s = s[len(m):]
			break
		}
	}

	parsed.District = s
	parsed.LotNumber = lot
	if lot != "" {
		parsed.Remainder = lot + "番地"
	}
	return parsed
}

// DistrictVariants generates the staged probe list for a district, in
// search priority order: the text itself, its kanji numeral encoding,
// chome-stripped forms, lot-stripped form, and the base district name.
func DistrictVariants(district string) []string {
	district = strings.TrimSpace(district)
	if district == "" {
		return nil
	}

	var variants []string
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		for _, seen := range variants {
			if seen == v {
				return
			}
		}
		variants = append(variants, v)
	}

	add(district)
	add(ArabicToKanji(district))

	if stripped := chomeSuffixRe.ReplaceAllString(district, ""); stripped != district {
		add(stripped)
		add(ArabicToKanji(stripped))
	}
	if stripped := lotSuffixRe.ReplaceAllString(district, ""); stripped != district {
		add(stripped)
	}

	for _, re := range baseDistrictRes {
		if m := re.FindStringSubmatch(district); m != nil && m[1] != district {
			add(m[1])
			break
		}
	}
	return variants
}

// EncodingVariants is the subset of DistrictVariants that only re-encodes
// numerals without truncating: the forms eligible for exact matching.
func EncodingVariants(district string) []string {
	district = strings.TrimSpace(district)
	if district == "" {
		return nil
	}
	variants := []string{district}
	if k := ArabicToKanji(district); k != district {
		variants = append(variants, k)
	}
	return variants
}

// ChomeNumber extracts the chome number from a district string, or 0 if
// there is none. Kanji numerals are assumed already normalized.
func ChomeNumber(s string) int {
	m := chomeNumberRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// StripChome removes a chome suffix and anything after it.
func StripChome(s string) string {
	return strings.TrimSpace(chomeSuffixRe.ReplaceAllString(s, ""))
}
