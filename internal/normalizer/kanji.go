package normalizer

// kanjiDigits maps the basic kanji digits used in chome and jo numbering.
var kanjiDigits = map[rune]int{
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9,
}

// numKanji renders 1-10, the only values the dataset spells in kanji on
// the arabic side of the dual-encoding probe.
var numKanji = map[int]string{
	1: "一", 2: "二", 3: "三", 4: "四", 5: "五",
	6: "六", 7: "七", 8: "八", 9: "九", 10: "十",
}

// KanjiToNumber converts a kanji numeral string to its integer value.
// Only the 1-48 range is supported, which covers every chome and jo
// number observed in the nationwide dataset. The second return value
// is false when the string is not a convertible kanji numeral.
func KanjiToNumber(s string) (int, bool) {
	runes := []rune(s)
	switch len(runes) {
	case 1:
		if runes[0] == '十' {
			return 10, true
		}
		if d, ok := kanjiDigits[runes[0]]; ok {
			return d, true
		}
	case 2:
		// 十X: 11-19
		if runes[0] == '十' {
			if d, ok := kanjiDigits[runes[1]]; ok {
				return 10 + d, true
			}
		}
		// X十: 20, 30, 40
		if runes[1] == '十' {
			if d, ok := kanjiDigits[runes[0]]; ok {
				if n := d * 10; n <= 48 {
					return n, true
				}
			}
		}
	case 3:
		// X十Y: 21-48
		if runes[1] == '十' {
			tens, okT := kanjiDigits[runes[0]]
			ones, okO := kanjiDigits[runes[2]]
			if okT && okO {
				if n := tens*10 + ones; n <= 48 {
					return n, true
				}
			}
		}
	}
	return 0, false
}

// NumberToKanji converts 1-10 to its kanji spelling. Larger values are
// never needed on the reverse probe: the dataset spells multi-digit
// chome numbers in arabic.
func NumberToKanji(n int) (string, bool) {
	k, ok := numKanji[n]
	return k, ok
}
