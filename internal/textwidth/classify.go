// Package textwidth measures, truncates and pads strings by the number of
// terminal columns they occupy rather than by bytes or runes.
package textwidth

import "sort"

// zwj joins emoji into a single compound glyph.
const zwj = '\u200d'

type runeRange struct {
	lo, hi rune
}

// IsZeroWidth reports whether r renders with no width of its own: the
// U+200B..U+200F block (ZWJ included), U+2060..U+206F and the BOM.
func IsZeroWidth(r rune) bool {
	return (r >= 0x200B && r <= 0x200F) ||
		(r >= 0x2060 && r <= 0x206F) ||
		r == 0xFEFF
}

var combining = []runeRange{
	{0x0300, 0x036F}, // combining diacritical marks
	{0x1AB0, 0x1AFF}, // extended
	{0x1DC0, 0x1DFF}, // supplement
	{0x20D0, 0x20FF}, // for symbols
	{0xFE20, 0xFE2F}, // half marks
}

// IsCombining reports whether r is a combining mark that attaches to the
// preceding character.
func IsCombining(r rune) bool {
	for _, rr := range combining {
		if r >= rr.lo && r <= rr.hi {
			return true
		}
	}
	return false
}

// wide lists East Asian Wide and Fullwidth ranges, sorted and
// non-overlapping. Entries below U+2E80 are emoji-presentation symbols.
var wide = []runeRange{
	{0x1100, 0x115F}, // Hangul Jamo initial consonants
	{0x231A, 0x231B}, // watch, hourglass
	{0x2329, 0x232A}, // angle brackets
	{0x23E9, 0x23EC}, // media controls
	{0x23F0, 0x23F0},
	{0x23F3, 0x23F3},
	{0x25FD, 0x25FE},
	{0x2614, 0x2615},
	{0x2648, 0x2653}, // zodiac
	{0x267F, 0x267F},
	{0x2693, 0x2693},
	{0x26A1, 0x26A1},
	{0x26AA, 0x26AB},
	{0x26BD, 0x26BE},
	{0x26C4, 0x26C5},
	{0x26CE, 0x26CE},
	{0x26D4, 0x26D4},
	{0x26EA, 0x26EA},
	{0x26F2, 0x26F3},
	{0x26F5, 0x26F5},
	{0x26FA, 0x26FA},
	{0x26FD, 0x26FD},
	{0x2705, 0x2705},
	{0x270A, 0x270B},
	{0x2728, 0x2728},
	{0x274C, 0x274C},
	{0x274E, 0x274E},
	{0x2753, 0x2755},
	{0x2757, 0x2757},
	{0x2795, 0x2797},
	{0x27B0, 0x27B0},
	{0x27BF, 0x27BF},
	{0x2B1B, 0x2B1C},
	{0x2B50, 0x2B50},
	{0x2B55, 0x2B55},
	{0x2E80, 0x303E},   // CJK radicals, Kangxi, ideographic description, CJK symbols
	{0x3041, 0x33FF},   // Hiragana through CJK compatibility
	{0x3400, 0x4DBF},   // CJK extension A
	{0x4E00, 0x9FFF},   // CJK unified ideographs
	{0xA000, 0xA4CF},   // Yi
	{0xA960, 0xA97F},   // Hangul Jamo extended A
	{0xAC00, 0xD7A3},   // Hangul syllables
	{0xF900, 0xFAFF},   // CJK compatibility ideographs
	{0xFE10, 0xFE19},   // vertical forms
	{0xFE30, 0xFE6F},   // CJK compatibility and small forms
	{0xFF00, 0xFF60},   // fullwidth forms
	{0xFFE0, 0xFFE6},   // fullwidth signs
	{0x16FE0, 0x16FE4}, // ideographic symbols
	{0x17000, 0x18CFF}, // Tangut
	{0x1B000, 0x1B2FF}, // Kana supplement and extended
	{0x1F004, 0x1F004},
	{0x1F0CF, 0x1F0CF},
	{0x1F18E, 0x1F18E},
	{0x1F191, 0x1F19A},
	{0x1F200, 0x1F202},
	{0x1F210, 0x1F23B},
	{0x1F240, 0x1F248},
	{0x1F250, 0x1F251},
	{0x1F260, 0x1F265},
	{0x1F300, 0x1F64F}, // pictographs, emoticons
	{0x1F680, 0x1F6FF}, // transport and map
	{0x1F7E0, 0x1F7EB}, // colored circles and squares
	{0x1F90C, 0x1F9FF}, // supplemental symbols and pictographs
	{0x1FA70, 0x1FAFF}, // symbols and pictographs extended A
	{0x20000, 0x2FFFD}, // CJK extension B..F
	{0x30000, 0x3FFFD}, // CJK extension G..
}

// IsWide reports whether r occupies two terminal columns.
func IsWide(r rune) bool {
	if r < wide[0].lo {
		return false
	}
	i := sort.Search(len(wide), func(i int) bool { return wide[i].hi >= r })
	return i < len(wide) && r >= wide[i].lo
}
