package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// hebrewLatin romanizes Hebrew letters; final forms share their base letter.
var hebrewLatin = map[rune]string{
	'א': "'", 'ב': "b", 'ג': "g", 'ד': "d", 'ה': "h", 'ו': "v", 'ז': "z",
	'ח': "ch", 'ט': "t", 'י': "y", 'כ': "k", 'ך': "k", 'ל': "l", 'מ': "m",
	'ם': "m", 'נ': "n", 'ן': "n", 'ס': "s", 'ע': "'", 'פ': "p", 'ף': "p",
	'צ': "ts", 'ץ': "ts", 'ק': "q", 'ר': "r", 'ש': "sh", 'ת': "t",
}

var punctASCII = map[rune]string{
	'‘': "'", '’': "'", '“': `"`, '”': `"`, '–': "-", '—': "-", '…': "...",
	'\u00a0': " ", '׳': "'", '״': `"`, '־': "-",
}

// toASCII transliterates s for the Latin-only PDF font: accents and Hebrew
// points are stripped, Hebrew letters are romanized, and anything left
// outside printable ASCII becomes '?'.
func toASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	var sb strings.Builder
	sb.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r >= 0x20 && r < 0x7f:
			sb.WriteRune(r)
		case r == '\t' || r == '\n' || r == '\r':
			sb.WriteByte(' ')
		default:
			if s, ok := hebrewLatin[r]; ok {
				sb.WriteString(s)
			} else if s, ok := punctASCII[r]; ok {
				sb.WriteString(s)
			} else {
				sb.WriteByte('?')
			}
		}
	}
	return sb.String()
}
