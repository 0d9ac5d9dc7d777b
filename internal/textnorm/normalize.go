// internal/textnorm/normalize.go
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	wsRun        = regexp.MustCompile(`\s+`)
	leadingZeros = regexp.MustCompile(`\b0+(\d)`)
	trailingNum  = regexp.MustCompile(`^(.*?[^\d\s])\s*0*(\d+)$`)
	stripMarks   = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// foldAccents removes diacritical marks via NFD decomposition. When the
// transform fails (invalid UTF-8) the input is returned untouched so the
// function stays total.
func foldAccents(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases, trims, strips accents and collapses internal
// whitespace. Total: never fails, empty in means empty out.
func Normalize(s string) string {
	s = foldAccents(strings.TrimSpace(s))
	s = strings.ToLower(s)
	return wsRun.ReplaceAllString(s, " ")
}

// NormalizeKey reduces a column header to a join key: Normalize plus
// removal of separators, so "Fecha_entrada-hora" == "fechaentradahora".
var keySanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func NormalizeKey(s string) string {
	return keySanitizer.Replace(Normalize(s))
}

// CanonicalApartment builds the identity key for an apartment name:
// accent-folded, whitespace-collapsed, uppercased, with leading zeros
// stripped from bare numbers so "Apolo 029" and "APOLO029"-style variants
// converge on "APOLO 29".
func CanonicalApartment(s string) string {
	s = foldAccents(strings.TrimSpace(s))
	s = wsRun.ReplaceAllString(s, " ")
	s = leadingZeros.ReplaceAllString(s, "$1")
	// "APOLO029" style: detach the trailing number and drop its zeros.
	s = trailingNum.ReplaceAllString(s, "$1 $2")
	return strings.ToUpper(s)
}
