// internal/amenity/classifier.go
package amenity

import (
	"regexp"
	"strings"

	"github.com/floritflats/opsboard/internal/domain"
	"github.com/floritflats/opsboard/internal/textnorm"
)

// rule is one (predicate, key) pair. Rules are evaluated in declaration
// order and the first match wins; several patterns are subsets of later
// ones, so the order is load-bearing.
type rule struct {
	match func(s string) bool
	key   domain.AmenityKey
}

func contains(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if !strings.Contains(s, sub) {
				return false
			}
		}
		return true
	}
}

func anyOf(preds ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}

var teWord = regexp.MustCompile(`\bte\b`)

var rules = []rule{
	{contains("tassimo"), domain.AmenityCafeTassimo},
	{anyOf(contains("dolce", "gusto"), contains("dolcegusto")), domain.AmenityCafeDolceGusto},
	{anyOf(contains("nespresso"), contains("capsula", "colombia")), domain.AmenityCafeNespresso},
	{contains("molido", "cafe"), domain.AmenityCafeMolido},
	{func(s string) bool {
		// hand gel must fall through to the jabon/manos rule
		return strings.Contains(s, "gel") && strings.Contains(s, "duch") && !strings.Contains(s, "manos")
	}, domain.AmenityGelDucha},
	{anyOf(contains("champu"), contains("shampoo")), domain.AmenityChampu},
	{func(s string) bool {
		return (strings.Contains(s, "jabon") || strings.Contains(s, "gel")) && strings.Contains(s, "manos")
	}, domain.AmenityJabonManos},
	{contains("azucar"), domain.AmenityAzucar},
	{anyOf(contains("infus"), teWord.MatchString), domain.AmenityTeInfusion},
	{anyOf(contains("insectic"), contains("mosquit"), contains("cucarach"), contains("hormig")), domain.AmenityInsecticida},
	{anyOf(contains("deterg"), contains("lavadora")), domain.AmenityDetergente},
	{contains("vinagre"), domain.AmenityVinagre},
	{contains("abrillantador"), domain.AmenityAbrillantador},
	{contains("sal", "lavavaj"), domain.AmenitySalLavavajillas},
	{contains("sal"), domain.AmenitySalMesa},
	{contains("escoba"), domain.AmenityEscoba},
	{anyOf(contains("fregona"), contains("mocho"), contains("mopa")), domain.AmenityFregona},
}

// Classify maps a free-text product name to its canonical amenity key.
// Returns ("", false) when no rule matches; callers must route those rows
// to the unclassified audit bucket instead of dropping them.
func Classify(productName string) (domain.AmenityKey, bool) {
	s := textnorm.Normalize(productName)
	if s == "" {
		return "", false
	}
	for _, r := range rules {
		if r.match(s) {
			return r.key, true
		}
	}
	return "", false
}

// StockLine is one raw (location, product, quantity) line from a stock
// export, before classification.
type StockLine struct {
	Almacen  string
	Producto string
	Cantidad float64
}

// ClassifyStock classifies raw stock lines and aggregates quantities per
// (warehouse, amenity). Lines matching no rule come back in the audit
// slice, preserving input order.
func ClassifyStock(lines []StockLine) ([]domain.StockObservation, []domain.UnclassifiedProduct) {
	type cell struct {
		almacen string
		key     domain.AmenityKey
	}
	totals := make(map[cell]float64)
	var order []cell
	var audit []domain.UnclassifiedProduct

	for _, l := range lines {
		key, ok := Classify(l.Producto)
		if !ok {
			audit = append(audit, domain.UnclassifiedProduct{
				Almacen:  l.Almacen,
				Producto: l.Producto,
				Cantidad: l.Cantidad,
			})
			continue
		}
		c := cell{almacen: l.Almacen, key: key}
		if _, seen := totals[c]; !seen {
			order = append(order, c)
		}
		totals[c] += l.Cantidad
	}

	obs := make([]domain.StockObservation, 0, len(order))
	for _, c := range order {
		obs = append(obs, domain.StockObservation{Almacen: c.almacen, Key: c.key, Cantidad: totals[c]})
	}
	return obs, audit
}
