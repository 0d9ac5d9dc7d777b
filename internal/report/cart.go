// internal/report/cart.go
package report

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/floritflats/opsboard/internal/domain"
)

var itemRx = regexp.MustCompile(`(?i)^\s*(.*?)\s*x\s*([0-9]+)\s*$`)

// ParseItemList parses a rendered list back into (product, qty) pairs:
// "Detergente x3, Insecticida x1" -> [(Detergente,3), (Insecticida,1)].
// Fragments without a recognizable "xN" suffix count as quantity 1.
func ParseItemList(s string) []domain.CartTotal {
	var out []domain.CartTotal
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m := itemRx.FindStringSubmatch(part); m != nil {
			qty, _ := strconv.Atoi(m[2])
			if name := strings.TrimSpace(m[1]); name != "" {
				out = append(out, domain.CartTotal{Producto: name, Total: qty})
			}
			continue
		}
		out = append(out, domain.CartTotal{Producto: part, Total: 1})
	}
	return out
}

// preparableStates: only these days are worth loading the cart for.
var preparableStates = map[string]bool{
	domain.EstadoEntrada:       true,
	domain.EstadoEntradaSalida: true,
	domain.EstadoVacio:         true,
}

// BuildCart expands the operativa's replenishment lists into per-apartment
// drop items plus per-product totals for preparing the restock cart.
// Totals sort by quantity descending then product name; items by zone,
// apartment, product.
func BuildCart(rows []domain.OperativaRow) ([]domain.CartItem, []domain.CartTotal) {
	var items []domain.CartItem
	totals := make(map[string]int)

	for _, r := range rows {
		if !preparableStates[r.Estado] || strings.TrimSpace(r.ListaReponer) == "" {
			continue
		}
		for _, it := range ParseItemList(r.ListaReponer) {
			items = append(items, domain.CartItem{
				Day:         r.Day,
				Zona:        r.Zona,
				Apartamento: r.Apartamento,
				Producto:    it.Producto,
				Cantidad:    it.Total,
			})
			totals[it.Producto] += it.Total
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Zona != b.Zona {
			return a.Zona < b.Zona
		}
		if a.Apartamento != b.Apartamento {
			return a.Apartamento < b.Apartamento
		}
		return a.Producto < b.Producto
	})

	out := make([]domain.CartTotal, 0, len(totals))
	for p, t := range totals {
		out = append(out, domain.CartTotal{Producto: p, Total: t})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Producto < out[j].Producto
	})
	return items, out
}
