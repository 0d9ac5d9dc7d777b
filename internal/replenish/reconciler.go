// internal/replenish/reconciler.go
package replenish

import (
	"github.com/floritflats/opsboard/internal/domain"
)

// Objective selects the replenishment target: up to maximum or only up to
// minimum.
type Objective string

const (
	ObjectiveMax Objective = "max"
	ObjectiveMin Objective = "min"
)

// mergeThresholds deduplicates thresholds by amenity key. Conflicting
// duplicates resolve by taking the max of Minimo and the max of Maximo
// independently, which can synthesize a (min, max) pair that never
// appeared together in the source; that matches upstream behavior and is
// preserved deliberately. First occurrence wins the display name and the
// output order.
func mergeThresholds(thresholds []domain.Threshold) []domain.Threshold {
	byKey := make(map[domain.AmenityKey]int)
	var out []domain.Threshold
	for _, t := range thresholds {
		if i, seen := byKey[t.Key]; seen {
			if t.Minimo > out[i].Minimo {
				out[i].Minimo = t.Minimo
			}
			if t.Maximo > out[i].Maximo {
				out[i].Maximo = t.Maximo
			}
			continue
		}
		byKey[t.Key] = len(out)
		out = append(out, t)
	}
	return out
}

func clip(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// Reconcile computes the dense replenishment grid: one row for every
// (warehouse observed) x (amenity present in thresholds) pair. A missing
// stock line for a known amenity means quantity zero, not unknown, so
// absent stock surfaces as a full deficit. Missing thresholds default to
// 0/0 and deficits are clipped at zero; Maximo < Minimo is never
// validated, malformed rows just clip. When urgentOnly is set only
// below-minimum rows survive, but AReponer is still computed against the
// configured objective.
func Reconcile(obs []domain.StockObservation, thresholds []domain.Threshold, objective Objective, urgentOnly bool) []domain.ReplenishmentRow {
	thr := mergeThresholds(thresholds)

	// distinct warehouses in first-seen order keeps output deterministic
	var warehouses []string
	seen := make(map[string]bool)
	for _, o := range obs {
		if !seen[o.Almacen] {
			seen[o.Almacen] = true
			warehouses = append(warehouses, o.Almacen)
		}
	}

	type cell struct {
		almacen string
		key     domain.AmenityKey
	}
	qty := make(map[cell]float64, len(obs))
	for _, o := range obs {
		qty[cell{o.Almacen, o.Key}] += o.Cantidad
	}

	var out []domain.ReplenishmentRow
	for _, w := range warehouses {
		for _, t := range thr {
			q := qty[cell{w, t.Key}]
			faltan := clip(t.Minimo - q)
			target := t.Maximo
			if objective == ObjectiveMin {
				target = t.Minimo
			}
			row := domain.ReplenishmentRow{
				Almacen:       w,
				Key:           t.Key,
				Amenity:       t.Amenity,
				Cantidad:      q,
				Minimo:        t.Minimo,
				Maximo:        t.Maximo,
				FaltanParaMin: faltan,
				AReponer:      clip(target - q),
				BajoMinimo:    faltan > 0,
			}
			if urgentOnly && !row.BajoMinimo {
				continue
			}
			out = append(out, row)
		}
	}
	return out
}
