// internal/masters/tables.go
package masters

import (
	"github.com/floritflats/opsboard/internal/amenity"
	"github.com/floritflats/opsboard/internal/domain"
	"github.com/floritflats/opsboard/internal/tabular"
	"github.com/floritflats/opsboard/internal/textnorm"
)

// zonePairs converts the zones master to long form (apartment, zone).
// Long input (APARTAMENTO/ZONA columns) passes through; the wide layout
// (one column per zone, apartment names as cells) is pivoted.
func zonePairs(t tabular.Table) [][2]string {
	idxApt := t.ColumnByKeys("apartamento")
	idxZona := t.ColumnByKeys("zona")

	var pairs [][2]string
	if idxApt >= 0 && idxZona >= 0 {
		for _, row := range t.Rows {
			apt := t.Cell(row, idxApt)
			if apt == "" {
				continue
			}
			pairs = append(pairs, [2]string{apt, t.Cell(row, idxZona)})
		}
		return pairs
	}

	for col, zona := range t.Header {
		if zona == "" {
			continue
		}
		for _, row := range t.Rows {
			if apt := t.Cell(row, col); apt != "" {
				pairs = append(pairs, [2]string{apt, zona})
			}
		}
	}
	return pairs
}

// buildApartments assembles the master apartment list: zones drive which
// apartments exist, warehouse and coffee type join on the canonical name,
// duplicates collapse first-wins.
func buildApartments(zonas, aptAlmacen, cafe tabular.Table) []domain.Apartment {
	almacenByApt := make(map[string]string)
	if ia, iw := aptAlmacen.ColumnByKeys("apartamento"), aptAlmacen.ColumnByKeys("almacen"); ia >= 0 && iw >= 0 {
		for _, row := range aptAlmacen.Rows {
			key := textnorm.CanonicalApartment(aptAlmacen.Cell(row, ia))
			if key == "" {
				continue
			}
			if _, seen := almacenByApt[key]; !seen {
				almacenByApt[key] = aptAlmacen.Cell(row, iw)
			}
		}
	}

	cafeByApt := make(map[string]string)
	ia := cafe.ColumnByKeys("apartamento")
	ic := cafe.ColumnByKeys("cafetipo", "cafe", "tipocafe")
	if ia >= 0 && ic >= 0 {
		for _, row := range cafe.Rows {
			key := textnorm.CanonicalApartment(cafe.Cell(row, ia))
			if key == "" {
				continue
			}
			if _, seen := cafeByApt[key]; !seen {
				cafeByApt[key] = cafe.Cell(row, ic)
			}
		}
	}

	var out []domain.Apartment
	seen := make(map[string]bool)
	for _, p := range zonePairs(zonas) {
		key := textnorm.CanonicalApartment(p[0])
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, domain.Apartment{
			Apartamento: key,
			Zona:        p[1],
			Almacen:     almacenByApt[key],
			CafeTipo:    cafeByApt[key],
		})
	}
	return out
}

// loadThresholds reads the thresholds master. Display names are classified
// onto amenity keys; rows that match no rule cannot join the grid and are
// skipped. Duplicate keys are resolved later by the reconciler.
func loadThresholds(t tabular.Table) []domain.Threshold {
	idxAmenity := t.ColumnByKeys("amenity")
	if idxAmenity < 0 {
		return nil
	}
	idxMin := t.ColumnByKeys("minimo", "min", "stockmin", "stockminimo")
	idxMax := t.ColumnByKeys("maximo", "max", "stockmax", "stockmaximo")

	var out []domain.Threshold
	for _, row := range t.Rows {
		name := t.Cell(row, idxAmenity)
		if name == "" {
			continue
		}
		key, ok := amenity.Classify(name)
		if !ok {
			continue
		}
		out = append(out, domain.Threshold{
			Amenity: name,
			Key:     key,
			Minimo:  tabular.ParseFloat(t.Cell(row, idxMin)),
			Maximo:  tabular.ParseFloat(t.Cell(row, idxMax)),
		})
	}
	return out
}
