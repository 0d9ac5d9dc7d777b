// internal/replenish/lists.go
package replenish

import (
	"fmt"
	"math"
	"strings"

	"github.com/floritflats/opsboard/internal/amenity"
	"github.com/floritflats/opsboard/internal/domain"
)

// maxListItems caps the rendered item lists; beyond this the text is
// useless on a phone screen anyway.
const maxListItems = 80

func renderItem(name string, qty float64) string {
	return fmt.Sprintf("%s x%d", name, int(math.Round(qty)))
}

// BuildLists joins replenishment rows onto apartments via their warehouse
// and renders the two item lists per apartment: Lista_reponer (rows with
// AReponer > 0, toward the objective) and Bajo_minimo (rows below
// minimum). Coffee rows pass only when they match the apartment's
// configured machine type; an apartment with an unrecognized or empty
// coffee type gets no coffee rows at all. List order follows row arrival
// order after the join. Apartments with nothing to replenish get empty
// strings, never absent entries.
func BuildLists(apartments []domain.Apartment, rows []domain.ReplenishmentRow) []domain.ApartmentLists {
	out := make([]domain.ApartmentLists, 0, len(apartments))
	for _, apt := range apartments {
		capsule, hasCapsule := amenity.CapsuleFor(apt.CafeTipo)

		var toMax, urgent []string
		for _, r := range rows {
			if r.Almacen == "" || r.Almacen != apt.Almacen {
				continue
			}
			if domain.CoffeeAmenities[r.Key] {
				if !hasCapsule || r.Key != capsule {
					continue
				}
			}
			if r.AReponer > 0 && len(toMax) < maxListItems {
				toMax = append(toMax, renderItem(r.Amenity, r.AReponer))
			}
			if r.FaltanParaMin > 0 && len(urgent) < maxListItems {
				urgent = append(urgent, renderItem(r.Amenity, r.FaltanParaMin))
			}
		}

		out = append(out, domain.ApartmentLists{
			Apartamento:  apt.Apartamento,
			ListaReponer: strings.Join(toMax, ", "),
			BajoMinimo:   strings.Join(urgent, ", "),
		})
	}
	return out
}
