// internal/amenity/defaults.go
package amenity

import (
	"github.com/floritflats/opsboard/internal/domain"
	"github.com/floritflats/opsboard/internal/textnorm"
)

// DefaultThresholds returns the built-in min/max targets per amenity, used
// when the master thresholds table is absent. Master data overrides these
// when available.
func DefaultThresholds() []domain.Threshold {
	return []domain.Threshold{
		{Amenity: "Azúcar", Key: domain.AmenityAzucar, Minimo: 10, Maximo: 30},
		{Amenity: "Té/Infusión", Key: domain.AmenityTeInfusion, Minimo: 10, Maximo: 30},
		{Amenity: "Insecticida", Key: domain.AmenityInsecticida, Minimo: 1, Maximo: 3},
		{Amenity: "Gel de ducha", Key: domain.AmenityGelDucha, Minimo: 2, Maximo: 6},
		{Amenity: "Champú", Key: domain.AmenityChampu, Minimo: 2, Maximo: 6},
		{Amenity: "Escoba", Key: domain.AmenityEscoba, Minimo: 0, Maximo: 1},
		{Amenity: "Mocho/Fregona", Key: domain.AmenityFregona, Minimo: 0, Maximo: 1},
		{Amenity: "Detergente", Key: domain.AmenityDetergente, Minimo: 2, Maximo: 6},
		{Amenity: "Jabón de manos", Key: domain.AmenityJabonManos, Minimo: 2, Maximo: 6},
		{Amenity: "Vinagre", Key: domain.AmenityVinagre, Minimo: 1, Maximo: 3},
		{Amenity: "Abrillantador", Key: domain.AmenityAbrillantador, Minimo: 1, Maximo: 3},
		{Amenity: "Sal lavavajillas", Key: domain.AmenitySalLavavajillas, Minimo: 1, Maximo: 3},
		{Amenity: "Sal de mesa", Key: domain.AmenitySalMesa, Minimo: 1, Maximo: 3},
		{Amenity: "Café molido", Key: domain.AmenityCafeMolido, Minimo: 1, Maximo: 3},
		{Amenity: "Cápsulas Nespresso", Key: domain.AmenityCafeNespresso, Minimo: 20, Maximo: 60},
		{Amenity: "Cápsulas Tassimo", Key: domain.AmenityCafeTassimo, Minimo: 20, Maximo: 60},
		{Amenity: "Cápsulas Dolce Gusto", Key: domain.AmenityCafeDolceGusto, Minimo: 20, Maximo: 60},
	}
}

// capsule machine type -> the one coffee amenity that applies to it.
var capsuleByMachine = map[string]domain.AmenityKey{
	"tassimo":     domain.AmenityCafeTassimo,
	"nespresso":   domain.AmenityCafeNespresso,
	"dolce gusto": domain.AmenityCafeDolceGusto,
	"dolcegusto":  domain.AmenityCafeDolceGusto,
	"molido":      domain.AmenityCafeMolido,
	"cafe molido": domain.AmenityCafeMolido,
}

// CapsuleFor maps an apartment's configured coffee-machine type to the
// coffee amenity it may receive. Unrecognized or empty types return
// ("", false): such apartments get no coffee rows at all, never a guess.
func CapsuleFor(cafeTipo string) (domain.AmenityKey, bool) {
	key, ok := capsuleByMachine[textnorm.Normalize(cafeTipo)]
	return key, ok
}
