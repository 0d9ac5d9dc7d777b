// internal/occupancy/projector.go
package occupancy

import (
	"time"

	"github.com/floritflats/opsboard/internal/domain"
	"github.com/floritflats/opsboard/internal/textnorm"
)

// sameDay reports whether t falls on calendar day d (d is midnight).
func sameDay(t, d time.Time) bool {
	return t.Year() == d.Year() && t.Month() == d.Month() && t.Day() == d.Day()
}

// overlaps reports whether a [checkIn, checkOut) range touches day d.
func overlaps(checkIn, checkOut, d time.Time) bool {
	dayEnd := d.AddDate(0, 0, 1)
	return checkIn.Before(dayEnd) && checkOut.After(d)
}

// Project classifies every (apartment, day) pair in the window
// [start, start+days) into an occupancy state. Each day is computed
// independently from the full reservation set; there is no transition
// memory between days. Precedence, highest first:
//
//	ENTRADA+SALIDA  a check-in and a check-out both land exactly on d
//	ENTRADA         some reservation checks in on d
//	SALIDA          some reservation checks out on d
//	OCUPADO         at least one reservation overlaps d
//	VACIO           none of the above
//
// Every apartment in the master list appears every day, reservations or
// not. Reservations with a null (zero) check-in or check-out are skipped.
func Project(reservations []domain.Reservation, apartments []domain.Apartment, start time.Time, days int) []domain.DailyApartmentState {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	byApt := make(map[string][]domain.Reservation)
	for _, r := range reservations {
		if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
			continue
		}
		key := textnorm.CanonicalApartment(r.Apartamento)
		byApt[key] = append(byApt[key], r)
	}

	var out []domain.DailyApartmentState
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		dayEnd := d.AddDate(0, 0, 1)
		for _, apt := range apartments {
			rs := byApt[apt.Apartamento]

			var entrada, salida *time.Time
			occupied := false
			var nextCheckIn *time.Time
			for _, r := range rs {
				if sameDay(r.CheckIn, d) {
					t := r.CheckIn
					// earliest timestamp wins for display
					if entrada == nil || t.Before(*entrada) {
						entrada = &t
					}
				}
				if sameDay(r.CheckOut, d) {
					t := r.CheckOut
					if salida == nil || t.Before(*salida) {
						salida = &t
					}
				}
				if overlaps(r.CheckIn, r.CheckOut, d) {
					occupied = true
				}
				if r.CheckIn.After(dayEnd) {
					t := r.CheckIn
					if nextCheckIn == nil || t.Before(*nextCheckIn) {
						nextCheckIn = &t
					}
				}
			}

			estado := domain.EstadoVacio
			switch {
			case entrada != nil && salida != nil:
				estado = domain.EstadoEntradaSalida
			case entrada != nil:
				estado = domain.EstadoEntrada
			case salida != nil:
				estado = domain.EstadoSalida
			case occupied:
				estado = domain.EstadoOcupado
			}

			out = append(out, domain.DailyApartmentState{
				Apartamento: apt.Apartamento,
				Day:         d,
				Estado:      estado,
				EntradaHora: entrada,
				SalidaHora:  salida,
				NextCheckIn: nextCheckIn,
			})
		}
	}
	return out
}
