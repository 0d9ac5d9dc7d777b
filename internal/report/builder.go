// internal/report/builder.go
package report

import (
	"sort"
	"time"

	"github.com/floritflats/opsboard/internal/domain"
)

// statePriority orders states for display: entradas first, vacios last.
var statePriority = map[string]int{
	domain.EstadoEntradaSalida: 0,
	domain.EstadoEntrada:       1,
	domain.EstadoSalida:        2,
	domain.EstadoOcupado:       3,
	domain.EstadoVacio:         4,
}

// BuildOperativa joins the daily occupancy states with the per-apartment
// replenishment lists and the master zone/coffee attributes into the final
// operational table. Rows sort by day, zone, has-replenishment first,
// state priority, apartment; the sort is stable so equal keys keep their
// projection order.
func BuildOperativa(states []domain.DailyApartmentState, lists []domain.ApartmentLists, apartments []domain.Apartment) []domain.OperativaRow {
	listsByApt := make(map[string]domain.ApartmentLists, len(lists))
	for _, l := range lists {
		listsByApt[l.Apartamento] = l
	}
	aptByName := make(map[string]domain.Apartment, len(apartments))
	for _, a := range apartments {
		aptByName[a.Apartamento] = a
	}

	rows := make([]domain.OperativaRow, 0, len(states))
	for _, s := range states {
		apt := aptByName[s.Apartamento]
		l := listsByApt[s.Apartamento]
		rows = append(rows, domain.OperativaRow{
			Day:          s.Day,
			Zona:         apt.Zona,
			Apartamento:  s.Apartamento,
			Estado:       s.Estado,
			NextCheckIn:  s.NextCheckIn,
			ListaReponer: l.ListaReponer,
			BajoMinimo:   l.BajoMinimo,
			CafeTipo:     apt.CafeTipo,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Day.Equal(b.Day) {
			return a.Day.Before(b.Day)
		}
		if a.Zona != b.Zona {
			return a.Zona < b.Zona
		}
		aRep, bRep := a.ListaReponer != "", b.ListaReponer != ""
		if aRep != bRep {
			return aRep
		}
		if statePriority[a.Estado] != statePriority[b.Estado] {
			return statePriority[a.Estado] < statePriority[b.Estado]
		}
		return a.Apartamento < b.Apartamento
	})
	return rows
}

// ComputeKPIs summarises the focus day of the operativa.
func ComputeKPIs(rows []domain.OperativaRow, focus time.Time) domain.KPIs {
	var k domain.KPIs
	for _, r := range rows {
		if !sameDate(r.Day, focus) {
			continue
		}
		switch r.Estado {
		case domain.EstadoEntrada:
			k.Entradas++
		case domain.EstadoSalida:
			k.Salidas++
		case domain.EstadoEntradaSalida:
			k.Turnovers++
			k.Entradas++
			k.Salidas++
		case domain.EstadoOcupado:
			k.Ocupados++
		case domain.EstadoVacio:
			k.Vacios++
		}
	}
	return k
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
