// internal/replenish/lists_test.go
package replenish

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floritflats/opsboard/internal/domain"
)

func TestBuildListsRendering(t *testing.T) {
	apartments := []domain.Apartment{
		{Apartamento: "APOLO 29", Zona: "CENTRO", Almacen: "ALM CENTRO", CafeTipo: "Tassimo"},
	}
	rows := []domain.ReplenishmentRow{
		{Almacen: "ALM CENTRO", Key: domain.AmenityGelDucha, Amenity: "Gel de ducha", AReponer: 5, FaltanParaMin: 1, BajoMinimo: true},
		{Almacen: "ALM CENTRO", Key: domain.AmenityChampu, Amenity: "Champú", AReponer: 2.6, FaltanParaMin: 0},
	}

	got := BuildLists(apartments, rows)
	require.Len(t, got, 1)
	assert.Equal(t, "APOLO 29", got[0].Apartamento)
	// quantities round to the nearest integer for display
	assert.Equal(t, "Gel de ducha x5, Champú x3", got[0].ListaReponer)
	assert.Equal(t, "Gel de ducha x1", got[0].BajoMinimo)
}

func TestBuildListsCoffeeFilter(t *testing.T) {
	rows := []domain.ReplenishmentRow{
		{Almacen: "ALM CENTRO", Key: domain.AmenityCafeTassimo, Amenity: "Cápsulas Tassimo", AReponer: 40, FaltanParaMin: 10},
		{Almacen: "ALM CENTRO", Key: domain.AmenityCafeNespresso, Amenity: "Cápsulas Nespresso", AReponer: 60, FaltanParaMin: 20},
		{Almacen: "ALM CENTRO", Key: domain.AmenityAzucar, Amenity: "Azúcar", AReponer: 5, FaltanParaMin: 0},
	}

	tests := []struct {
		name     string
		cafeTipo string
		want     string
	}{
		{"matching machine keeps its capsules", "Tassimo", "Cápsulas Tassimo x40, Azúcar x5"},
		{"other machine's capsules filtered", "Nespresso", "Cápsulas Nespresso x60, Azúcar x5"},
		{"unknown machine gets no coffee at all", "Senseo", "Azúcar x5"},
		{"empty machine gets no coffee at all", "", "Azúcar x5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apartments := []domain.Apartment{
				{Apartamento: "APOLO 29", Almacen: "ALM CENTRO", CafeTipo: tt.cafeTipo},
			}
			got := BuildLists(apartments, rows)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].ListaReponer)
		})
	}
}

func TestBuildListsWarehouseJoin(t *testing.T) {
	apartments := []domain.Apartment{
		{Apartamento: "APOLO 29", Almacen: "ALM CENTRO"},
		{Apartamento: "ATICO MAR", Almacen: "ALM RUZAFA"},
		{Apartamento: "SIN ALMACEN", Almacen: ""},
	}
	rows := []domain.ReplenishmentRow{
		{Almacen: "ALM CENTRO", Key: domain.AmenityAzucar, Amenity: "Azúcar", AReponer: 5},
		// an empty warehouse on the row must never match the empty-warehouse apartment
		{Almacen: "", Key: domain.AmenityAzucar, Amenity: "Azúcar", AReponer: 9},
	}

	got := BuildLists(apartments, rows)
	require.Len(t, got, 3)
	assert.Equal(t, "Azúcar x5", got[0].ListaReponer)
	// no rows for its warehouse: empty strings, never an absent entry
	assert.Equal(t, "", got[1].ListaReponer)
	assert.Equal(t, "", got[1].BajoMinimo)
	assert.Equal(t, "", got[2].ListaReponer)
}

func TestBuildListsCapsItems(t *testing.T) {
	apartments := []domain.Apartment{{Apartamento: "APOLO 29", Almacen: "ALM"}}
	rows := make([]domain.ReplenishmentRow, 0, maxListItems+20)
	for i := 0; i < maxListItems+20; i++ {
		rows = append(rows, domain.ReplenishmentRow{
			Almacen: "ALM", Key: domain.AmenityAzucar, Amenity: "Azúcar", AReponer: 1,
		})
	}

	got := BuildLists(apartments, rows)
	require.Len(t, got, 1)
	assert.Len(t, strings.Split(got[0].ListaReponer, ", "), maxListItems)
}
