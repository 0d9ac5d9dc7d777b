// internal/replenish/reconciler_test.go
package replenish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floritflats/opsboard/internal/domain"
)

func testThresholds() []domain.Threshold {
	return []domain.Threshold{
		{Amenity: "Gel de ducha", Key: domain.AmenityGelDucha, Minimo: 2, Maximo: 6},
		{Amenity: "Champú", Key: domain.AmenityChampu, Minimo: 2, Maximo: 6},
	}
}

func TestReconcileDenseGrid(t *testing.T) {
	obs := []domain.StockObservation{
		{Almacen: "ALM CENTRO", Key: domain.AmenityGelDucha, Cantidad: 1},
		{Almacen: "ALM RUZAFA", Key: domain.AmenityChampu, Cantidad: 10},
	}

	got := Reconcile(obs, testThresholds(), ObjectiveMax, false)

	// every observed warehouse gets a row for every threshold amenity
	require.Len(t, got, 4)

	gel := got[0]
	assert.Equal(t, "ALM CENTRO", gel.Almacen)
	assert.Equal(t, domain.AmenityGelDucha, gel.Key)
	assert.Equal(t, 1.0, gel.Cantidad)
	assert.Equal(t, 1.0, gel.FaltanParaMin)
	assert.Equal(t, 5.0, gel.AReponer)
	assert.True(t, gel.BajoMinimo)

	// unobserved amenity in an observed warehouse means quantity zero
	champuCentro := got[1]
	assert.Equal(t, domain.AmenityChampu, champuCentro.Key)
	assert.Equal(t, 0.0, champuCentro.Cantidad)
	assert.Equal(t, 2.0, champuCentro.FaltanParaMin)
	assert.Equal(t, 6.0, champuCentro.AReponer)

	// surplus clips deficits at zero
	champuRuzafa := got[3]
	assert.Equal(t, "ALM RUZAFA", champuRuzafa.Almacen)
	assert.Equal(t, 0.0, champuRuzafa.FaltanParaMin)
	assert.Equal(t, 0.0, champuRuzafa.AReponer)
	assert.False(t, champuRuzafa.BajoMinimo)
}

func TestReconcileObjectiveMin(t *testing.T) {
	obs := []domain.StockObservation{
		{Almacen: "ALM CENTRO", Key: domain.AmenityGelDucha, Cantidad: 1},
	}

	got := Reconcile(obs, testThresholds(), ObjectiveMin, false)
	require.Len(t, got, 2)
	// target is the minimum, not the maximum
	assert.Equal(t, 1.0, got[0].AReponer)
	assert.Equal(t, 1.0, got[0].FaltanParaMin)
}

func TestReconcileUrgentOnly(t *testing.T) {
	obs := []domain.StockObservation{
		{Almacen: "ALM CENTRO", Key: domain.AmenityGelDucha, Cantidad: 1},
		{Almacen: "ALM CENTRO", Key: domain.AmenityChampu, Cantidad: 4},
	}

	got := Reconcile(obs, testThresholds(), ObjectiveMax, true)
	require.Len(t, got, 1)
	assert.Equal(t, domain.AmenityGelDucha, got[0].Key)
	// AReponer still targets the configured objective
	assert.Equal(t, 5.0, got[0].AReponer)
}

func TestReconcileSumsDuplicateObservations(t *testing.T) {
	obs := []domain.StockObservation{
		{Almacen: "ALM CENTRO", Key: domain.AmenityGelDucha, Cantidad: 1},
		{Almacen: "ALM CENTRO", Key: domain.AmenityGelDucha, Cantidad: 2},
	}

	got := Reconcile(obs, testThresholds(), ObjectiveMax, false)
	require.NotEmpty(t, got)
	assert.Equal(t, 3.0, got[0].Cantidad)
}

func TestReconcileMergesDuplicateThresholds(t *testing.T) {
	thresholds := []domain.Threshold{
		{Amenity: "Gel de ducha", Key: domain.AmenityGelDucha, Minimo: 2, Maximo: 4},
		{Amenity: "Gel ducha grande", Key: domain.AmenityGelDucha, Minimo: 3, Maximo: 3},
	}
	obs := []domain.StockObservation{
		{Almacen: "ALM CENTRO", Key: domain.AmenityGelDucha, Cantidad: 0},
	}

	got := Reconcile(obs, thresholds, ObjectiveMax, false)
	require.Len(t, got, 1)
	// min and max merge independently, first occurrence keeps the name
	assert.Equal(t, "Gel de ducha", got[0].Amenity)
	assert.Equal(t, 3.0, got[0].Minimo)
	assert.Equal(t, 4.0, got[0].Maximo)
}

func TestReconcileNoObservations(t *testing.T) {
	got := Reconcile(nil, testThresholds(), ObjectiveMax, false)
	assert.Empty(t, got)
}
