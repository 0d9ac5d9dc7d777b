// internal/domain/models.go
package domain

import "time"

// AmenityKey is the canonical machine identifier for an amenity category.
type AmenityKey string

const (
	AmenityCafeTassimo     AmenityKey = "cafe_tassimo"
	AmenityCafeDolceGusto  AmenityKey = "cafe_dolcegusto"
	AmenityCafeNespresso   AmenityKey = "cafe_nespresso"
	AmenityCafeMolido      AmenityKey = "cafe_molido"
	AmenityGelDucha        AmenityKey = "gel_ducha"
	AmenityChampu          AmenityKey = "champu"
	AmenityJabonManos      AmenityKey = "jabon_manos"
	AmenityAzucar          AmenityKey = "azucar"
	AmenityTeInfusion      AmenityKey = "te_infusion"
	AmenityInsecticida     AmenityKey = "insecticida"
	AmenityDetergente      AmenityKey = "detergente"
	AmenityVinagre         AmenityKey = "vinagre"
	AmenityAbrillantador   AmenityKey = "abrillantador"
	AmenitySalLavavajillas AmenityKey = "sal_lavavajillas"
	AmenitySalMesa         AmenityKey = "sal_mesa"
	AmenityEscoba          AmenityKey = "escoba"
	AmenityFregona         AmenityKey = "fregona"
)

// CoffeeAmenities is the set of capsule/coffee categories subject to the
// per-apartment coffee-machine filter.
var CoffeeAmenities = map[AmenityKey]bool{
	AmenityCafeTassimo:    true,
	AmenityCafeDolceGusto: true,
	AmenityCafeNespresso:  true,
	AmenityCafeMolido:     true,
}

// Apartment is one unit from the master tables. Apartamento is the
// canonical (accent-folded, uppercased, zero-stripped) name and acts as
// the identity key across all joins.
type Apartment struct {
	Apartamento string `json:"apartamento"`
	Zona        string `json:"zona"`
	Almacen     string `json:"almacen"`
	CafeTipo    string `json:"cafe_tipo"`
}

// Reservation is one canonical reservation record. A zero CheckIn or
// CheckOut marks a date that failed to parse; such rows are kept but
// excluded from occupancy projection.
type Reservation struct {
	Apartamento string    `json:"apartamento"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
}

// Threshold is the min/max stock target for one amenity category.
type Threshold struct {
	Amenity string     `json:"amenity"`
	Key     AmenityKey `json:"amenity_key"`
	Minimo  float64    `json:"minimo"`
	Maximo  float64    `json:"maximo"`
}

// StockObservation is one classified (warehouse, amenity, quantity) triple.
type StockObservation struct {
	Almacen  string     `json:"almacen"`
	Key      AmenityKey `json:"amenity_key"`
	Cantidad float64    `json:"cantidad"`
}

// UnclassifiedProduct is a stock line whose product name matched no
// classification rule. Excluded from reconciliation, kept for audit.
type UnclassifiedProduct struct {
	Almacen  string  `json:"almacen"`
	Producto string  `json:"producto"`
	Cantidad float64 `json:"cantidad"`
}

// ReplenishmentRow is one cell of the dense warehouse x amenity grid.
type ReplenishmentRow struct {
	Almacen       string     `json:"almacen"`
	Key           AmenityKey `json:"amenity_key"`
	Amenity       string     `json:"amenity"`
	Cantidad      float64    `json:"cantidad"`
	Minimo        float64    `json:"minimo"`
	Maximo        float64    `json:"maximo"`
	FaltanParaMin float64    `json:"faltan_para_min"`
	AReponer      float64    `json:"a_reponer"`
	BajoMinimo    bool       `json:"bajo_minimo"`
}

// Occupancy states, highest precedence first.
const (
	EstadoEntradaSalida = "ENTRADA+SALIDA"
	EstadoEntrada       = "ENTRADA"
	EstadoSalida        = "SALIDA"
	EstadoOcupado       = "OCUPADO"
	EstadoVacio         = "VACIO"
)

// DailyApartmentState is the occupancy state of one apartment on one day.
type DailyApartmentState struct {
	Apartamento string     `json:"apartamento"`
	Day         time.Time  `json:"day"`
	Estado      string     `json:"estado"`
	EntradaHora *time.Time `json:"entrada_hora,omitempty"`
	SalidaHora  *time.Time `json:"salida_hora,omitempty"`
	NextCheckIn *time.Time `json:"next_check_in,omitempty"`
}

// ApartmentLists holds the rendered replenishment strings for one apartment.
type ApartmentLists struct {
	Apartamento  string `json:"apartamento"`
	ListaReponer string `json:"lista_reponer"`
	BajoMinimo   string `json:"bajo_minimo"`
}

// OperativaRow is one row of the final daily operations table. Column
// order in the workbook follows the field order here.
type OperativaRow struct {
	Day          time.Time  `json:"day"`
	Zona         string     `json:"zona"`
	Apartamento  string     `json:"apartamento"`
	Estado       string     `json:"estado"`
	NextCheckIn  *time.Time `json:"proxima_entrada,omitempty"`
	ListaReponer string     `json:"lista_reponer"`
	BajoMinimo   string     `json:"bajo_minimo"`
	CafeTipo     string     `json:"cafe_tipo"`
}

// CartItem is one product drop for one apartment in the replenishment cart.
type CartItem struct {
	Day         time.Time `json:"day"`
	Zona        string    `json:"zona"`
	Apartamento string    `json:"apartamento"`
	Producto    string    `json:"producto"`
	Cantidad    int       `json:"cantidad"`
}

// CartTotal is the aggregated quantity to prepare for one product.
type CartTotal struct {
	Producto string `json:"producto"`
	Total    int    `json:"total"`
}

// KPIs summarises the focus day of an operativa run.
type KPIs struct {
	Entradas  int `json:"entradas"`
	Salidas   int `json:"salidas"`
	Turnovers int `json:"turnovers"`
	Ocupados  int `json:"ocupados"`
	Vacios    int `json:"vacios"`
}

// LastCleaningReport is the most recent cleaning-form submission for one
// apartment.
type LastCleaningReport struct {
	Apartamento       string    `json:"apartamento"`
	LastReport        time.Time `json:"last_report"`
	Llaves            string    `json:"llaves"`
	OtrasReposiciones string    `json:"otras_reposiciones"`
	Incidencias       string    `json:"incidencias"`
	HasLlaves         bool      `json:"has_llaves"`
	HasOtrasRepos     bool      `json:"has_otras_repos"`
	HasIncidencias    bool      `json:"has_incidencias"`
}

// Report is the complete output of one pipeline run.
type Report struct {
	Start        time.Time             `json:"start"`
	End          time.Time             `json:"end"`
	Operativa    []OperativaRow        `json:"operativa"`
	Grid         []ReplenishmentRow    `json:"grid"`
	Unclassified []UnclassifiedProduct `json:"unclassified"`
	CartItems    []CartItem            `json:"cart_items"`
	CartTotals   []CartTotal           `json:"cart_totals"`
	KPIs         KPIs                  `json:"kpis"`
	WorkbookName string                `json:"workbook_name"`
	WorkbookURL  string                `json:"workbook_url,omitempty"`
}
