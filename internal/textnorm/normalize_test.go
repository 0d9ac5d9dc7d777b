// internal/textnorm/normalize_test.go
package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases and trims", "  Gel   De DUCHA ", "gel de ducha"},
		{"strips accents", "Champú", "champu"},
		{"collapses whitespace", "cápsulas\t\tcafé", "capsulas cafe"},
		{"empty stays empty", "", ""},
		{"only whitespace", "   \t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Fecha_entrada-hora", "fechaentradahora"},
		{"CAFE TIPO", "cafetipo"},
		{"Stock/Min.", "stockmin"},
		{"Almacén", "almacen"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.input), "input %q", tt.input)
	}
}

func TestCanonicalApartment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "Apolo 29", "APOLO 29"},
		{"leading zeros in number", "Apolo 029", "APOLO 29"},
		{"attached number with zeros", "APOLO029", "APOLO 29"},
		{"accented name", "Ático Mar", "ATICO MAR"},
		{"whitespace collapse", "  apolo   29 ", "APOLO 29"},
		{"no trailing number untouched", "MEDITERRANEO", "MEDITERRANEO"},
		{"already canonical is stable", "APOLO 29", "APOLO 29"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalApartment(tt.input))
		})
	}
}

func TestCanonicalApartmentConvergence(t *testing.T) {
	// the same physical unit spelled three ways must share one key
	variants := []string{"Apolo 29", "APOLO029", "apolo  029"}
	want := CanonicalApartment(variants[0])
	for _, v := range variants[1:] {
		assert.Equal(t, want, CanonicalApartment(v), "variant %q", v)
	}
}
