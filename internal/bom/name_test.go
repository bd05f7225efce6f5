package bom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanMaterialName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"leading code", "[BABS GVAL003] N04 Valerian Extract", "N04 Valerian Extract"},
		{"dash-joined code", "Rosehip Powder - [ING0042]", "Rosehip Powder"},
		{"embedded code", "Citric [E330] Acid", "Citric Acid"},
		{"multiple codes", "[A1] Malt [B2] Extract", "Malt Extract"},
		{"leading dash", "- Pectin", "Pectin"},
		{"collapsed whitespace", "  Cane   Sugar  ", "Cane Sugar"},
		{"no brackets", "Sunflower Oil", "Sunflower Oil"},
		{"empty", "", ""},
		{"only code", "[XYZ123]", ""},
		{"nested code", "[[A1]] Malt Extract", "Malt Extract"},
		{"nested embedded code", "Citric [E[330]] Acid", "Citric Acid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanMaterialName(tt.input))
		})
	}
}

func TestCleanMaterialName_NoBracketsRemain(t *testing.T) {
	inputs := []string{
		"[A] first",
		"middle [B] piece",
		"tail - [C]",
		"[D][E] doubled",
		"[[A1]] Malt Extract",
		"Citric [E[330]] Acid",
		"deep [x[y[z]]] nesting",
		"plain name",
	}
	for _, in := range inputs {
		out := CleanMaterialName(in)
		assert.False(t, strings.ContainsAny(out, "[]"), "brackets survived in %q -> %q", in, out)
	}
}

func TestDetectItemType(t *testing.T) {
	tests := []struct {
		name     string
		expected ItemType
	}{
		{"Glass Bottle", ItemTypePackaging},
		{"Amber Glass Jar 250ml", ItemTypePackaging},
		{"Front Label", ItemTypePackaging},
		{"Shipping Carton", ItemTypePackaging},
		{"Aluminium Foil Lid", ItemTypePackaging},
		{"Shrink Sleeve", ItemTypePackaging},
		{"N04 Valerian Extract", ItemTypeIngredient},
		{"Beet Sugar", ItemTypeIngredient},
		{"Sunflower Oil", ItemTypeIngredient},
		// Containment matching has known false positives: "Cane" hits "can".
		{"Cane Sugar", ItemTypePackaging},
		{"", ItemTypeIngredient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectItemType(tt.name))
		})
	}
}

func TestPlausibleName(t *testing.T) {
	assert.True(t, plausibleName("Cane Sugar"))
	assert.False(t, plausibleName("ab"))
	assert.False(t, plausibleName("Page 3 of 7"))
	assert.False(t, plausibleName("Grand Total"))
	assert.False(t, plausibleName("Component Product"))
}
