package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTextCorrectsUmlautTypos(t *testing.T) {
	result := NormalizeText("uberweisung fur arzte")

	assert.Equal(t, "überweisung fur ärzte", result.Normalized)
	assert.Equal(t, "uberweisung fur arzte", result.Original)
	assert.Contains(t, result.Corrections, "uberweisung → überweisung")
	assert.Contains(t, result.Corrections, "arzte → ärzte")
}

func TestNormalizeTextFuzzyMatch(t *testing.T) {
	// One transposition away from "durchfuhrung", which maps to "durchführung".
	result := NormalizeText("druchfuhrung")

	assert.Equal(t, "durchführung", result.Normalized)
	assert.Contains(t, result.Corrections, "druchfuhrung → durchführung")
}

func TestNormalizeTextKeepsDictionaryWords(t *testing.T) {
	result := NormalizeText("Rezept für Patienten")

	assert.Equal(t, "rezept für patienten", result.Normalized)
	// Identity entries are not reported as corrections.
	assert.Empty(t, result.Corrections)
}

func TestNormalizeTextLeavesUnknownWordsAlone(t *testing.T) {
	result := NormalizeText("Quartalsabrechnung EBM-Ziffern")

	assert.Equal(t, "Quartalsabrechnung EBM-Ziffern", result.Normalized)
	assert.Empty(t, result.Corrections)
}

func TestNormalizeTextEmptyInput(t *testing.T) {
	result := NormalizeText("   ")

	assert.Equal(t, "", result.Normalized)
	assert.Equal(t, "", result.Original)
	assert.Empty(t, result.Corrections)
}

func TestNormalizeSearchQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "lowercases and strips punctuation",
			query:    "Wie läuft die Terminvereinbarung ab?",
			expected: "wie läuft die terminvereinbarung ab",
		},
		{
			name:     "collapses whitespace",
			query:    "rezept   bestellen \t jetzt",
			expected: "rezept bestellen jetzt",
		},
		{
			name:     "applies typo correction first",
			query:    "Uberweisung zum Facharzt",
			expected: "überweisung zum facharzt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSearchQuery(tt.query))
		})
	}
}

func TestDetectProceduralContent(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"Schritt 1: Patient aufrufen", true},
		{"Der Ablauf der Blutentnahme ist wie folgt", true},
		{"Anleitung zur Geräteeinweisung", true},
		{"Unsere Öffnungszeiten sind Mo-Fr", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetectProceduralContent(tt.text), tt.text)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"rezept", "rezept", 0},
		{"gerat", "gerät", 1},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, levenshteinDistance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
