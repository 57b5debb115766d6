// Package textnorm holds text normalization utilities for better search and
// comprehension of German practice documents. They are standalone helpers:
// the answer pipeline itself sends questions to the embedding model as-is.
package textnorm

import (
	"regexp"
	"strings"
)

type NormalizationResult struct {
	Normalized  string
	Original    string
	Corrections []string
}

// Common German typos and variations, mostly missing umlauts.
var germanCorrections = map[string]string{
	"gerat":          "gerät",
	"gerate":         "geräte",
	"bestellproxes":  "bestellprozess",
	"bestellproxess": "bestellprozess",
	"durchfuhrung":   "durchführung",
	"durchfuehrung":  "durchführung",
	"uberweisung":    "überweisung",
	"uberweisungen":  "überweisungen",
	"arzte":          "ärzte",
	"ablaufe":        "abläufe",

	// Identity entries keep frequent domain words from being "corrected"
	// into a near neighbour by the fuzzy match below.
	"rezept":              "rezept",
	"rezepte":             "rezepte",
	"termin":              "termin",
	"termine":             "termine",
	"terminvereinbarung":  "terminvereinbarung",
	"hausarzt":            "hausarzt",
	"hausarztpraxis":      "hausarztpraxis",
	"praxis":              "praxis",
	"patient":             "patient",
	"patienten":           "patienten",
	"behandlung":          "behandlung",
	"medikament":          "medikament",
	"medikamente":         "medikamente",
	"krankenkasse":        "krankenkasse",
	"versicherung":        "versicherung",
	"anleitung":           "anleitung",
	"verfahren":           "verfahren",
	"prozess":             "prozess",
	"ablauf":              "ablauf",
}

var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_]`)
var specialCharRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeText corrects common typos word by word, first by exact dictionary
// lookup, then by closest match within edit distance 2.
func NormalizeText(input string) NormalizationResult {
	original := strings.TrimSpace(input)
	var corrections []string

	words := strings.Fields(original)
	normalizedWords := make([]string, len(words))
	for i, word := range words {
		cleanWord := strings.ToLower(nonWordRe.ReplaceAllString(word, ""))
		if cleanWord == "" {
			normalizedWords[i] = word
			continue
		}

		if correction, ok := germanCorrections[cleanWord]; ok {
			if correction != cleanWord {
				corrections = append(corrections, word+" → "+correction)
			}
			normalizedWords[i] = correction
			continue
		}

		if closest := findClosestMatch(cleanWord, 2); closest != "" && closest != cleanWord {
			corrections = append(corrections, word+" → "+closest)
			normalizedWords[i] = closest
			continue
		}

		normalizedWords[i] = word
	}

	return NormalizationResult{
		Normalized:  strings.Join(normalizedWords, " "),
		Original:    original,
		Corrections: corrections,
	}
}

// NormalizeSearchQuery applies typo correction plus lowercasing and
// whitespace/special-character cleanup for lexical search.
func NormalizeSearchQuery(query string) string {
	result := NormalizeText(query)

	processed := strings.ToLower(result.Normalized)
	processed = specialCharRe.ReplaceAllString(processed, " ")
	processed = whitespaceRe.ReplaceAllString(processed, " ")
	return strings.TrimSpace(processed)
}

// DetectProceduralContent reports whether the text reads like a step-by-step
// instruction.
func DetectProceduralContent(text string) bool {
	proceduralKeywords := []string{
		"schritt", "step", "vorgehen", "durchführung", "ablauf", "verfahren",
		"anleitung", "prozess", "workflow", "anweisung", "richtlinie",
	}

	lowerText := strings.ToLower(text)
	for _, keyword := range proceduralKeywords {
		if strings.Contains(lowerText, keyword) {
			return true
		}
	}
	return false
}

func findClosestMatch(word string, maxDistance int) string {
	bestMatch := ""
	bestDistance := maxDistance + 1

	for key, value := range germanCorrections {
		distance := levenshteinDistance(word, key)
		if distance < bestDistance {
			bestDistance = distance
			bestMatch = value
		}
	}

	return bestMatch
}

func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			indicator := 1
			if ra[i-1] == rb[j-1] {
				indicator = 0
			}
			curr[i] = min3(curr[i-1]+1, prev[i]+1, prev[i-1]+indicator)
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
