// Package county canonicalizes free-text county names and matches them
// against the reference catalog.
package county

import (
	"regexp"
	"strings"
)

var (
	letterDotRe = regexp.MustCompile(`([a-z])\.`)
	punctRe     = regexp.MustCompile(`[^\w\s.]`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// fillerWords carry no identifying information in a county name
var fillerWords = map[string]bool{
	"county": true,
	"of":     true,
	"the":    true,
}

// abbrevMap expands OCR-style abbreviations on the leading token.
// "s" expands to "santa" only when another token follows; a lone "s"
// stays as-is rather than being guessed at.
var abbrevMap = map[string]string{
	"s":  "santa",
	"st": "saint",
	"mt": "mount",
}

// Normalize canonicalizes a raw county string: case fold, de-glue tokens
// stuck together around dots ("S.Clara"), strip separators and punctuation,
// drop filler words, expand leading abbreviations, collapse whitespace.
// It is a pure string transform and never consults the catalog.
// Normalize is idempotent.
func Normalize(name string) string {
	if name == "" {
		return ""
	}

	text := strings.ToLower(strings.TrimSpace(name))

	// "s.clara" -> "s. clara"
	text = letterDotRe.ReplaceAllString(text, "$1. ")

	for _, sep := range []string{"-", "/", ",", "|"} {
		text = strings.ReplaceAll(text, sep, " ")
	}

	text = punctRe.ReplaceAllString(text, " ")
	text = spaceRe.ReplaceAllString(text, " ")

	var tokens []string
	for _, tok := range strings.Fields(text) {
		stripped := strings.ReplaceAll(tok, ".", "")
		if stripped == "" || fillerWords[stripped] {
			continue
		}
		tokens = append(tokens, stripped)
	}

	if len(tokens) == 0 {
		return ""
	}

	if expanded, ok := abbrevMap[tokens[0]]; ok {
		if tokens[0] != "s" || len(tokens) > 1 {
			tokens[0] = expanded
		}
	}

	return strings.Join(tokens, " ")
}
