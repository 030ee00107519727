package county

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/ppiankov/deedgate/internal/model"
)

// MatchThreshold is the confidence floor on the 0-100 scale. Scores below
// it are rejected as "no confident match". Fixed, not adaptive.
const MatchThreshold = 70

// Match is a confident, unambiguous catalog hit
type Match struct {
	County model.CountyReference
	Score  int // 0-100
}

// Matcher scores normalized county names against the catalog
type Matcher struct {
	catalog *Catalog
}

// NewMatcher creates a matcher over the given catalog
func NewMatcher(catalog *Catalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// Best normalizes the input, scores it against every catalog entry, and
// returns the maximum-scoring entry. It fails closed: scores below the
// threshold are rejected, and a tie at the maximum score is rejected as
// ambiguous rather than arbitrarily resolved.
func (m *Matcher) Best(rawCounty string) (*Match, error) {
	normalized := Normalize(rawCounty)
	if normalized == "" {
		return nil, fmt.Errorf("county %q normalizes to nothing", rawCounty)
	}

	bestScore := -1
	var bestEntries []catalogEntry

	for _, e := range m.catalog.entries {
		score := TokenSetRatio(normalized, e.normalized)
		switch {
		case score > bestScore:
			bestScore = score
			bestEntries = bestEntries[:0]
			bestEntries = append(bestEntries, e)
		case score == bestScore:
			bestEntries = append(bestEntries, e)
		}
	}

	if bestScore < MatchThreshold {
		best := ""
		if len(bestEntries) > 0 {
			best = bestEntries[0].ref.Name
		}
		return nil, fmt.Errorf("no confident match for county %q (best=%q, score=%d)",
			rawCounty, best, bestScore)
	}

	if len(bestEntries) > 1 {
		names := make([]string, len(bestEntries))
		for i, e := range bestEntries {
			names[i] = fmt.Sprintf("%q", e.ref.Name)
		}
		return nil, fmt.Errorf("ambiguous match for county %q: %s tie at score %d",
			rawCounty, strings.Join(names, ", "), bestScore)
	}

	return &Match{
		County: bestEntries[0].ref,
		Score:  bestScore,
	}, nil
}

// TokenSetRatio scores two strings on the 0-100 scale using the token-set
// method: compare the shared-token core against each side's full token set
// and take the best normalized edit-distance similarity. Word order and
// duplicate tokens do not affect the score.
func TokenSetRatio(a, b string) int {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		if a == b && a != "" {
			return 100
		}
		return 0
	}

	inter, onlyA, onlyB := splitSets(ta, tb)

	s0 := strings.Join(inter, " ")
	s1 := strings.TrimSpace(s0 + " " + strings.Join(onlyA, " "))
	s2 := strings.TrimSpace(s0 + " " + strings.Join(onlyB, " "))

	best := similarity(s1, s2)
	if len(inter) > 0 {
		if v := similarity(s0, s1); v > best {
			best = v
		}
		if v := similarity(s0, s2); v > best {
			best = v
		}
	}

	return int(math.Round(best * 100))
}

func similarity(a, b string) float64 {
	return levenshtein.Similarity(a, b, nil)
}

// tokenSet returns the sorted unique tokens of s
func tokenSet(s string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, tok := range strings.Fields(s) {
		if !seen[tok] {
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}
	sort.Strings(tokens)
	return tokens
}

// splitSets partitions two sorted token sets into intersection and remainders
func splitSets(a, b []string) (inter, onlyA, onlyB []string) {
	inB := make(map[string]bool, len(b))
	for _, t := range b {
		inB[t] = true
	}
	inInter := make(map[string]bool)
	for _, t := range a {
		if inB[t] {
			inter = append(inter, t)
			inInter[t] = true
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range b {
		if !inInter[t] {
			onlyB = append(onlyB, t)
		}
	}
	return inter, onlyA, onlyB
}
