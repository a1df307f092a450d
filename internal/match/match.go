// Package match scores textual similarity between a parsed invoice line name
// and existing inventory records. It is an advisory aid for the review
// screen, never an authoritative duplicate check: both false positives and
// false negatives are acceptable, the user has final say.
package match

import (
	"strings"

	"printstock/internal/domain"
)

const (
	// maxPerKind caps each suggestion list.
	maxPerKind = 3
	// minTokenLen filters out units and noise like "of" or "x1".
	minTokenLen = 3
	// materialTokenThreshold is the minimum token hits for a material match.
	// Consumables match on a single token since their names are shorter and
	// less structured.
	materialTokenThreshold = 2
)

// Suggestions holds up to maxPerKind plausible matches per inventory kind,
// in snapshot order. No ranking beyond the threshold filter is applied.
type Suggestions struct {
	Materials   []domain.Material   `json:"materials"`
	Consumables []domain.Consumable `json:"consumables"`
}

// Tokenize lowercases the name, splits on whitespace, hyphens, underscores
// and commas, and discards tokens shorter than three characters.
func Tokenize(name string) []string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', '-', '_', ',':
			return true
		}
		return false
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// MaterialCompareString builds the string a material is matched against:
// subtype, brand and colour concatenated, lowercased. Missing fields are
// simply empty.
func MaterialCompareString(m domain.Material) string {
	return strings.ToLower(m.Subtype + " " + m.Brand + " " + m.Colour)
}

// Find returns the inventory records plausibly matching the candidate name.
// An empty name or empty snapshot yields empty lists.
func Find(name string, snap domain.InventorySnapshot) Suggestions {
	var s Suggestions
	tokens := Tokenize(name)
	if len(tokens) == 0 {
		return s
	}

	for _, m := range snap.Materials {
		if len(s.Materials) >= maxPerKind {
			break
		}
		if countHits(tokens, MaterialCompareString(m)) >= materialTokenThreshold {
			s.Materials = append(s.Materials, m)
		}
	}

	for _, c := range snap.Consumables {
		if len(s.Consumables) >= maxPerKind {
			break
		}
		if countHits(tokens, strings.ToLower(c.Name)) >= 1 {
			s.Consumables = append(s.Consumables, c)
		}
	}

	return s
}

func countHits(tokens []string, target string) int {
	hits := 0
	for _, t := range tokens {
		if strings.Contains(target, t) {
			hits++
		}
	}
	return hits
}
