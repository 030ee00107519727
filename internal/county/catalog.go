package county

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/deedgate/internal/model"
)

// Catalog is the county reference data, loaded once at startup and
// treated as immutable for the rest of the process. It is safe to share
// across concurrent pipeline runs.
type Catalog struct {
	entries []catalogEntry
}

type catalogEntry struct {
	ref        model.CountyReference
	normalized string // precomputed Normalize(name)
}

// rawEntry tolerates tax_rate as either a JSON number or a string
type rawEntry struct {
	Name    string          `json:"name"`
	TaxRate json.RawMessage `json:"tax_rate"`
}

// LoadCatalog reads the counties file. Any schema violation (missing name,
// duplicate name, unparseable tax rate) is fatal: a broken catalog must not
// silently shrink the set of acceptable counties.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read counties file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses catalog JSON: a list of {name, tax_rate} objects
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw []rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse counties file: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("counties file is empty")
	}

	seen := make(map[string]bool, len(raw))
	entries := make([]catalogEntry, 0, len(raw))

	for i, r := range raw {
		if r.Name == "" {
			return nil, fmt.Errorf("counties entry %d: missing name", i)
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("counties entry %d: duplicate name %q", i, r.Name)
		}
		seen[r.Name] = true

		rate, err := parseTaxRate(r.TaxRate)
		if err != nil {
			return nil, fmt.Errorf("counties entry %d (%s): %w", i, r.Name, err)
		}

		entries = append(entries, catalogEntry{
			ref:        model.CountyReference{Name: r.Name, TaxRate: rate},
			normalized: Normalize(r.Name),
		})
	}

	return &Catalog{entries: entries}, nil
}

func parseTaxRate(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 {
		return decimal.Zero, fmt.Errorf("missing tax_rate")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		rate, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid tax_rate %q", s)
		}
		return rate, nil
	}

	rate, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax_rate %s", raw)
	}
	return rate, nil
}

// Len returns the number of reference entries
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Names returns the canonical names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.ref.Name
	}
	return names
}
