// Package stock holds the pharmacy formulary: which medications the clinic
// can dispense and what to suggest when one is out of stock.
package stock

import "strings"

// DefaultAlternative is suggested for any out-of-stock medication that has
// no curated alternative.
const DefaultAlternative = "consult pharmacist for equivalent medication"

// Entry is one formulary row. Entries are kept in insertion order because
// Resolve scans them linearly and the first match wins.
type Entry struct {
	Name      string `json:"name" db:"name"`
	Available bool   `json:"available" db:"available"`
}

// Status is the resolved availability for a free-text medication name.
// Alternative is nil whenever the medication is in stock.
type Status struct {
	InStock     bool    `json:"in_stock"`
	Alternative *string `json:"alternative"`
}

// Catalog is a read-only availability table plus a curated alternatives map.
// It is built once at startup and never mutated, so it is safe for
// concurrent use.
type Catalog struct {
	entries      []Entry
	alternatives map[string]string
}

func NewCatalog(entries []Entry, alternatives map[string]string) *Catalog {
	alts := make(map[string]string, len(alternatives))
	for k, v := range alternatives {
		alts[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Catalog{entries: entries, alternatives: alts}
}

// Default returns the built-in clinic formulary.
func Default() *Catalog {
	return NewCatalog(defaultEntries(), defaultAlternatives())
}

// Entries returns a copy of the formulary rows in scan order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Alternatives returns a copy of the curated alternatives map.
func (c *Catalog) Alternatives() map[string]string {
	out := make(map[string]string, len(c.alternatives))
	for k, v := range c.alternatives {
		out[k] = v
	}
	return out
}

// Resolve matches a free-text medication name against the formulary.
//
// The match is a bidirectional substring test: a formulary name that appears
// inside the input matches, and so does a formulary name that contains the
// input. That keeps abbreviations ("cipro") and decorated names
// ("paracetamol 500mg tablets") working, at the cost of being permissive —
// table order decides collisions. A name that matches nothing is assumed
// available: the formulary only records what the clinic knows it is short on.
func (c *Catalog) Resolve(rawName string) Status {
	name := strings.ToLower(strings.TrimSpace(rawName))
	for _, e := range c.entries {
		canonical := strings.ToLower(e.Name)
		if !strings.Contains(name, canonical) && !strings.Contains(canonical, name) {
			continue
		}
		if e.Available {
			return Status{InStock: true}
		}
		alt := DefaultAlternative
		if s, ok := c.alternatives[canonical]; ok {
			alt = s
		}
		return Status{InStock: false, Alternative: &alt}
	}
	return Status{InStock: true}
}

func defaultEntries() []Entry {
	return []Entry{
		{Name: "metformin", Available: true},
		{Name: "glipizide", Available: true},
		{Name: "empagliflozin", Available: false},
		{Name: "dapagliflozin", Available: true},
		{Name: "liraglutide", Available: false},
		{Name: "lisinopril", Available: true},
		{Name: "losartan", Available: true},
		{Name: "hydrochlorothiazide", Available: false},
		{Name: "amlodipine", Available: true},
		{Name: "carvedilol", Available: true},
		{Name: "amoxicillin", Available: false},
		{Name: "azithromycin", Available: true},
		{Name: "ciprofloxacin", Available: true},
		{Name: "cephalexin", Available: false},
		{Name: "paracetamol", Available: true},
		{Name: "acetaminophen", Available: true},
		{Name: "ibuprofen", Available: true},
		{Name: "omeprazole", Available: true},
		{Name: "atorvastatin", Available: true},
		{Name: "levothyroxine", Available: true},
		{Name: "albuterol", Available: true},
		{Name: "aspirin", Available: true},
	}
}

func defaultAlternatives() map[string]string {
	return map[string]string{
		"amoxicillin":         "azithromycin (if no allergy to macrolides)",
		"cephalexin":          "azithromycin (macrolide antibiotic, broader coverage)",
		"empagliflozin":       "dapagliflozin (same class SGLT2 inhibitor)",
		"dapagliflozin":       "empagliflozin (same class SGLT2 inhibitor)",
		"liraglutide":         "metformin + dietary modification",
		"hydrochlorothiazide": "amlodipine (calcium channel blocker alternative)",
	}
}
