package stock

import "testing"

func TestResolveOutOfStockSuggestsAlternative(t *testing.T) {
	c := Default()
	got := c.Resolve("Amoxicillin")
	if got.InStock {
		t.Fatal("expected amoxicillin to be out of stock")
	}
	if got.Alternative == nil || *got.Alternative != "azithromycin (if no allergy to macrolides)" {
		t.Fatalf("unexpected alternative: %v", got.Alternative)
	}
}

func TestResolveInStock(t *testing.T) {
	got := Default().Resolve("aspirin")
	if !got.InStock {
		t.Fatal("expected aspirin in stock")
	}
	if got.Alternative != nil {
		t.Fatalf("expected nil alternative, got %q", *got.Alternative)
	}
}

// An unmatched name is assumed available: the formulary only records what
// the clinic knows it is short on.
func TestResolveUnknownDefaultsToAvailable(t *testing.T) {
	got := Default().Resolve("totally-unknown-drug")
	if !got.InStock {
		t.Fatal("expected unknown medication to default to in stock")
	}
	if got.Alternative != nil {
		t.Fatalf("expected nil alternative, got %q", *got.Alternative)
	}
}

func TestResolveIsCaseInsensitiveAndTrims(t *testing.T) {
	got := Default().Resolve("  EMPAGLIFLOZIN  ")
	if got.InStock {
		t.Fatal("expected empagliflozin out of stock")
	}
	if got.Alternative == nil || *got.Alternative != "dapagliflozin (same class SGLT2 inhibitor)" {
		t.Fatalf("unexpected alternative: %v", got.Alternative)
	}
}

func TestResolveBidirectionalSubstring(t *testing.T) {
	c := Default()
	// Formulary name inside the input.
	if got := c.Resolve("paracetamol 500mg tablets"); !got.InStock {
		t.Fatal("expected decorated paracetamol to match as in stock")
	}
	// Input inside the formulary name.
	if got := c.Resolve("cipro"); !got.InStock {
		t.Fatal("expected abbreviation cipro to match ciprofloxacin as in stock")
	}
}

func TestResolveFirstMatchWinsInTableOrder(t *testing.T) {
	c := NewCatalog([]Entry{
		{Name: "met", Available: false},
		{Name: "metformin", Available: true},
	}, map[string]string{"met": "other"})
	// "metformin" contains "met", so the earlier permissive entry wins.
	got := c.Resolve("metformin")
	if got.InStock {
		t.Fatal("expected the earlier table entry to win the scan")
	}
	if got.Alternative == nil || *got.Alternative != "other" {
		t.Fatalf("unexpected alternative: %v", got.Alternative)
	}
}

func TestResolveDefaultAlternativeText(t *testing.T) {
	c := NewCatalog([]Entry{{Name: "obscuremycin", Available: false}}, nil)
	got := c.Resolve("obscuremycin")
	if got.InStock {
		t.Fatal("expected out of stock")
	}
	if got.Alternative == nil || *got.Alternative != DefaultAlternative {
		t.Fatalf("unexpected alternative: %v", got.Alternative)
	}
}

// An empty name is a substring of every formulary name, so it matches the
// first table entry. With the default formulary that entry is available.
func TestResolveEmptyNameMatchesFirstEntry(t *testing.T) {
	if got := Default().Resolve("   "); !got.InStock || got.Alternative != nil {
		t.Fatalf("expected empty name to resolve as available, got %+v", got)
	}
	c := NewCatalog([]Entry{{Name: "obscuremycin", Available: false}}, nil)
	if got := c.Resolve(""); got.InStock {
		t.Fatal("expected empty name to match the first (unavailable) entry")
	}
}
