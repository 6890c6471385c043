package tax

import (
	"math"
	"testing"

	"finagent/pkg/core/engine"
)

func TestComputeSlabTaxOldRegime(t *testing.T) {
	table, err := ForYear("2024-25", RegimeOld)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		income   float64
		expected float64
	}{
		{0, 0},
		{250000, 0},       // at the basic exemption
		{500000, 12500},   // 5% on 2.5L
		{1000000, 112500}, // 12,500 + 20% on 5L
		{1575000, 285000}, // 112,500 + 30% on 5.75L
	}
	for _, c := range cases {
		got, err := ComputeSlabTax(c.income, table)
		if err != nil {
			t.Fatalf("income %f: %v", c.income, err)
		}
		if math.Abs(got-c.expected) > 0.01 {
			t.Errorf("income %f: expected %f, got %f", c.income, c.expected, got)
		}
	}
}

func TestComputeSlabTaxNewRegime(t *testing.T) {
	table, err := ForYear("2024-25", RegimeNew)
	if err != nil {
		t.Fatal(err)
	}
	// 1,725,000: 20,000 + 30,000 + 30,000 + 60,000 + 30% on 2.25L
	got, err := ComputeSlabTax(1725000, table)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-207500) > 0.01 {
		t.Errorf("expected 207500, got %f", got)
	}
}

func TestComputeSlabTaxRejectsNegativeIncome(t *testing.T) {
	table, _ := ForYear("2024-25", RegimeOld)
	_, err := ComputeSlabTax(-1, table)
	if !engine.IsKind(err, engine.InvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

// Marginal taxation must be non-decreasing: crossing a slab boundary never
// decreases tax.
func TestComputeSlabTaxMonotonic(t *testing.T) {
	for _, regime := range []Regime{RegimeOld, RegimeNew} {
		table, _ := ForYear("2024-25", regime)
		prev := 0.0
		for income := 0.0; income <= 2000000; income += 10000 {
			tax, err := ComputeSlabTax(income, table)
			if err != nil {
				t.Fatal(err)
			}
			if tax < prev {
				t.Fatalf("%s: tax decreased from %f to %f at income %f", regime, prev, tax, income)
			}
			prev = tax
		}
	}
}

func TestSlabTableValidate(t *testing.T) {
	gapped := SlabTable{
		FinancialYear: "x",
		Regime:        RegimeOld,
		Slabs: []Slab{
			{Lower: 0, Upper: 250000, Rate: 0},
			{Lower: 300000, Upper: math.Inf(1), Rate: 0.30}, // gap 2.5L..3L
		},
	}
	if gapped.Validate() == nil {
		t.Error("gapped table must fail validation")
	}

	overlap := SlabTable{
		FinancialYear: "x",
		Regime:        RegimeOld,
		Slabs: []Slab{
			{Lower: 0, Upper: 250000, Rate: 0},
			{Lower: 200000, Upper: math.Inf(1), Rate: 0.30},
		},
	}
	if overlap.Validate() == nil {
		t.Error("overlapping table must fail validation")
	}

	bounded := SlabTable{
		FinancialYear: "x",
		Regime:        RegimeOld,
		Slabs:         []Slab{{Lower: 0, Upper: 250000, Rate: 0}},
	}
	if bounded.Validate() == nil {
		t.Error("table without an unbounded top slab must fail validation")
	}

	for _, regime := range []Regime{RegimeOld, RegimeNew} {
		table, _ := ForYear("2024-25", regime)
		if err := table.Validate(); err != nil {
			t.Errorf("shipped %s table must validate: %v", regime, err)
		}
	}
}

func TestForYearUnknown(t *testing.T) {
	_, err := ForYear("1999-00", RegimeOld)
	if !engine.IsKind(err, engine.MissingContext) {
		t.Errorf("unknown FY must be MissingContext, got %v", err)
	}
	_, err = ForYear("2024-25", Regime("WEIRD"))
	if !engine.IsKind(err, engine.InvalidInput) {
		t.Errorf("unknown regime must be InvalidInput, got %v", err)
	}
}
